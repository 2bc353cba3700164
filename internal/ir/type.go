// Package ir defines the locally-nameless intermediate representation for
// types and expressions: De Bruijn-indexed nodes carrying a `free` variable
// count and a `maxIndex` upper bound on the indices they contain, plus the
// total algebra over them (AccommodateFree, Subst, and the private
// incrementAbove).
package ir

import "fmt"

// Quantifier distinguishes existential from universal binders on a
// Quantified type.
type Quantifier int

const (
	Exists Quantifier = iota
	ForAll
)

func (q Quantifier) String() string {
	if q == Exists {
		return "exists"
	}
	return "forall"
}

// Phase places a value on the static/dynamic lattice: Static is the
// bottom element, Dynamic the top. SubPhase reports whether child may stand
// in for parent (child <= parent).
type Phase int

const (
	Static Phase = iota
	Dynamic
)

func (p Phase) String() string {
	if p == Static {
		return "static"
	}
	return "dynamic"
}

// SubPhase reports whether child is at or below parent in the phase
// lattice, i.e. whether a value of phase child may be used where parent is
// expected.
func SubPhase(child, parent Phase) bool {
	return child == Static || parent == Dynamic
}

// TypeParam carries a display name and kind for a type binder. The
// name is used only for display and by the resolver/printer; the kind is
// what the kind checker actually consults.
type TypeParam struct {
	Name     string
	KindVal  Kind
}

// Kind returns the binder's declared kind.
func (p TypeParam) Kind() Kind { return p.KindVal }

// typeKind tags the variant of a Type node.
type typeKind int

const (
	tUnit typeKind = iota
	tVar
	tQuantified
	tFunc
	tPair
	tApp
	tEquiv
)

// Type is a locally-nameless type node. The zero value is not meaningful;
// construct types with the New* functions below, which enforce every
// invariant the original asserts at construction time.
type Type struct {
	free     int
	maxIndex int
	kind     typeKind

	// tVar
	index int

	// tQuantified
	quantifier Quantifier
	param      TypeParam
	body       *Type

	// tFunc
	arg      *Type
	argPhase Phase
	ret      *Type
	retPhase Phase

	// tPair, tApp(constructor,param reuse arg/ret slots is confusing; use
	// dedicated fields for clarity instead of overlaying tFunc's).
	left  *Type
	right *Type

	constructor *Type
	param2      *Type

	orig *Type
	dest *Type
}

// Free returns the number of free (unbound) De Bruijn indices this type is
// parameterized over.
func (t *Type) Free() int { return t.free }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// NewUnit builds the unit type with the given free-variable count.
func NewUnit(free int) *Type {
	return &Type{kind: tUnit, free: free, maxIndex: 0}
}

// NewVar builds a bound-variable reference. index must be < free.
func NewVar(free, index int) *Type {
	if index >= free {
		panic(fmt.Sprintf("ir: Var index %d out of range for free=%d", index, free))
	}
	return &Type{kind: tVar, free: free, maxIndex: index + 1, index: index}
}

// NewQuantified builds a forall/exists type. body.Free() must be >= 1 (the
// binder itself consumes the outermost free variable).
func NewQuantified(q Quantifier, param TypeParam, body *Type) *Type {
	if body.free < 1 {
		panic("ir: Quantified body must have at least one free variable")
	}
	return &Type{
		kind:       tQuantified,
		free:       body.free - 1,
		maxIndex:   body.maxIndex,
		quantifier: q,
		param:      param,
		body:       body,
	}
}

// NewFunc builds a function type. arg and ret must share the same free
// count.
func NewFunc(arg *Type, argPhase Phase, ret *Type, retPhase Phase) *Type {
	if arg.free != ret.free {
		panic("ir: Func arg/ret free variable counts do not match")
	}
	return &Type{
		kind:     tFunc,
		free:     arg.free,
		maxIndex: maxInt(arg.maxIndex, ret.maxIndex),
		arg:      arg,
		argPhase: argPhase,
		ret:      ret,
		retPhase: retPhase,
	}
}

// NewPair builds a pair type. left and right must share the same free
// count.
func NewPair(left, right *Type) *Type {
	if left.free != right.free {
		panic("ir: Pair left/right free variable counts do not match")
	}
	return &Type{
		kind:     tPair,
		free:     left.free,
		maxIndex: maxInt(left.maxIndex, right.maxIndex),
		left:     left,
		right:    right,
	}
}

// NewApp builds a type-constructor application. constructor and param must
// share the same free count.
func NewApp(constructor, param *Type) *Type {
	if constructor.free != param.free {
		panic("ir: App constructor/param free variable counts do not match")
	}
	return &Type{
		kind:        tApp,
		free:        constructor.free,
		maxIndex:    maxInt(constructor.maxIndex, param.maxIndex),
		constructor: constructor,
		param2:      param,
	}
}

// NewEquiv builds an equivalence-witness type between orig and dest. Both
// must share the same free count.
func NewEquiv(orig, dest *Type) *Type {
	if orig.free != dest.free {
		panic("ir: Equiv orig/dest free variable counts do not match")
	}
	return &Type{
		kind:     tEquiv,
		free:     orig.free,
		maxIndex: maxInt(orig.maxIndex, dest.maxIndex),
		orig:     orig,
		dest:     dest,
	}
}

// ContentKind is the (unexported) variant tag of a Type, mirroring the
// original's TypeContent. Exactly one of the IsUnit/IsVar/As* accessors
// below reports a match for any given Type.
type ContentKind = typeKind

// IsUnit reports whether t is the unit type.
func (t *Type) IsUnit() bool { return t.kind == tUnit }

// IsVar reports whether t is a bound-variable reference, returning its
// index if so.
func (t *Type) IsVar() (index int, ok bool) {
	if t.kind != tVar {
		return 0, false
	}
	return t.index, true
}

// AsQuantified returns the quantifier, binder metadata, and body if t is a
// Quantified type.
func (t *Type) AsQuantified() (q Quantifier, param TypeParam, body *Type, ok bool) {
	if t.kind != tQuantified {
		return 0, TypeParam{}, nil, false
	}
	return t.quantifier, t.param, t.body, true
}

// AsFunc returns the components of t if it is a Func type.
func (t *Type) AsFunc() (arg *Type, argPhase Phase, ret *Type, retPhase Phase, ok bool) {
	if t.kind != tFunc {
		return nil, 0, nil, 0, false
	}
	return t.arg, t.argPhase, t.ret, t.retPhase, true
}

// AsPair returns the components of t if it is a Pair type.
func (t *Type) AsPair() (left, right *Type, ok bool) {
	if t.kind != tPair {
		return nil, nil, false
	}
	return t.left, t.right, true
}

// AsApp returns the components of t if it is an App type.
func (t *Type) AsApp() (constructor, param *Type, ok bool) {
	if t.kind != tApp {
		return nil, nil, false
	}
	return t.constructor, t.param2, true
}

// AsEquiv returns the components of t if it is an Equiv type.
func (t *Type) AsEquiv() (orig, dest *Type, ok bool) {
	if t.kind != tEquiv {
		return nil, nil, false
	}
	return t.orig, t.dest, true
}

// incrementAbove adds incBy to every bound-variable index >= pivot. Every
// node records its own free count, so the whole tree is rebuilt unless incBy
// is 0 (then t is returned as is); maxIndex is not used to skip subtrees.
// Mirrors increment_above in the original.
func (t *Type) incrementAbove(pivot, incBy int) *Type {
	if pivot > t.free {
		panic("ir: incrementAbove pivot out of range")
	}
	if incBy == 0 {
		return t
	}

	switch t.kind {
	case tUnit:
		return NewUnit(t.free + incBy)
	case tVar:
		if pivot <= t.index {
			return NewVar(t.free+incBy, t.index+incBy)
		}
		return NewVar(t.free+incBy, t.index)
	case tQuantified:
		return NewQuantified(t.quantifier, t.param, t.body.incrementAbove(pivot, incBy))
	case tFunc:
		return NewFunc(t.arg.incrementAbove(pivot, incBy), t.argPhase, t.ret.incrementAbove(pivot, incBy), t.retPhase)
	case tPair:
		return NewPair(t.left.incrementAbove(pivot, incBy), t.right.incrementAbove(pivot, incBy))
	case tApp:
		return NewApp(t.constructor.incrementAbove(pivot, incBy), t.param2.incrementAbove(pivot, incBy))
	case tEquiv:
		return NewEquiv(t.orig.incrementAbove(pivot, incBy), t.dest.incrementAbove(pivot, incBy))
	default:
		panic("ir: unreachable type kind")
	}
}

// incrementBound shifts every bound variable up by incBy, used internally
// when entering a new binder during substitution.
func (t *Type) incrementBound(incBy int) *Type {
	return t.incrementAbove(t.free, incBy)
}

// AccommodateFree widens t's free-variable count to newFree by shifting
// every bound index up. newFree must be >= t.Free().
func (t *Type) AccommodateFree(newFree int) *Type {
	if t.free > newFree {
		panic("ir: AccommodateFree cannot shrink free variable count")
	}
	return t.incrementBound(newFree - t.free)
}

// Subst simultaneously replaces the top len(replacements) free variables of
// t with replacements, renumbering the remaining free variables down.
// len(replacements) must be <= t.Free(), and each replacement must itself
// have exactly t.Free()-len(replacements) free variables.
func (t *Type) Subst(replacements []*Type) *Type {
	if len(replacements) > t.free {
		panic("ir: Subst has more replacements than free variables")
	}
	want := t.free - len(replacements)
	for _, r := range replacements {
		if r.free != want {
			panic("ir: Subst replacement free variable count mismatch")
		}
	}
	return t.substInner(want, replacements)
}

// Equal reports raw structural equality, including binder display names
// (mirrors the original's derived PartialEq on Type, which compares
// TypeParam.name too — distinct from the semantic `equiv` relation in
// package typecheck, which ignores binder names).
func (t *Type) Equal(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.free != other.free || t.kind != other.kind {
		return false
	}
	switch t.kind {
	case tUnit:
		return true
	case tVar:
		return t.index == other.index
	case tQuantified:
		return t.quantifier == other.quantifier && t.param.Name == other.param.Name && t.body.Equal(other.body)
	case tFunc:
		return t.argPhase == other.argPhase && t.retPhase == other.retPhase &&
			t.arg.Equal(other.arg) && t.ret.Equal(other.ret)
	case tPair:
		return t.left.Equal(other.left) && t.right.Equal(other.right)
	case tApp:
		return t.constructor.Equal(other.constructor) && t.param2.Equal(other.param2)
	case tEquiv:
		return t.orig.Equal(other.orig) && t.dest.Equal(other.dest)
	default:
		return false
	}
}

// String renders a debug form of t using anonymous binder names; package
// prettyprint renders the user-facing surface form with resolved names.
func (t *Type) String() string {
	switch t.kind {
	case tUnit:
		return "Unit"
	case tVar:
		return fmt.Sprintf("Var(%d)", t.index)
	case tQuantified:
		return fmt.Sprintf("%s %s. %s", t.quantifier, t.param.Name, t.body)
	case tFunc:
		return fmt.Sprintf("(%s:%s -> %s:%s)", t.arg, t.argPhase, t.ret, t.retPhase)
	case tPair:
		return fmt.Sprintf("(%s, %s)", t.left, t.right)
	case tApp:
		return fmt.Sprintf("%s %s", t.constructor, t.param2)
	case tEquiv:
		return fmt.Sprintf("(%s equiv %s)", t.orig, t.dest)
	default:
		return "<?>"
	}
}

func (t *Type) substInner(startIndex int, replacements []*Type) *Type {
	if len(replacements) == 0 {
		return t
	}

	newFree := t.free - len(replacements)
	switch t.kind {
	case tUnit:
		return NewUnit(newFree)
	case tVar:
		switch {
		case startIndex+len(replacements) <= t.index:
			return NewVar(newFree, t.index-len(replacements))
		case t.index < startIndex:
			return NewVar(newFree, t.index)
		default:
			return replacements[t.index-startIndex].AccommodateFree(newFree)
		}
	case tQuantified:
		return NewQuantified(t.quantifier, t.param, t.body.substInner(startIndex, replacements))
	case tFunc:
		return NewFunc(t.arg.substInner(startIndex, replacements), t.argPhase, t.ret.substInner(startIndex, replacements), t.retPhase)
	case tPair:
		return NewPair(t.left.substInner(startIndex, replacements), t.right.substInner(startIndex, replacements))
	case tApp:
		return NewApp(t.constructor.substInner(startIndex, replacements), t.param2.substInner(startIndex, replacements))
	case tEquiv:
		return NewEquiv(t.orig.substInner(startIndex, replacements), t.dest.substInner(startIndex, replacements))
	default:
		panic("ir: unreachable type kind")
	}
}
