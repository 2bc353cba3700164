package ir

import "fmt"

// VarUsage is the instruction carried by a Var expression node: whether the
// occurrence moves or copies the binding.
type VarUsage int

const (
	Move VarUsage = iota
	Copy
)

func (u VarUsage) String() string {
	if u == Move {
		return "move"
	}
	return "copy"
}

// TypeParamDecl names a type parameter together with the kind it is
// expected to have, used by ForAll and Cast expression nodes.
type TypeParamDecl struct {
	Name string
	Kind Kind
}

// ExistsWitness pairs a display name, binder kind, and witness type
// supplied for one layer of a MakeExists. The kind must match what a
// preceding kind-checking pass assigned the witness type; it is carried
// here (rather than re-derived) so the type checker never needs to invoke
// the kind checker itself.
type ExistsWitness struct {
	Name    string
	Kind    Kind
	Witness *Type
}

type exprKind int

const (
	eUnit exprKind = iota
	eVar
	eForAll
	eFunc
	eInst
	eApp
	ePair
	eLet
	eLetExists
	eMakeExists
	eCast
	eIntrinsic
)

// Expr is a locally-nameless expression node. As with Type, the zero
// value is not meaningful; use the New* constructors, which enforce every
// structural invariant at construction time.
type Expr struct {
	kind      exprKind
	freeVars  int
	freeTypes int

	// eVar
	usage VarUsage
	index int

	// eForAll
	typeParams []TypeParamDecl
	body       *Expr

	// eFunc
	argName  string
	argType  *Type
	argPhase Phase

	// eInst
	receiver       *Expr
	instTypeParams []*Type

	// eApp
	callee *Expr
	arg    *Expr

	// ePair
	left  *Expr
	right *Expr

	// eLet
	names []string
	val   *Expr

	// eLetExists
	typeNames []string
	valName   string

	// eMakeExists
	existsParams []ExistsWitness
	typeBody     *Type

	// eCast
	castParam   TypeParamDecl
	equivalence *Expr

	// eIntrinsic
	intrinsicID string
}

func (e *Expr) FreeVars() int  { return e.freeVars }
func (e *Expr) FreeTypes() int { return e.freeTypes }

// NewUnitExpr builds the unit-value expression.
func NewUnitExpr(freeVars, freeTypes int) *Expr {
	return &Expr{kind: eUnit, freeVars: freeVars, freeTypes: freeTypes}
}

// NewVarExpr builds a variable reference. index must be < freeVars.
func NewVarExpr(freeVars, freeTypes int, usage VarUsage, index int) *Expr {
	if index >= freeVars {
		panic(fmt.Sprintf("ir: Var index %d out of range for freeVars=%d", index, freeVars))
	}
	return &Expr{kind: eVar, freeVars: freeVars, freeTypes: freeTypes, usage: usage, index: index}
}

// NewForAll introduces |typeParams| type variables. body.FreeTypes() must
// equal the node's FreeTypes()+len(typeParams).
func NewForAll(typeParams []TypeParamDecl, body *Expr) *Expr {
	if body.freeTypes < len(typeParams) {
		panic("ir: ForAll body does not have enough free type variables")
	}
	return &Expr{
		kind:       eForAll,
		freeVars:   body.freeVars,
		freeTypes:  body.freeTypes - len(typeParams),
		typeParams: append([]TypeParamDecl(nil), typeParams...),
		body:       body,
	}
}

// NewFuncExpr introduces one term variable. body.FreeVars() must equal the
// node's FreeVars()+1, and body.FreeTypes() must equal argType.Free().
func NewFuncExpr(argName string, argType *Type, argPhase Phase, body *Expr) *Expr {
	if body.freeVars < 1 {
		panic("ir: Func body must have at least one free variable")
	}
	if argType.Free() != body.freeTypes {
		panic("ir: Func arg type free-type count does not match body")
	}
	return &Expr{
		kind:      eFunc,
		freeVars:  body.freeVars - 1,
		freeTypes: body.freeTypes,
		argName:   argName,
		argType:   argType,
		argPhase:  argPhase,
		body:      body,
	}
}

// NewInst builds a universal instantiation. Every type parameter must
// share receiver's free-type count.
func NewInst(receiver *Expr, typeParams []*Type) *Expr {
	for _, tp := range typeParams {
		if tp.Free() != receiver.freeTypes {
			panic("ir: Inst type parameter free-type count does not match receiver")
		}
	}
	return &Expr{
		kind:           eInst,
		freeVars:       receiver.freeVars,
		freeTypes:      receiver.freeTypes,
		receiver:       receiver,
		instTypeParams: append([]*Type(nil), typeParams...),
	}
}

// NewAppExpr builds a function application. callee and arg must share both
// free counts.
func NewAppExpr(callee, arg *Expr) *Expr {
	if callee.freeVars != arg.freeVars || callee.freeTypes != arg.freeTypes {
		panic("ir: App callee/arg free counts do not match")
	}
	return &Expr{kind: eApp, freeVars: callee.freeVars, freeTypes: callee.freeTypes, callee: callee, arg: arg}
}

// NewPairExpr builds a pair value. left and right must share both free
// counts.
func NewPairExpr(left, right *Expr) *Expr {
	if left.freeVars != right.freeVars || left.freeTypes != right.freeTypes {
		panic("ir: Pair left/right free counts do not match")
	}
	return &Expr{kind: ePair, freeVars: left.freeVars, freeTypes: left.freeTypes, left: left, right: right}
}

// NewLet pattern-binds val as nested pairs to names (non-empty).
// body.FreeVars() must equal val.FreeVars()+len(names); both share
// FreeTypes().
func NewLet(names []string, val, body *Expr) *Expr {
	if len(names) == 0 {
		panic("ir: Let requires at least one name")
	}
	if body.freeVars != val.freeVars+len(names) {
		panic("ir: Let body free-variable count does not match val+names")
	}
	if body.freeTypes != val.freeTypes {
		panic("ir: Let body/val free-type counts do not match")
	}
	return &Expr{
		kind:      eLet,
		freeVars:  val.freeVars,
		freeTypes: val.freeTypes,
		names:     append([]string(nil), names...),
		val:       val,
		body:      body,
	}
}

// NewLetExists opens nested existentials. body.FreeTypes() must equal
// val.FreeTypes()+len(typeNames); body.FreeVars() must equal
// val.FreeVars()+1.
func NewLetExists(typeNames []string, valName string, val, body *Expr) *Expr {
	if len(typeNames) == 0 {
		panic("ir: LetExists requires at least one type name")
	}
	if body.freeTypes != val.freeTypes+len(typeNames) {
		panic("ir: LetExists body free-type count does not match val+typeNames")
	}
	if body.freeVars != val.freeVars+1 {
		panic("ir: LetExists body free-variable count does not match val+1")
	}
	return &Expr{
		kind:      eLetExists,
		freeVars:  val.freeVars,
		freeTypes: val.freeTypes,
		typeNames: append([]string(nil), typeNames...),
		valName:   valName,
		val:       val,
		body:      body,
	}
}

// NewMakeExists introduces nested existentials. typeBody.Free() must equal
// body.FreeTypes()+len(params); every witness type must have exactly
// body.FreeTypes() free variables.
func NewMakeExists(params []ExistsWitness, typeBody *Type, body *Expr) *Expr {
	if len(params) == 0 {
		panic("ir: MakeExists requires at least one param")
	}
	if typeBody.Free() != body.freeTypes+len(params) {
		panic("ir: MakeExists typeBody free count does not match body.FreeTypes()+len(params)")
	}
	for _, p := range params {
		if p.Witness.Free() != body.freeTypes {
			panic("ir: MakeExists witness free count does not match body.FreeTypes()")
		}
	}
	return &Expr{
		kind:         eMakeExists,
		freeVars:     body.freeVars,
		freeTypes:    body.freeTypes,
		existsParams: append([]ExistsWitness(nil), params...),
		typeBody:     typeBody,
		body:         body,
	}
}

// NewCast rewrites the type of body using an equivalence witness.
// typeBody.Free() must equal body.FreeTypes()+1 (the hole); equivalence
// must share body's free counts.
func NewCast(param TypeParamDecl, typeBody *Type, equivalence, body *Expr) *Expr {
	if typeBody.Free() != body.freeTypes+1 {
		panic("ir: Cast typeBody free count does not match body.FreeTypes()+1")
	}
	if equivalence.freeVars != body.freeVars || equivalence.freeTypes != body.freeTypes {
		panic("ir: Cast equivalence free counts do not match body")
	}
	return &Expr{
		kind:        eCast,
		freeVars:    body.freeVars,
		freeTypes:   body.freeTypes,
		castParam:   param,
		typeBody:    typeBody,
		equivalence: equivalence,
		body:        body,
	}
}

// NewIntrinsic builds a reference to a built-in primitive.
func NewIntrinsic(freeVars, freeTypes int, id string) *Expr {
	return &Expr{kind: eIntrinsic, freeVars: freeVars, freeTypes: freeTypes, intrinsicID: id}
}

// --- variant accessors ---

func (e *Expr) IsUnit() bool { return e.kind == eUnit }

func (e *Expr) AsVar() (usage VarUsage, index int, ok bool) {
	if e.kind != eVar {
		return 0, 0, false
	}
	return e.usage, e.index, true
}

func (e *Expr) AsForAll() (typeParams []TypeParamDecl, body *Expr, ok bool) {
	if e.kind != eForAll {
		return nil, nil, false
	}
	return e.typeParams, e.body, true
}

func (e *Expr) AsFunc() (argName string, argType *Type, argPhase Phase, body *Expr, ok bool) {
	if e.kind != eFunc {
		return "", nil, 0, nil, false
	}
	return e.argName, e.argType, e.argPhase, e.body, true
}

func (e *Expr) AsInst() (receiver *Expr, typeParams []*Type, ok bool) {
	if e.kind != eInst {
		return nil, nil, false
	}
	return e.receiver, e.instTypeParams, true
}

func (e *Expr) AsApp() (callee, arg *Expr, ok bool) {
	if e.kind != eApp {
		return nil, nil, false
	}
	return e.callee, e.arg, true
}

func (e *Expr) AsPair() (left, right *Expr, ok bool) {
	if e.kind != ePair {
		return nil, nil, false
	}
	return e.left, e.right, true
}

func (e *Expr) AsLet() (names []string, val, body *Expr, ok bool) {
	if e.kind != eLet {
		return nil, nil, nil, false
	}
	return e.names, e.val, e.body, true
}

func (e *Expr) AsLetExists() (typeNames []string, valName string, val, body *Expr, ok bool) {
	if e.kind != eLetExists {
		return nil, "", nil, nil, false
	}
	return e.typeNames, e.valName, e.val, e.body, true
}

func (e *Expr) AsMakeExists() (params []ExistsWitness, typeBody *Type, body *Expr, ok bool) {
	if e.kind != eMakeExists {
		return nil, nil, nil, false
	}
	return e.existsParams, e.typeBody, e.body, true
}

func (e *Expr) AsCast() (param TypeParamDecl, typeBody *Type, equivalence, body *Expr, ok bool) {
	if e.kind != eCast {
		return TypeParamDecl{}, nil, nil, nil, false
	}
	return e.castParam, e.typeBody, e.equivalence, e.body, true
}

func (e *Expr) AsIntrinsic() (id string, ok bool) {
	if e.kind != eIntrinsic {
		return "", false
	}
	return e.intrinsicID, true
}
