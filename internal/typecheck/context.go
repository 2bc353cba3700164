// Package typecheck implements a bidirectional-flavored type checker over
// the IR: linear/affine variable usage, a static/dynamic phase lattice,
// existential/universal handling, and equivalence-witnessed casts.
package typecheck

import "github.com/funvibe/corelang/internal/ir"

// Usage is the binding-level state of a variable: whether it has been
// moved yet. Distinct from ir.VarUsage, which is the instruction at a
// particular Var occurrence.
type Usage int

const (
	Unmoved Usage = iota
	Moved
)

type varBinding struct {
	name  string
	typ   *ir.Type
	phase ir.Phase
	usage Usage
}

type scope struct {
	typeCount int
	varCount  int
}

// Context is the scoped checking environment: a stack of bound type kinds
// and a stack of bound variable types/phases/usages, both organized into
// nested scopes. Every PushScope must be matched by exactly one PopScope
// along every exit path, including error paths.
type Context struct {
	typeKinds []ir.Kind
	typeNames []string

	vars []varBinding

	scopes []scope
}

// NewContext returns an empty checking context.
func NewContext() *Context {
	return &Context{}
}

// TypeIndexCount returns the number of type variables currently bound.
func (c *Context) TypeIndexCount() int { return len(c.typeKinds) }

// VarIndexCount returns the number of term variables currently bound.
func (c *Context) VarIndexCount() int { return len(c.vars) }

// PushScope opens a new scope over both the type and variable stacks.
func (c *Context) PushScope() {
	c.scopes = append(c.scopes, scope{typeCount: len(c.typeKinds), varCount: len(c.vars)})
}

// PopScope closes the most recently opened scope, unbinding every type and
// variable added since the matching PushScope. Panics on stack underflow —
// a bug in the caller, not a recoverable condition (mirrors the original's
// `pop_sope`, which panics via `.expect("Stack underflow")`).
func (c *Context) PopScope() {
	if len(c.scopes) == 0 {
		panic("typecheck: PopScope: stack underflow")
	}
	last := len(c.scopes) - 1
	s := c.scopes[last]
	c.scopes = c.scopes[:last]
	c.typeKinds = c.typeKinds[:s.typeCount]
	c.typeNames = c.typeNames[:s.typeCount]
	c.vars = c.vars[:s.varCount]
}

// TypeKind returns the kind bound at the given De Bruijn index.
func (c *Context) TypeKind(index int) ir.Kind {
	return c.typeKinds[index]
}

// AddTypeKind binds a new type variable with the given display name and
// kind at the next index.
func (c *Context) AddTypeKind(name string, kind ir.Kind) {
	c.typeKinds = append(c.typeKinds, kind)
	c.typeNames = append(c.typeNames, name)
}

// VarType returns the declared type of the variable at the given index.
func (c *Context) VarType(index int) *ir.Type {
	return c.vars[index].typ
}

// VarPhase returns the declared phase of the variable at the given index.
func (c *Context) VarPhase(index int) ir.Phase {
	return c.vars[index].phase
}

// VarUsage returns the current move/copy usage state of the variable at
// the given index.
func (c *Context) VarUsage(index int) Usage {
	return c.vars[index].usage
}

// SetVarUsage updates the usage state of the variable at the given index.
func (c *Context) SetVarUsage(index int, u Usage) {
	c.vars[index].usage = u
}

// AddVarBinding binds a new term variable with the given name, type, and
// phase, initially Unmoved, at the next index.
func (c *Context) AddVarBinding(name string, typ *ir.Type, phase ir.Phase) {
	c.vars = append(c.vars, varBinding{name: name, typ: typ, phase: phase, usage: Unmoved})
}

// CurrScopeVarRange returns the half-open range of variable indices added
// in the current (innermost) scope, for the scope-close NotMoved check.
func (c *Context) CurrScopeVarRange() (start, end int) {
	if len(c.scopes) == 0 {
		return 0, len(c.vars)
	}
	last := c.scopes[len(c.scopes)-1]
	return last.varCount, len(c.vars)
}

// VarName returns the display name of the variable at the given index, for
// error reporting.
func (c *Context) VarName(index int) string {
	return c.vars[index].name
}
