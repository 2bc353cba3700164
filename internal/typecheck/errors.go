package typecheck

import (
	"fmt"

	"github.com/funvibe/corelang/internal/ir"
)

// Every error below carries a clone of the context at the failing node
// letting callers render diagnostics without re-threading state.
// Context is taken by value at construction time via snapshot so
// later mutation of the live *Context cannot retroactively change an
// already-reported error.

type contextSnapshot = Context

func snapshot(ctx *Context) *Context {
	cp := *ctx
	cp.typeKinds = append([]ir.Kind(nil), ctx.typeKinds...)
	cp.typeNames = append([]string(nil), ctx.typeNames...)
	cp.vars = append([]varBinding(nil), ctx.vars...)
	cp.scopes = append([]scope(nil), ctx.scopes...)
	return &cp
}

// MismatchError reports that a term's synthesized type did not match what
// its context required.
type MismatchError struct {
	Context  *Context
	InExpr   *ir.Expr
	Expected *ir.Type
	Actual   *ir.Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("typecheck: expected type %s, got %s", e.Expected, e.Actual)
}

// ExpectedFuncError reports that App's callee did not synthesize a Func
// type.
type ExpectedFuncError struct {
	Context *Context
	InExpr  *ir.Expr
	Actual  *ir.Type
}

func (e *ExpectedFuncError) Error() string {
	return fmt.Sprintf("typecheck: expected a function type, got %s", e.Actual)
}

// ExpectedPairError reports that Let's value type did not unpack as a
// right-nested pair of the expected arity.
type ExpectedPairError struct {
	Context *Context
	InExpr  *ir.Expr
	Actual  *ir.Type
}

func (e *ExpectedPairError) Error() string {
	return fmt.Sprintf("typecheck: expected a pair type, got %s", e.Actual)
}

// ExpectedExistsError reports that LetExists's value type did not peel the
// requested number of existential layers.
type ExpectedExistsError struct {
	Context *Context
	InExpr  *ir.Expr
	Actual  *ir.Type
}

func (e *ExpectedExistsError) Error() string {
	return fmt.Sprintf("typecheck: expected an existential type, got %s", e.Actual)
}

// ExpectedForAllError reports that Inst's receiver type did not peel the
// requested number of universal layers.
type ExpectedForAllError struct {
	Context *Context
	InExpr  *ir.Expr
	Actual  *ir.Type
}

func (e *ExpectedForAllError) Error() string {
	return fmt.Sprintf("typecheck: expected a universally quantified type, got %s", e.Actual)
}

// ExpectedEquivalenceError reports that Cast's equivalence operand did not
// synthesize an Equiv type.
type ExpectedEquivalenceError struct {
	Context *Context
	InExpr  *ir.Expr
	Actual  *ir.Type
}

func (e *ExpectedEquivalenceError) Error() string {
	return fmt.Sprintf("typecheck: expected an equivalence witness, got %s", e.Actual)
}

// MovedTwiceError reports that a variable was moved a second time.
type MovedTwiceError struct {
	Context *Context
	Var     int
}

func (e *MovedTwiceError) Error() string {
	return fmt.Sprintf("typecheck: variable %d moved twice", e.Var)
}

// NotMovedError reports that a non-copyable-primitive variable was left
// unmoved at scope close.
type NotMovedError struct {
	Context *Context
	Var     int
}

func (e *NotMovedError) Error() string {
	return fmt.Sprintf("typecheck: variable %d was never moved", e.Var)
}

// IllegalCopyError reports that a Copy occurrence targeted a variable whose
// type is not copyable-primitive.
type IllegalCopyError struct {
	Context *Context
	Var     int
}

func (e *IllegalCopyError) Error() string {
	return fmt.Sprintf("typecheck: variable %d cannot be copied (not a copyable-primitive type)", e.Var)
}

// ParameterCountMismatchError reports that a quantified form was
// instantiated/closed with the wrong number of parameters.
type ParameterCountMismatchError struct {
	Context            *Context
	InExpr             *ir.Expr
	ExpectedParameters int
	ActualParameters   int
}

func (e *ParameterCountMismatchError) Error() string {
	return fmt.Sprintf("typecheck: expected %d parameters, got %d", e.ExpectedParameters, e.ActualParameters)
}

// UnexpectedDynamicError reports that a Dynamic value was used where the
// phase discipline required Static.
type UnexpectedDynamicError struct {
	Context *Context
	InExpr  *ir.Expr
}

func (e *UnexpectedDynamicError) Error() string {
	return "typecheck: unexpected dynamic-phase value where static was required"
}
