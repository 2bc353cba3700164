// Package kindcheck is a pure synthesis pass that assigns a Kind to every
// node of a Type, or reports a structured error. It computes and validates
// every nested kind internally as it recurses, returning only the
// synthesized top-level Kind rather than a persisted per-node annotation
// tree — nothing downstream consumes one. See DESIGN.md for the rationale.
package kindcheck

import (
	"fmt"

	"github.com/funvibe/corelang/internal/ir"
	"github.com/funvibe/corelang/internal/typecheck"
)

// MismatchError reports that a type node's synthesized kind did not match
// what its parent required.
type MismatchError struct {
	Context  *typecheck.Context
	InType   *ir.Type
	Expected ir.Kind
	Actual   ir.Kind
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("kindcheck: in %s: expected kind %s, got %s", e.InType, e.Expected, e.Actual)
}

// ExpectedConstructorError reports that App's constructor operand did not
// synthesize a Constructor kind.
type ExpectedConstructorError struct {
	Context *typecheck.Context
	InType  *ir.Type
	Actual  ir.Kind
}

func (e *ExpectedConstructorError) Error() string {
	return fmt.Sprintf("kindcheck: in %s: expected a constructor kind, got %s", e.InType, e.Actual)
}

// InferKind synthesizes the kind of ty under ctx. Panics if
// ty.Free() != ctx.TypeIndexCount() (a precondition violation, not a
// recoverable error).
func InferKind(ctx *typecheck.Context, ty *ir.Type) (ir.Kind, error) {
	if ty.Free() != ctx.TypeIndexCount() {
		panic(fmt.Sprintf("kindcheck: cannot annotate a type with %d free variables in a context with %d free variables", ty.Free(), ctx.TypeIndexCount()))
	}

	if ty.IsUnit() {
		return ir.KType, nil
	}

	if index, ok := ty.IsVar(); ok {
		return ctx.TypeKind(index), nil
	}

	if q, param, body, ok := ty.AsQuantified(); ok {
		ctx.PushScope()
		ctx.AddTypeKind(param.Name, param.Kind())
		bodyKind, err := InferKind(ctx, body)
		ctx.PopScope()
		if err != nil {
			return ir.Kind{}, err
		}
		if !bodyKind.Equal(ir.KType) {
			return ir.Kind{}, &MismatchError{Context: ctx, InType: ty, Expected: ir.KType, Actual: bodyKind}
		}
		_ = q
		return ir.KType, nil
	}

	if arg, _, ret, _, ok := ty.AsFunc(); ok {
		argKind, err := InferKind(ctx, arg)
		if err != nil {
			return ir.Kind{}, err
		}
		retKind, err := InferKind(ctx, ret)
		if err != nil {
			return ir.Kind{}, err
		}
		if !argKind.Equal(ir.KType) {
			return ir.Kind{}, &MismatchError{Context: ctx, InType: ty, Expected: ir.KType, Actual: argKind}
		}
		if !retKind.Equal(ir.KType) {
			return ir.Kind{}, &MismatchError{Context: ctx, InType: ty, Expected: ir.KType, Actual: retKind}
		}
		return ir.KType, nil
	}

	if left, right, ok := ty.AsPair(); ok {
		leftKind, err := InferKind(ctx, left)
		if err != nil {
			return ir.Kind{}, err
		}
		rightKind, err := InferKind(ctx, right)
		if err != nil {
			return ir.Kind{}, err
		}
		if !leftKind.Equal(ir.KType) {
			return ir.Kind{}, &MismatchError{Context: ctx, InType: ty, Expected: ir.KType, Actual: leftKind}
		}
		if !rightKind.Equal(ir.KType) {
			return ir.Kind{}, &MismatchError{Context: ctx, InType: ty, Expected: ir.KType, Actual: rightKind}
		}
		return ir.KType, nil
	}

	if constructor, param, ok := ty.AsApp(); ok {
		ctorKind, err := InferKind(ctx, constructor)
		if err != nil {
			return ir.Kind{}, err
		}
		paramKind, err := InferKind(ctx, param)
		if err != nil {
			return ir.Kind{}, err
		}
		params, result, ok := ctorKind.AsConstructor()
		if !ok {
			return ir.Kind{}, &ExpectedConstructorError{Context: ctx, InType: ty, Actual: ctorKind}
		}
		if !params[0].Equal(paramKind) {
			return ir.Kind{}, &MismatchError{Context: ctx, InType: ty, Expected: params[0], Actual: paramKind}
		}
		if len(params) == 1 {
			return result, nil
		}
		return ir.NewConstructorKind(params[1:], result), nil
	}

	if orig, dest, ok := ty.AsEquiv(); ok {
		origKind, err := InferKind(ctx, orig)
		if err != nil {
			return ir.Kind{}, err
		}
		destKind, err := InferKind(ctx, dest)
		if err != nil {
			return ir.Kind{}, err
		}
		if !origKind.Equal(ir.KType) {
			return ir.Kind{}, &MismatchError{Context: ctx, InType: ty, Expected: ir.KType, Actual: origKind}
		}
		if !destKind.Equal(ir.KType) {
			return ir.Kind{}, &MismatchError{Context: ctx, InType: ty, Expected: ir.KType, Actual: destKind}
		}
		return ir.KType, nil
	}

	panic("kindcheck: unreachable type variant")
}
