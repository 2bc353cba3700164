package typecheck

import (
	"fmt"

	"github.com/funvibe/corelang/internal/ir"
)

// IsCopyablePrimitive reports whether ty is copyable-primitive: every
// reachable node is Unit, Quantified (recurse into body), Func, or Pair
// (recurse into both). Var, App, and Equiv disqualify.
func IsCopyablePrimitive(ty *ir.Type) bool {
	if ty.IsUnit() {
		return true
	}
	if _, _, body, ok := ty.AsQuantified(); ok {
		return IsCopyablePrimitive(body)
	}
	if _, _, _, _, ok := ty.AsFunc(); ok {
		return true
	}
	if left, right, ok := ty.AsPair(); ok {
		return IsCopyablePrimitive(left) && IsCopyablePrimitive(right)
	}
	return false
}

func checkMovedInScope(ctx *Context) error {
	start, end := ctx.CurrScopeVarRange()
	for v := start; v < end; v++ {
		if ctx.VarUsage(v) == Moved {
			continue
		}
		if !IsCopyablePrimitive(ctx.VarType(v)) {
			return &NotMovedError{Context: snapshot(ctx), Var: v}
		}
	}
	return nil
}

// Check synthesizes the type and phase of ex under ctx (`annot_types`,
// Panics if ex's free-variable or free-type counts do not match
// ctx — a precondition violation, not a recoverable error.
//
// As with package kindcheck, this does not build a persisted per-node
// annotated copy of ex: nothing downstream in this scope consumes one, so
// Check computes and validates every nested (type, phase) pair internally
// as it recurses, returning only the result for the expression as a whole.
// See DESIGN.md.
func Check(ctx *Context, ex *ir.Expr) (*ir.Type, ir.Phase, error) {
	if ex.FreeVars() != ctx.VarIndexCount() {
		panic(fmt.Sprintf("typecheck: cannot annotate an expression with %d free variables in a context with %d free variables", ex.FreeVars(), ctx.VarIndexCount()))
	}
	if ex.FreeTypes() != ctx.TypeIndexCount() {
		panic(fmt.Sprintf("typecheck: cannot annotate an expression with %d free types in a context with %d free types", ex.FreeTypes(), ctx.TypeIndexCount()))
	}

	if ex.IsUnit() {
		return ir.NewUnit(ctx.TypeIndexCount()), ir.Static, nil
	}

	if usage, index, ok := ex.AsVar(); ok {
		switch usage {
		case ir.Move:
			if ctx.VarUsage(index) == Moved {
				return nil, 0, &MovedTwiceError{Context: snapshot(ctx), Var: index}
			}
			ctx.SetVarUsage(index, Moved)
		case ir.Copy:
			if !IsCopyablePrimitive(ctx.VarType(index)) {
				return nil, 0, &IllegalCopyError{Context: snapshot(ctx), Var: index}
			}
		}
		ty := ctx.VarType(index).AccommodateFree(ctx.TypeIndexCount())
		return ty, ctx.VarPhase(index), nil
	}

	if typeParams, body, ok := ex.AsForAll(); ok {
		ctx.PushScope()
		for _, tp := range typeParams {
			ctx.AddTypeKind(tp.Name, tp.Kind)
		}
		bodyTy, bodyPhase, err := Check(ctx, body)
		ctx.PopScope()
		if err != nil {
			return nil, 0, err
		}
		result := bodyTy
		for i := len(typeParams) - 1; i >= 0; i-- {
			result = ir.NewQuantified(ir.ForAll, ir.TypeParam{Name: typeParams[i].Name, KindVal: typeParams[i].Kind}, result)
		}
		return result, bodyPhase, nil
	}

	if argName, argType, argPhase, body, ok := ex.AsFunc(); ok {
		ctx.PushScope()
		ctx.AddVarBinding(argName, argType, argPhase)
		bodyTy, bodyPhase, err := Check(ctx, body)
		if err == nil {
			err = checkMovedInScope(ctx)
		}
		ctx.PopScope()
		if err != nil {
			return nil, 0, err
		}
		return ir.NewFunc(argType, argPhase, bodyTy, bodyPhase), ir.Static, nil
	}

	if receiver, typeParams, ok := ex.AsInst(); ok {
		receiverTy, receiverPhase, err := Check(ctx, receiver)
		if err != nil {
			return nil, 0, err
		}
		cur := receiverTy
		for range typeParams {
			q, _, b, ok := cur.AsQuantified()
			if !ok || q != ir.ForAll {
				return nil, 0, &ExpectedForAllError{Context: snapshot(ctx), InExpr: ex, Actual: cur}
			}
			cur = b
		}
		result := cur.Subst(typeParams)
		return result, receiverPhase, nil
	}

	if callee, argExpr, ok := ex.AsApp(); ok {
		calleeTy, calleePhase, err := Check(ctx, callee)
		if err != nil {
			return nil, 0, err
		}
		argTy, argPhase, err := Check(ctx, argExpr)
		if err != nil {
			return nil, 0, err
		}
		expectedArg, expectedArgPhase, ret, retPhase, ok := calleeTy.AsFunc()
		if !ok {
			return nil, 0, &ExpectedFuncError{Context: snapshot(ctx), InExpr: ex, Actual: calleeTy}
		}
		if !SubPhase(argPhase, expectedArgPhase) {
			return nil, 0, &UnexpectedDynamicError{Context: snapshot(ctx), InExpr: ex}
		}
		if !Subtype(argTy, expectedArg) {
			return nil, 0, &MismatchError{Context: snapshot(ctx), InExpr: ex, Expected: expectedArg, Actual: argTy}
		}
		resultPhase := ir.Dynamic
		if calleePhase == ir.Static && retPhase == ir.Static && argPhase == ir.Static {
			resultPhase = ir.Static
		}
		return ret, resultPhase, nil
	}

	if leftEx, rightEx, ok := ex.AsPair(); ok {
		leftTy, leftPhase, err := Check(ctx, leftEx)
		if err != nil {
			return nil, 0, err
		}
		rightTy, rightPhase, err := Check(ctx, rightEx)
		if err != nil {
			return nil, 0, err
		}
		phase := ir.Dynamic
		if leftPhase == ir.Static && rightPhase == ir.Static {
			phase = ir.Static
		}
		return ir.NewPair(leftTy, rightTy), phase, nil
	}

	if names, val, body, ok := ex.AsLet(); ok {
		valTy, valPhase, err := Check(ctx, val)
		if err != nil {
			return nil, 0, err
		}
		ctx.PushScope()
		cur := valTy
		for i := 0; i < len(names)-1; i++ {
			l, r, ok := cur.AsPair()
			if !ok {
				ctx.PopScope()
				return nil, 0, &ExpectedPairError{Context: snapshot(ctx), InExpr: ex, Actual: cur}
			}
			ctx.AddVarBinding(names[i], l, valPhase)
			cur = r
		}
		ctx.AddVarBinding(names[len(names)-1], cur, valPhase)

		bodyTy, bodyPhase, err := Check(ctx, body)
		if err == nil {
			err = checkMovedInScope(ctx)
		}
		ctx.PopScope()
		if err != nil {
			return nil, 0, err
		}
		return bodyTy, bodyPhase, nil
	}

	if typeNames, valName, val, body, ok := ex.AsLetExists(); ok {
		valTy, valPhase, err := Check(ctx, val)
		if err != nil {
			return nil, 0, err
		}
		ctx.PushScope()
		cur := valTy
		for _, name := range typeNames {
			q, param, b, ok := cur.AsQuantified()
			if !ok || q != ir.Exists {
				ctx.PopScope()
				return nil, 0, &ExpectedExistsError{Context: snapshot(ctx), InExpr: ex, Actual: cur}
			}
			ctx.AddTypeKind(name, param.Kind())
			cur = b
		}
		ctx.AddVarBinding(valName, cur, valPhase)

		bodyTy, bodyPhase, err := Check(ctx, body)
		if err == nil {
			err = checkMovedInScope(ctx)
		}
		ctx.PopScope()
		if err != nil {
			return nil, 0, err
		}
		return bodyTy, bodyPhase, nil
	}

	if params, typeBody, body, ok := ex.AsMakeExists(); ok {
		bodyTy, bodyPhase, err := Check(ctx, body)
		if err != nil {
			return nil, 0, err
		}
		witnesses := make([]*ir.Type, len(params))
		for i, p := range params {
			witnesses[i] = p.Witness
		}
		instantiated := typeBody.Subst(witnesses)
		if !Subtype(bodyTy, instantiated) {
			return nil, 0, &MismatchError{Context: snapshot(ctx), InExpr: ex, Expected: instantiated, Actual: bodyTy}
		}
		result := typeBody
		for i := len(params) - 1; i >= 0; i-- {
			result = ir.NewQuantified(ir.Exists, ir.TypeParam{Name: params[i].Name, KindVal: params[i].Kind}, result)
		}
		return result, bodyPhase, nil
	}

	if param, typeBody, equivalence, body, ok := ex.AsCast(); ok {
		equivTy, _, err := Check(ctx, equivalence)
		if err != nil {
			return nil, 0, err
		}
		bodyTy, bodyPhase, err := Check(ctx, body)
		if err != nil {
			return nil, 0, err
		}
		orig, dest, ok := equivTy.AsEquiv()
		if !ok {
			return nil, 0, &ExpectedEquivalenceError{Context: snapshot(ctx), InExpr: ex, Actual: equivTy}
		}
		fromHole := typeBody.Subst([]*ir.Type{orig})
		if !Subtype(bodyTy, fromHole) {
			return nil, 0, &MismatchError{Context: snapshot(ctx), InExpr: ex, Expected: fromHole, Actual: bodyTy}
		}
		result := typeBody.Subst([]*ir.Type{dest})
		_ = param
		return result, bodyPhase, nil
	}

	if id, ok := ex.AsIntrinsic(); ok {
		sig, known := intrinsics[id]
		if !known {
			return nil, 0, &UnknownIntrinsicError{ID: id}
		}
		return sig.AccommodateFree(ctx.TypeIndexCount()), ir.Static, nil
	}

	panic("typecheck: unreachable expression variant")
}
