package typecheck_test

import (
	"errors"
	"testing"

	"github.com/funvibe/corelang/internal/ir"
	. "github.com/funvibe/corelang/internal/testutil"
	"github.com/funvibe/corelang/internal/typecheck"
)

func assertChecks(t *testing.T, ctx *typecheck.Context, ex *ir.Expr, wantTy *ir.Type, wantPhase ir.Phase) {
	t.Helper()
	gotTy, gotPhase, err := typecheck.Check(ctx, ex)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !typecheck.Equiv(gotTy, wantTy) {
		t.Fatalf("got type %s, want %s", gotTy, wantTy)
	}
	if gotPhase != wantPhase {
		t.Fatalf("got phase %s, want %s", gotPhase, wantPhase)
	}
}

// S1: `( )` accepted, type `()`, phase Static.
func TestUnitAccepted(t *testing.T) {
	ctx := typecheck.NewContext()
	assertChecks(t, ctx, UnitExpr(0, 0), Unit(0), ir.Static)
}

// S2: `func (x : ()) -> move x` under an empty context accepted, type
// `() -> ()` (both phases Dynamic), phase Static.
func TestFuncMoveAccepted(t *testing.T) {
	ctx := typecheck.NewContext()
	ex := FuncExpr(Unit(0), ir.Dynamic, MoveVar(1, 0, 0))
	wantTy := FuncPhased(Unit(0), ir.Dynamic, Unit(0), ir.Dynamic)
	assertChecks(t, ctx, ex, wantTy, ir.Static)
}

// S3: `func (x : ()) -> (move x, move x)` rejected with MovedTwice(x).
func TestFuncDoubleMoveRejected(t *testing.T) {
	ctx := typecheck.NewContext()
	ex := FuncExpr(Unit(0), ir.Static, PairExpr(MoveVar(1, 0, 0), MoveVar(1, 0, 0)))
	_, _, err := typecheck.Check(ctx, ex)
	var target *typecheck.MovedTwiceError
	if !errors.As(err, &target) {
		t.Fatalf("expected MovedTwiceError, got %v", err)
	}
}

// S4: `forall {T} func (x : T) -> move x` accepted, type `forall {T} T -> T`.
func TestForAllFuncIdentity(t *testing.T) {
	ctx := typecheck.NewContext()
	ex := ForAllExpr(1, FuncExpr(Var(1, 0), ir.Static, MoveVar(1, 1, 0)))
	wantTy := ForAll(Func(Var(1, 0), Var(1, 0)))
	assertChecks(t, ctx, ex, wantTy, ir.Static)
}

// S5: `let_exists {T} x = make_exists {T = ()} T of () in move x` accepted.
// The synthesized type still names the just-opened existential variable
// (the checker never substitutes the witness back in — ground truth:
// annot_types.rs's LetExists case returns the body's annotation as-is,
// with no escape check), which here is exactly the witness type `()`
// viewed through that one abstract binder.
func TestLetExistsMakeExists(t *testing.T) {
	ctx := typecheck.NewContext()
	val := MakeExistsExpr([]*ir.Type{Unit(0)}, Var(1, 0), UnitExpr(0, 0))
	ex := LetExistsExpr(1, val, MoveVar(1, 1, 0))
	gotTy, gotPhase, err := typecheck.Check(ctx, ex)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if gotPhase != ir.Static {
		t.Fatalf("got phase %s, want static", gotPhase)
	}
	if idx, ok := gotTy.IsVar(); !ok || idx != 0 {
		t.Fatalf("got type %s, want a reference to the opened existential variable", gotTy)
	}
}

// S6: `cast {t} t by refl_equiv{()} of ()` accepted, result type `()`.
func TestCastReflEquiv(t *testing.T) {
	ctx := typecheck.NewContext()
	equivalence := InstExpr(IntrinsicExpr("refl_equiv", 0, 0), []*ir.Type{Unit(0)})
	ex := CastExpr(Var(1, 0), equivalence, UnitExpr(0, 0))
	assertChecks(t, ctx, ex, Unit(0), ir.Static)
}

// S7: given d : () at Dynamic in scope, applying a function expecting a
// static argument to (move d) is rejected with UnexpectedDynamic.
func TestStaticArgRejectsDynamicValue(t *testing.T) {
	ctx := typecheck.NewContext()
	ctx.PushScope()
	ctx.AddVarBinding("d", Unit(0), ir.Dynamic)

	fn := FuncExpr(Unit(0), ir.Static, MoveVar(2, 0, 1))
	ex := AppExpr(fn, MoveVar(1, 0, 0))

	_, _, err := typecheck.Check(ctx, ex)
	var target *typecheck.UnexpectedDynamicError
	if !errors.As(err, &target) {
		t.Fatalf("expected UnexpectedDynamicError, got %v", err)
	}
}

func TestMismatchedArgTypeRejected(t *testing.T) {
	ctx := typecheck.NewContext()
	fn := FuncExpr(Unit(0), ir.Static, MoveVar(1, 0, 0))
	ex := AppExpr(fn, PairExpr(UnitExpr(0, 0), UnitExpr(0, 0)))
	_, _, err := typecheck.Check(ctx, ex)
	var target *typecheck.MismatchError
	if !errors.As(err, &target) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
}

func TestNonCopyableLeftUnmovedRejected(t *testing.T) {
	ctx := typecheck.NewContext()
	ex := FuncExpr(Equiv(Unit(0), Unit(0)), ir.Static, UnitExpr(1, 0))
	_, _, err := typecheck.Check(ctx, ex)
	var target *typecheck.NotMovedError
	if !errors.As(err, &target) {
		t.Fatalf("expected NotMovedError, got %v", err)
	}
}

func TestFuncCopyablePrimitiveIsCopyable(t *testing.T) {
	ctx := typecheck.NewContext()
	ex := FuncExpr(Func(Unit(0), Unit(0)), ir.Static, UnitExpr(1, 0))
	assertChecks(t, ctx, ex, Func(Func(Unit(0), Unit(0)), Unit(0)), ir.Static)
}

func TestLetPairDestructure(t *testing.T) {
	ctx := typecheck.NewContext()
	val := PairExpr(UnitExpr(0, 0), UnitExpr(0, 0))
	ex := LetVars(2, val, PairExpr(MoveVar(2, 0, 0), MoveVar(2, 0, 1)))
	assertChecks(t, ctx, ex, Pair(Unit(0), Unit(0)), ir.Static)
}

func TestInstWrongParamCountRejected(t *testing.T) {
	ctx := typecheck.NewContext()
	receiver := ForAllExpr(1, FuncExpr(Var(1, 0), ir.Static, MoveVar(1, 1, 0)))
	ex := InstExpr(receiver, []*ir.Type{Unit(0), Unit(0)})
	_, _, err := typecheck.Check(ctx, ex)
	var target *typecheck.ExpectedForAllError
	if !errors.As(err, &target) {
		t.Fatalf("expected ExpectedForAllError, got %v", err)
	}
}

func TestUnknownIntrinsicRejected(t *testing.T) {
	ctx := typecheck.NewContext()
	ex := IntrinsicExpr("not_a_real_intrinsic", 0, 0)
	_, _, err := typecheck.Check(ctx, ex)
	var target *typecheck.UnknownIntrinsicError
	if !errors.As(err, &target) {
		t.Fatalf("expected UnknownIntrinsicError, got %v", err)
	}
}

func TestIllegalCopyOfNonPrimitiveRejected(t *testing.T) {
	ctx := typecheck.NewContext()
	ctx.PushScope()
	ctx.AddVarBinding("x", Exists(Var(1, 0)), ir.Static)
	_, _, err := typecheck.Check(ctx, CopyVar(1, 0, 0))
	var target *typecheck.IllegalCopyError
	if !errors.As(err, &target) {
		t.Fatalf("expected IllegalCopyError, got %v", err)
	}
}
