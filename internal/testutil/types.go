// Package testutil provides smart constructors for building ir.Type and
// ir.Expr trees tersely in tests, mirroring the convenience functions the
// original keeps in src/test_utils/types.rs and src/test_utils/expr.rs
// (unit, var, exists, forall, func, func_forall, pair, app, ...).
package testutil

import "github.com/funvibe/corelang/internal/ir"

// Unit builds the unit type with free free variables.
func Unit(free int) *ir.Type { return ir.NewUnit(free) }

// Var builds a bound-variable reference.
func Var(free, index int) *ir.Type { return ir.NewVar(free, index) }

// Exists wraps body in an unnamed existential binder of kind Type.
func Exists(body *ir.Type) *ir.Type {
	return ir.NewQuantified(ir.Exists, ir.TypeParam{KindVal: ir.KType}, body)
}

// ExistsK wraps body in an unnamed existential binder of the given kind.
func ExistsK(kind ir.Kind, body *ir.Type) *ir.Type {
	return ir.NewQuantified(ir.Exists, ir.TypeParam{KindVal: kind}, body)
}

// ExistsNamed wraps body in a named existential binder of kind Type.
func ExistsNamed(name string, body *ir.Type) *ir.Type {
	return ir.NewQuantified(ir.Exists, ir.TypeParam{Name: name, KindVal: ir.KType}, body)
}

// ForAll wraps body in an unnamed universal binder of kind Type.
func ForAll(body *ir.Type) *ir.Type {
	return ir.NewQuantified(ir.ForAll, ir.TypeParam{KindVal: ir.KType}, body)
}

// ForAllK wraps body in an unnamed universal binder of the given kind.
func ForAllK(kind ir.Kind, body *ir.Type) *ir.Type {
	return ir.NewQuantified(ir.ForAll, ir.TypeParam{KindVal: kind}, body)
}

// ForAllNamed wraps body in a named universal binder of kind Type.
func ForAllNamed(name string, body *ir.Type) *ir.Type {
	return ir.NewQuantified(ir.ForAll, ir.TypeParam{Name: name, KindVal: ir.KType}, body)
}

// Func builds a function type with both phases defaulted to Static, the
// common case in tests that don't exercise the phase lattice.
func Func(arg, ret *ir.Type) *ir.Type {
	return ir.NewFunc(arg, ir.Static, ret, ir.Static)
}

// FuncPhased builds a function type with explicit argument/result phases.
func FuncPhased(arg *ir.Type, argPhase ir.Phase, ret *ir.Type, retPhase ir.Phase) *ir.Type {
	return ir.NewFunc(arg, argPhase, ret, retPhase)
}

// FuncForAll wraps a Func in n unnamed universal binders, outermost first.
func FuncForAll(n int, arg, ret *ir.Type) *ir.Type {
	result := Func(arg, ret)
	for i := 0; i < n; i++ {
		result = ForAll(result)
	}
	return result
}

// Pair builds a pair type.
func Pair(left, right *ir.Type) *ir.Type { return ir.NewPair(left, right) }

// App builds a type-constructor application.
func App(constructor, param *ir.Type) *ir.Type { return ir.NewApp(constructor, param) }

// Equiv builds an equivalence-witness type.
func Equiv(orig, dest *ir.Type) *ir.Type { return ir.NewEquiv(orig, dest) }
