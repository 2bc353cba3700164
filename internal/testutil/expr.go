package testutil

import "github.com/funvibe/corelang/internal/ir"

// UnitExpr builds the unit-value expression.
func UnitExpr(freeVars, freeTypes int) *ir.Expr { return ir.NewUnitExpr(freeVars, freeTypes) }

// MoveVar builds a Move occurrence of the variable at index.
func MoveVar(freeVars, freeTypes, index int) *ir.Expr {
	return ir.NewVarExpr(freeVars, freeTypes, ir.Move, index)
}

// CopyVar builds a Copy occurrence of the variable at index.
func CopyVar(freeVars, freeTypes, index int) *ir.Expr {
	return ir.NewVarExpr(freeVars, freeTypes, ir.Copy, index)
}

// ForAllExpr wraps body in n unnamed type-parameter binders of kind Type.
func ForAllExpr(paramCount int, body *ir.Expr) *ir.Expr {
	params := make([]ir.TypeParamDecl, paramCount)
	for i := range params {
		params[i] = ir.TypeParamDecl{Kind: ir.KType}
	}
	return ir.NewForAll(params, body)
}

// ForAllExprNamed wraps body in named type-parameter binders of kind Type.
func ForAllExprNamed(names []string, body *ir.Expr) *ir.Expr {
	params := make([]ir.TypeParamDecl, len(names))
	for i, n := range names {
		params[i] = ir.TypeParamDecl{Name: n, Kind: ir.KType}
	}
	return ir.NewForAll(params, body)
}

// FuncExpr builds an unnamed-argument function abstraction at the given
// argument phase.
func FuncExpr(argType *ir.Type, argPhase ir.Phase, body *ir.Expr) *ir.Expr {
	return ir.NewFuncExpr("", argType, argPhase, body)
}

// FuncExprNamed builds a named-argument function abstraction.
func FuncExprNamed(argName string, argType *ir.Type, argPhase ir.Phase, body *ir.Expr) *ir.Expr {
	return ir.NewFuncExpr(argName, argType, argPhase, body)
}

// FuncForAllExpr wraps a FuncExpr in n unnamed universal binders.
func FuncForAllExpr(paramCount int, argType *ir.Type, argPhase ir.Phase, body *ir.Expr) *ir.Expr {
	return ForAllExpr(paramCount, FuncExpr(argType, argPhase, body))
}

// InstExpr builds a universal instantiation.
func InstExpr(receiver *ir.Expr, typeParams []*ir.Type) *ir.Expr {
	return ir.NewInst(receiver, typeParams)
}

// AppExpr builds a function application.
func AppExpr(callee, arg *ir.Expr) *ir.Expr { return ir.NewAppExpr(callee, arg) }

// AppForAllExpr applies callee after instantiating it with typeParams.
func AppForAllExpr(callee *ir.Expr, typeParams []*ir.Type, arg *ir.Expr) *ir.Expr {
	return AppExpr(InstExpr(callee, typeParams), arg)
}

// PairExpr builds a pair value.
func PairExpr(left, right *ir.Expr) *ir.Expr { return ir.NewPairExpr(left, right) }

// LetVars pattern-binds val to count unnamed names.
func LetVars(count int, val, body *ir.Expr) *ir.Expr {
	names := make([]string, count)
	return ir.NewLet(names, val, body)
}

// LetVarsNamed pattern-binds val to the given names.
func LetVarsNamed(names []string, val, body *ir.Expr) *ir.Expr {
	return ir.NewLet(names, val, body)
}

// LetExistsExpr opens typeCount unnamed existential layers.
func LetExistsExpr(typeCount int, val, body *ir.Expr) *ir.Expr {
	typeNames := make([]string, typeCount)
	return ir.NewLetExists(typeNames, "", val, body)
}

// LetExistsExprNamed opens named existential layers.
func LetExistsExprNamed(typeNames []string, valName string, val, body *ir.Expr) *ir.Expr {
	return ir.NewLetExists(typeNames, valName, val, body)
}

// MakeExistsExpr introduces unnamed existential witnesses.
func MakeExistsExpr(params []*ir.Type, typeBody *ir.Type, body *ir.Expr) *ir.Expr {
	witnesses := make([]ir.ExistsWitness, len(params))
	for i, p := range params {
		witnesses[i] = ir.ExistsWitness{Kind: ir.KType, Witness: p}
	}
	return ir.NewMakeExists(witnesses, typeBody, body)
}

// ExistsParam names one witness/kind pair for MakeExistsExprNamed.
type ExistsParam struct {
	Name    string
	Kind    ir.Kind
	Witness *ir.Type
}

// MakeExistsExprNamed introduces named existential witnesses.
func MakeExistsExprNamed(params []ExistsParam, typeBody *ir.Type, body *ir.Expr) *ir.Expr {
	witnesses := make([]ir.ExistsWitness, len(params))
	for i, p := range params {
		witnesses[i] = ir.ExistsWitness{Name: p.Name, Kind: p.Kind, Witness: p.Witness}
	}
	return ir.NewMakeExists(witnesses, typeBody, body)
}

// CastExpr rewrites the type of body via equivalence, with an unnamed hole
// parameter.
func CastExpr(typeBody *ir.Type, equivalence, body *ir.Expr) *ir.Expr {
	return ir.NewCast(ir.TypeParamDecl{Kind: ir.KType}, typeBody, equivalence, body)
}

// CastExprNamed rewrites the type of body via equivalence, naming the hole
// parameter.
func CastExprNamed(paramName string, typeBody *ir.Type, equivalence, body *ir.Expr) *ir.Expr {
	return ir.NewCast(ir.TypeParamDecl{Name: paramName, Kind: ir.KType}, typeBody, equivalence, body)
}

// IntrinsicExpr builds a reference to a built-in primitive.
func IntrinsicExpr(id string, freeVars, freeTypes int) *ir.Expr {
	return ir.NewIntrinsic(freeVars, freeTypes, id)
}
