package ast

import "github.com/funvibe/corelang/internal/token"

// VarUsage mirrors ir.VarUsage for the surface tree.
type VarUsage int

const (
	Move VarUsage = iota
	Copy
)

// ExistsParam names one make_exists witness binding: `Name = WitnessType`.
type ExistsParam struct {
	Ident   token.Ident
	Witness Type
}

// Expr is the raw surface expression syntax.
type Expr interface{ isExpr() }

type ExprUnit struct{}

type ExprVar struct {
	Usage VarUsage
	Ident token.Ident
}

type ExprForAll struct {
	TypeParams []TypeParam
	Body       Expr
}

type ExprFunc struct {
	ArgName  token.Ident
	ArgType  Type
	ArgPhase Phase
	Body     Expr
}

type ExprInst struct {
	Receiver   Expr
	TypeParams []Type
}

type ExprApp struct{ Callee, Arg Expr }

type ExprPair struct{ Left, Right Expr }

type ExprLet struct {
	Names []token.Ident
	Val   Expr
	Body  Expr
}

type ExprLetExists struct {
	TypeNames []token.Ident
	ValName   token.Ident
	Val       Expr
	Body      Expr
}

type ExprMakeExists struct {
	Params   []ExistsParam
	TypeBody Type
	Body     Expr
}

type ExprCast struct {
	Param       TypeParam
	TypeBody    Type
	Equivalence Expr
	Body        Expr
}

// ExprIntrinsic is a reference to a built-in primitive by surface keyword
// (currently only `refl_equiv`).
type ExprIntrinsic struct{ ID string }

func (ExprUnit) isExpr()       {}
func (ExprVar) isExpr()        {}
func (ExprForAll) isExpr()     {}
func (ExprFunc) isExpr()       {}
func (ExprInst) isExpr()       {}
func (ExprApp) isExpr()        {}
func (ExprPair) isExpr()       {}
func (ExprLet) isExpr()        {}
func (ExprLetExists) isExpr()  {}
func (ExprMakeExists) isExpr() {}
func (ExprCast) isExpr()       {}
func (ExprIntrinsic) isExpr()  {}
