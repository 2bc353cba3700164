// Package lower converts the raw surface syntax (package ast) into the
// locally-nameless IR (package ir), resolving every Ident to a De Bruijn
// index via two independent resolve.Resolver scopes — one for type names,
// one for term variable names — mirroring package typecheck.Context's own
// split between type and variable environments.
package lower

import (
	"github.com/funvibe/corelang/internal/ast"
	"github.com/funvibe/corelang/internal/ir"
	"github.com/funvibe/corelang/internal/resolve"
)

func toIRQuantifier(q ast.Quantifier) ir.Quantifier {
	if q == ast.ForAll {
		return ir.ForAll
	}
	return ir.Exists
}

func toIRPhase(p ast.Phase) ir.Phase {
	if p == ast.Static {
		return ir.Static
	}
	return ir.Dynamic
}

// Type converts a raw surface type into the IR under the given type-name
// resolver, which must already hold any names the type's free variables
// refer to.
func Type(typeNames *resolve.Resolver, ty ast.Type) (*ir.Type, error) {
	switch n := ty.(type) {
	case ast.TypeUnit:
		return ir.NewUnit(typeNames.IndexCount()), nil

	case ast.TypeVar:
		idx, err := typeNames.GetIndex(n.Ident)
		if err != nil {
			return nil, err
		}
		return ir.NewVar(typeNames.IndexCount(), idx), nil

	case ast.TypeQuantified:
		typeNames.PushScope()
		if err := typeNames.AddName(n.Param.Ident); err != nil {
			typeNames.PopScope()
			return nil, err
		}
		body, err := Type(typeNames, n.Body)
		typeNames.PopScope()
		if err != nil {
			return nil, err
		}
		return ir.NewQuantified(toIRQuantifier(n.Quantifier), ir.TypeParam{Name: n.Param.Ident.Name, KindVal: ir.KType}, body), nil

	case ast.TypeFunc:
		arg, err := Type(typeNames, n.Arg)
		if err != nil {
			return nil, err
		}
		ret, err := Type(typeNames, n.Ret)
		if err != nil {
			return nil, err
		}
		return ir.NewFunc(arg, toIRPhase(n.ArgPhase), ret, toIRPhase(n.RetPhase)), nil

	case ast.TypePair:
		left, err := Type(typeNames, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Type(typeNames, n.Right)
		if err != nil {
			return nil, err
		}
		return ir.NewPair(left, right), nil

	case ast.TypeApp:
		constructor, err := Type(typeNames, n.Constructor)
		if err != nil {
			return nil, err
		}
		param, err := Type(typeNames, n.Param)
		if err != nil {
			return nil, err
		}
		return ir.NewApp(constructor, param), nil

	case ast.TypeEquiv:
		orig, err := Type(typeNames, n.Orig)
		if err != nil {
			return nil, err
		}
		dest, err := Type(typeNames, n.Dest)
		if err != nil {
			return nil, err
		}
		return ir.NewEquiv(orig, dest), nil

	default:
		panic("lower: unreachable surface type variant")
	}
}

// Expr converts a raw surface expression into the IR under the given
// term-variable and type-name resolvers, which must already hold any names
// the expression's free variables refer to.
func Expr(varNames, typeNames *resolve.Resolver, ex ast.Expr) (*ir.Expr, error) {
	switch n := ex.(type) {
	case ast.ExprUnit:
		return ir.NewUnitExpr(varNames.IndexCount(), typeNames.IndexCount()), nil

	case ast.ExprVar:
		idx, err := varNames.GetIndex(n.Ident)
		if err != nil {
			return nil, err
		}
		usage := ir.Move
		if n.Usage == ast.Copy {
			usage = ir.Copy
		}
		return ir.NewVarExpr(varNames.IndexCount(), typeNames.IndexCount(), usage, idx), nil

	case ast.ExprForAll:
		typeNames.PushScope()
		decls := make([]ir.TypeParamDecl, len(n.TypeParams))
		for i, p := range n.TypeParams {
			if err := typeNames.AddName(p.Ident); err != nil {
				typeNames.PopScope()
				return nil, err
			}
			decls[i] = ir.TypeParamDecl{Name: p.Ident.Name, Kind: ir.KType}
		}
		body, err := Expr(varNames, typeNames, n.Body)
		typeNames.PopScope()
		if err != nil {
			return nil, err
		}
		return ir.NewForAll(decls, body), nil

	case ast.ExprFunc:
		argType, err := Type(typeNames, n.ArgType)
		if err != nil {
			return nil, err
		}
		varNames.PushScope()
		if err := varNames.AddName(n.ArgName); err != nil {
			varNames.PopScope()
			return nil, err
		}
		body, err := Expr(varNames, typeNames, n.Body)
		varNames.PopScope()
		if err != nil {
			return nil, err
		}
		return ir.NewFuncExpr(n.ArgName.Name, argType, toIRPhase(n.ArgPhase), body), nil

	case ast.ExprInst:
		receiver, err := Expr(varNames, typeNames, n.Receiver)
		if err != nil {
			return nil, err
		}
		typeParams := make([]*ir.Type, len(n.TypeParams))
		for i, tp := range n.TypeParams {
			ty, err := Type(typeNames, tp)
			if err != nil {
				return nil, err
			}
			typeParams[i] = ty
		}
		return ir.NewInst(receiver, typeParams), nil

	case ast.ExprApp:
		callee, err := Expr(varNames, typeNames, n.Callee)
		if err != nil {
			return nil, err
		}
		arg, err := Expr(varNames, typeNames, n.Arg)
		if err != nil {
			return nil, err
		}
		return ir.NewAppExpr(callee, arg), nil

	case ast.ExprPair:
		left, err := Expr(varNames, typeNames, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Expr(varNames, typeNames, n.Right)
		if err != nil {
			return nil, err
		}
		return ir.NewPairExpr(left, right), nil

	case ast.ExprLet:
		val, err := Expr(varNames, typeNames, n.Val)
		if err != nil {
			return nil, err
		}
		varNames.PushScope()
		names := make([]string, len(n.Names))
		for i, id := range n.Names {
			if err := varNames.AddName(id); err != nil {
				varNames.PopScope()
				return nil, err
			}
			names[i] = id.Name
		}
		body, err := Expr(varNames, typeNames, n.Body)
		varNames.PopScope()
		if err != nil {
			return nil, err
		}
		return ir.NewLet(names, val, body), nil

	case ast.ExprLetExists:
		val, err := Expr(varNames, typeNames, n.Val)
		if err != nil {
			return nil, err
		}
		typeNames.PushScope()
		typeNameStrs := make([]string, len(n.TypeNames))
		for i, id := range n.TypeNames {
			if err := typeNames.AddName(id); err != nil {
				typeNames.PopScope()
				return nil, err
			}
			typeNameStrs[i] = id.Name
		}
		varNames.PushScope()
		if err := varNames.AddName(n.ValName); err != nil {
			varNames.PopScope()
			typeNames.PopScope()
			return nil, err
		}
		body, err := Expr(varNames, typeNames, n.Body)
		varNames.PopScope()
		typeNames.PopScope()
		if err != nil {
			return nil, err
		}
		return ir.NewLetExists(typeNameStrs, n.ValName.Name, val, body), nil

	case ast.ExprMakeExists:
		witnesses := make([]ir.ExistsWitness, len(n.Params))
		for i, p := range n.Params {
			witness, err := Type(typeNames, p.Witness)
			if err != nil {
				return nil, err
			}
			witnesses[i] = ir.ExistsWitness{Name: p.Ident.Name, Kind: ir.KType, Witness: witness}
		}
		typeNames.PushScope()
		for _, p := range n.Params {
			if err := typeNames.AddName(p.Ident); err != nil {
				typeNames.PopScope()
				return nil, err
			}
		}
		typeBody, err := Type(typeNames, n.TypeBody)
		typeNames.PopScope()
		if err != nil {
			return nil, err
		}
		body, err := Expr(varNames, typeNames, n.Body)
		if err != nil {
			return nil, err
		}
		return ir.NewMakeExists(witnesses, typeBody, body), nil

	case ast.ExprCast:
		typeNames.PushScope()
		if err := typeNames.AddName(n.Param.Ident); err != nil {
			typeNames.PopScope()
			return nil, err
		}
		typeBody, err := Type(typeNames, n.TypeBody)
		typeNames.PopScope()
		if err != nil {
			return nil, err
		}
		equivalence, err := Expr(varNames, typeNames, n.Equivalence)
		if err != nil {
			return nil, err
		}
		body, err := Expr(varNames, typeNames, n.Body)
		if err != nil {
			return nil, err
		}
		return ir.NewCast(ir.TypeParamDecl{Name: n.Param.Ident.Name, Kind: ir.KType}, typeBody, equivalence, body), nil

	case ast.ExprIntrinsic:
		return ir.NewIntrinsic(varNames.IndexCount(), typeNames.IndexCount(), n.ID), nil

	default:
		panic("lower: unreachable surface expression variant")
	}
}
