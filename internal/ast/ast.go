// Package ast defines the raw surface syntax tree produced by the parser:
// the same node shapes as package ir, but addressed by token.Ident rather
// than De Bruijn indices, and carrying no free/maxIndex metadata — that is
// computed by the resolver (package resolve) during lowering.
package ast

import "github.com/funvibe/corelang/internal/token"

// TypeParam names a binder's surface identifier.
type TypeParam struct {
	Ident token.Ident
}

// Quantifier mirrors ir.Quantifier for the surface tree.
type Quantifier int

const (
	Exists Quantifier = iota
	ForAll
)

// Phase mirrors ir.Phase for the surface tree; the `static` keyword marks
// Static explicitly, absence defaults to Dynamic.
type Phase int

const (
	Dynamic Phase = iota
	Static
)

// Type is the raw surface type syntax.
type Type interface{ isType() }

type TypeUnit struct{}

type TypeVar struct{ Ident token.Ident }

type TypeQuantified struct {
	Quantifier Quantifier
	Param      TypeParam
	Body       Type
}

type TypeFunc struct {
	Arg      Type
	ArgPhase Phase
	Ret      Type
	RetPhase Phase
}

type TypePair struct{ Left, Right Type }

type TypeApp struct{ Constructor, Param Type }

type TypeEquiv struct{ Orig, Dest Type }

func (TypeUnit) isType()       {}
func (TypeVar) isType()        {}
func (TypeQuantified) isType() {}
func (TypeFunc) isType()       {}
func (TypePair) isType()       {}
func (TypeApp) isType()        {}
func (TypeEquiv) isType()      {}
