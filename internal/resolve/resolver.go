// Package resolve implements the two scoped name environments the surface
// language needs: an injective Resolver mapping surface identifiers
// to De Bruijn indices for lowering, and a permissive Namer that invents
// collision-free display names for pretty-printing.
package resolve

import (
	"fmt"

	"github.com/funvibe/corelang/internal/token"
)

// ShadowError reports that ident was already bound in the current
// environment.
type ShadowError struct {
	Ident token.Ident
}

func (e *ShadowError) Error() string {
	return fmt.Sprintf("resolve: %s already bound (shadowing is not allowed here)", e.Ident)
}

// NotFoundError reports that ident has no binding.
type NotFoundError struct {
	Ident token.Ident
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resolve: %s not found", e.Ident)
}

type resolverScope struct {
	addedNames []token.Ident
}

// Resolver maps surface identifiers to De Bruijn indices, assigned in
// insertion order starting from 0. Shadowing is rejected: AddName fails if
// the identifier is already bound anywhere in the live environment.
type Resolver struct {
	indices map[token.Ident]int
	scopes  []resolverScope
}

// NewResolver returns an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{indices: make(map[token.Ident]int)}
}

// IndexCount returns the number of names currently bound.
func (r *Resolver) IndexCount() int { return len(r.indices) }

// PushScope opens a new scope. Every PushScope must be matched by exactly
// one PopScope along every exit path, including error paths.
func (r *Resolver) PushScope() {
	r.scopes = append(r.scopes, resolverScope{})
}

// PopScope closes the most recently opened scope, unbinding every name
// added since the matching PushScope. It panics if no scope is open —
// popping an empty scope stack is a programmer bug, not a recoverable
// error (mirrors the original's pop_scope, which does the same via
// `.expect("Stack underflow")`).
func (r *Resolver) PopScope() {
	if len(r.scopes) == 0 {
		panic("resolve: PopScope: stack underflow")
	}
	last := len(r.scopes) - 1
	scope := r.scopes[last]
	r.scopes = r.scopes[:last]
	for _, name := range scope.addedNames {
		delete(r.indices, name)
	}
}

// AddName binds ident to the next available index. Returns ShadowError if
// ident is already bound.
func (r *Resolver) AddName(ident token.Ident) error {
	if _, exists := r.indices[ident]; exists {
		return &ShadowError{Ident: ident}
	}
	r.indices[ident] = len(r.indices)
	if len(r.scopes) > 0 {
		last := len(r.scopes) - 1
		r.scopes[last].addedNames = append(r.scopes[last].addedNames, ident)
	}
	return nil
}

// GetIndex looks up ident's De Bruijn index. Returns NotFoundError if
// unbound.
func (r *Resolver) GetIndex(ident token.Ident) (int, error) {
	idx, ok := r.indices[ident]
	if !ok {
		return 0, &NotFoundError{Ident: ident}
	}
	return idx, nil
}
