// Package checker strings together parsing, lowering, and type checking
// into the single entry point that the golden scenario tests
// (testdata/*.txtar) drive.
package checker

import (
	"github.com/funvibe/corelang/internal/ir"
	"github.com/funvibe/corelang/internal/lower"
	"github.com/funvibe/corelang/internal/parser"
	"github.com/funvibe/corelang/internal/resolve"
	"github.com/funvibe/corelang/internal/typecheck"
)

// CheckSource parses, lowers, and type-checks src as a closed top-level
// expression under an empty context.
func CheckSource(src string) (*ir.Type, ir.Phase, error) {
	surface, err := parser.Expr(src)
	if err != nil {
		return nil, 0, err
	}
	expr, err := lower.Expr(resolve.NewResolver(), resolve.NewResolver(), surface)
	if err != nil {
		return nil, 0, err
	}
	return typecheck.Check(typecheck.NewContext(), expr)
}
