// Package session wraps a single parse/lower/typecheck run with logging: a
// correlation id and start/end lines through the standard `log` package.
// This lives outside the pure core — the core itself (packages ir,
// kindcheck, typecheck, resolve, prettyprint) stays non-suspending and
// I/O-free, and reports only structured errors.
package session

import (
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/funvibe/corelang/internal/ir"
	"github.com/funvibe/corelang/internal/lower"
	"github.com/funvibe/corelang/internal/parser"
	"github.com/funvibe/corelang/internal/resolve"
	"github.com/funvibe/corelang/internal/typecheck"
)

// Result is the outcome of a successful Run: the expression's synthesized
// type and phase, plus the IR tree itself for a caller that wants to
// pretty-print or otherwise inspect it further.
type Result struct {
	Expr  *ir.Expr
	Type  *ir.Type
	Phase ir.Phase
}

// Run parses src as a surface expression, lowers it, and type-checks it,
// logging a correlation id, elapsed time, and humanized source-size/node
// count around the call.
func Run(src string) (Result, error) {
	id := uuid.New()
	start := time.Now()
	log.Printf("[%s] checking %s of source", id, humanize.Bytes(uint64(len(src))))

	surface, err := parser.Expr(src)
	if err != nil {
		log.Printf("[%s] parse failed after %s: %v", id, time.Since(start), err)
		return Result{}, err
	}

	varNames := resolve.NewResolver()
	typeNames := resolve.NewResolver()
	expr, err := lower.Expr(varNames, typeNames, surface)
	if err != nil {
		log.Printf("[%s] lowering failed after %s: %v", id, time.Since(start), err)
		return Result{}, err
	}

	ctx := typecheck.NewContext()
	ty, phase, err := typecheck.Check(ctx, expr)
	if err != nil {
		log.Printf("[%s] type check failed after %s: %v", id, time.Since(start), err)
		return Result{}, err
	}

	log.Printf("[%s] checked %s node tree in %s", id, humanize.Comma(int64(nodeCount(expr))), time.Since(start))
	return Result{Expr: expr, Type: ty, Phase: phase}, nil
}

// nodeCount walks ex and returns the number of Expr nodes in its tree, for
// the logged summary.
func nodeCount(ex *ir.Expr) int {
	if ex.IsUnit() {
		return 1
	}
	if _, _, ok := ex.AsVar(); ok {
		return 1
	}
	if _, body, ok := ex.AsForAll(); ok {
		return 1 + nodeCount(body)
	}
	if _, _, _, body, ok := ex.AsFunc(); ok {
		return 1 + nodeCount(body)
	}
	if receiver, _, ok := ex.AsInst(); ok {
		return 1 + nodeCount(receiver)
	}
	if callee, arg, ok := ex.AsApp(); ok {
		return 1 + nodeCount(callee) + nodeCount(arg)
	}
	if left, right, ok := ex.AsPair(); ok {
		return 1 + nodeCount(left) + nodeCount(right)
	}
	if _, val, body, ok := ex.AsLet(); ok {
		return 1 + nodeCount(val) + nodeCount(body)
	}
	if _, _, val, body, ok := ex.AsLetExists(); ok {
		return 1 + nodeCount(val) + nodeCount(body)
	}
	if _, _, body, ok := ex.AsMakeExists(); ok {
		return 1 + nodeCount(body)
	}
	if _, _, equivalence, body, ok := ex.AsCast(); ok {
		return 1 + nodeCount(equivalence) + nodeCount(body)
	}
	if _, ok := ex.AsIntrinsic(); ok {
		return 1
	}
	panic("session: unreachable expr variant")
}
