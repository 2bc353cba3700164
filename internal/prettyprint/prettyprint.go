// Package prettyprint converts the IR back into surface source text: the
// inverse of package lower, driving the generic layout combinators in
// package layout and alpha-renaming bound variables through a pair of
// resolve.Namer environments so that re-parsing the output and lowering it
// again yields an equivalent term.
package prettyprint

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/corelang/internal/ir"
	"github.com/funvibe/corelang/internal/layout"
	"github.com/funvibe/corelang/internal/resolve"
)

// Place is the syntactic position of a subterm, consulted to decide
// whether a node must parenthesize itself to round-trip through the
// surface grammar.
type Place int

const (
	Root Place = iota
	AbsBody
	AppCallee
	PairLeft
	PairRight
	QuantifierBody
	LetBody
	ForAllBody
	MakeExistsBody
	CastBody
	AppConstructor
	AppParam
)

// appRestricted reports whether place only accepts an application-level (or
// tighter) operand. A Pair node needs parens exactly in these places — its
// other operand position, PairRight, is where the flat right-associative
// comma chain continues unparenthesized.
func appRestricted(place Place) bool {
	switch place {
	case AppCallee, AppConstructor, AppParam, PairLeft:
		return true
	default:
		return false
	}
}

// lowPrecNeedsParens reports whether place demands an application-level (or
// tighter) operand for anything that is not itself a continuing chain of
// the same syntactic form — i.e. every place except the handful where a
// full type or expression may appear bare. ForAll, Func, Let, LetExists,
// MakeExists, Cast, and Equiv all need parens here, including on the right
// of a comma: unlike Pair, they are not reparsed as a continuation of their
// own grammar rule in that position.
func lowPrecNeedsParens(place Place) bool {
	switch place {
	case Root, QuantifierBody, ForAllBody, LetBody, MakeExistsBody, CastBody, AbsBody:
		return false
	default:
		return true
	}
}

// Printer renders IR to surface text at a target line width, optionally
// bolding keywords when writing to a terminal.
type Printer struct {
	Width     int
	Highlight bool
}

// NewPrinter builds a plain (non-highlighting) printer at the given width.
func NewPrinter(width int) *Printer {
	return &Printer{Width: width}
}

// NewPrinterForFile derives Highlight from whether f is a terminal, so
// keyword bolding only kicks in when writing to an interactive shell.
func NewPrinterForFile(width int, f *os.File) *Printer {
	p := &Printer{Width: width}
	if f != nil {
		fd := f.Fd()
		p.Highlight = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return p
}

func (p *Printer) keyword(kw string) layout.Doc {
	if p.Highlight {
		return layout.Text("\x1b[1m" + kw + "\x1b[0m")
	}
	return layout.Text(kw)
}

func wrap(needParens bool, inner layout.Doc) layout.Doc {
	if !needParens {
		return inner
	}
	return layout.Concat(layout.Text("("), inner, layout.Text(")"))
}

// RenderType renders ty at Root under namer.
func (p *Printer) RenderType(namer *resolve.Namer, ty *ir.Type) string {
	return layout.Render(p.Type(namer, ty, Root), p.Width)
}

// RenderExpr renders ex at Root under varNamer/typeNamer.
func (p *Printer) RenderExpr(varNamer, typeNamer *resolve.Namer, ex *ir.Expr) string {
	return layout.Render(p.Expr(varNamer, typeNamer, ex, Root), p.Width)
}

// Type renders ty as a layout.Doc at the given syntactic place.
func (p *Printer) Type(namer *resolve.Namer, ty *ir.Type, place Place) layout.Doc {
	if ty.IsUnit() {
		return layout.Text("()")
	}
	if idx, ok := ty.IsVar(); ok {
		return layout.Text(namer.GetName(idx))
	}
	if q, param, body, ok := ty.AsQuantified(); ok {
		namer.PushScope()
		display := namer.AddName(param.Name)
		bodyDoc := p.Type(namer, body, QuantifierBody)
		namer.PopScope()
		inner := layout.Concat(
			p.keyword(q.String()), layout.Text(" {"+display+"} "), bodyDoc,
		)
		return wrap(lowPrecNeedsParens(place), inner)
	}
	if arg, argPhase, ret, retPhase, ok := ty.AsFunc(); ok {
		argDoc := p.Type(namer, arg, AppParam)
		if argPhase == ir.Static {
			argDoc = layout.Concat(layout.Text("("), p.keyword("static"), layout.Text(" "), argDoc, layout.Text(")"))
		}
		// A nested Func on the right of -> continues the same right-associative
		// arrow chain and needs no parens; anything else in that slot is only
		// reachable through the operand grammar, same restriction as the arg.
		retPlace := AppParam
		if _, _, _, _, retIsFunc := ret.AsFunc(); retIsFunc {
			retPlace = Root
		}
		retDoc := p.Type(namer, ret, retPlace)
		if retPhase == ir.Static {
			retDoc = layout.Concat(p.keyword("static"), layout.Text(" "), retDoc)
		}
		inner := layout.Concat(argDoc, layout.Text(" -> "), retDoc)
		return wrap(lowPrecNeedsParens(place), inner)
	}
	if left, right, ok := ty.AsPair(); ok {
		inner := layout.Concat(
			p.Type(namer, left, PairLeft), layout.Text(", "), p.Type(namer, right, PairRight),
		)
		return wrap(appRestricted(place), inner)
	}
	if constructor, param, ok := ty.AsApp(); ok {
		inner := layout.Concat(p.Type(namer, constructor, AppConstructor), layout.Text(" "), p.Type(namer, param, AppParam))
		return wrap(place == AppParam, inner)
	}
	if orig, dest, ok := ty.AsEquiv(); ok {
		inner := layout.Concat(p.keyword("equiv"), layout.Text(" "), p.Type(namer, orig, AppParam), layout.Text(" "), p.Type(namer, dest, AppParam))
		return wrap(lowPrecNeedsParens(place), inner)
	}
	panic("prettyprint: unreachable type variant")
}

// Expr renders ex as a layout.Doc at the given syntactic place.
func (p *Printer) Expr(varNamer, typeNamer *resolve.Namer, ex *ir.Expr, place Place) layout.Doc {
	if ex.IsUnit() {
		return layout.Text("()")
	}
	if usage, index, ok := ex.AsVar(); ok {
		name := varNamer.GetName(index)
		if usage == ir.Move {
			return layout.Concat(p.keyword("move"), layout.Text(" "+name))
		}
		return layout.Text(name)
	}
	if typeParams, body, ok := ex.AsForAll(); ok {
		typeNamer.PushScope()
		var params []string
		for _, tp := range typeParams {
			params = append(params, typeNamer.AddName(tp.Name))
		}
		bodyDoc := p.Expr(varNamer, typeNamer, body, ForAllBody)
		typeNamer.PopScope()
		inner := layout.Concat(p.keyword("forall"), layout.Text(" "+bracesList(params)+" "), bodyDoc)
		return wrap(lowPrecNeedsParens(place), inner)
	}
	if argName, argType, argPhase, body, ok := ex.AsFunc(); ok {
		argTypeDoc := p.Type(typeNamer, argType, Root)
		varNamer.PushScope()
		display := varNamer.AddName(argName)
		bodyDoc := p.Expr(varNamer, typeNamer, body, AbsBody)
		varNamer.PopScope()
		phase := ""
		if argPhase == ir.Static {
			phase = "static "
		}
		inner := layout.Concat(
			p.keyword("func"), layout.Text(" ("+phase+display+" : "), argTypeDoc, layout.Text(") -> "), bodyDoc,
		)
		return wrap(lowPrecNeedsParens(place), inner)
	}
	if receiver, typeParams, ok := ex.AsInst(); ok {
		recvDoc := p.Expr(varNamer, typeNamer, receiver, AppCallee)
		var params []layout.Doc
		for _, tp := range typeParams {
			params = append(params, layout.Concat(layout.Text("{"), p.Type(typeNamer, tp, Root), layout.Text("}")))
		}
		return layout.Concat(append([]layout.Doc{recvDoc}, params...)...)
	}
	if callee, arg, ok := ex.AsApp(); ok {
		calleeDoc := p.Expr(varNamer, typeNamer, callee, AppCallee)
		argDoc := p.Expr(varNamer, typeNamer, arg, Root)
		return layout.Concat(calleeDoc, layout.Text("("), argDoc, layout.Text(")"))
	}
	if left, right, ok := ex.AsPair(); ok {
		inner := layout.Concat(
			p.Expr(varNamer, typeNamer, left, PairLeft), layout.Text(", "), p.Expr(varNamer, typeNamer, right, PairRight),
		)
		return wrap(appRestricted(place), inner)
	}
	if names, val, body, ok := ex.AsLet(); ok {
		valDoc := p.Expr(varNamer, typeNamer, val, Root)
		varNamer.PushScope()
		var displays []string
		for _, n := range names {
			displays = append(displays, varNamer.AddName(n))
		}
		bodyDoc := p.Expr(varNamer, typeNamer, body, LetBody)
		varNamer.PopScope()
		inner := layout.Concat(
			p.keyword("let"), layout.Text(" "+commaList(displays)+" = "), valDoc, layout.Text(" "), p.keyword("in"), layout.Text(" "), bodyDoc,
		)
		return wrap(lowPrecNeedsParens(place), inner)
	}
	if typeNames, valName, val, body, ok := ex.AsLetExists(); ok {
		valDoc := p.Expr(varNamer, typeNamer, val, Root)
		typeNamer.PushScope()
		var typeDisplays []string
		for _, n := range typeNames {
			typeDisplays = append(typeDisplays, typeNamer.AddName(n))
		}
		varNamer.PushScope()
		valDisplay := varNamer.AddName(valName)
		bodyDoc := p.Expr(varNamer, typeNamer, body, LetBody)
		varNamer.PopScope()
		typeNamer.PopScope()
		inner := layout.Concat(
			p.keyword("let_exists"), layout.Text(" "+bracesList(typeDisplays)+" "+valDisplay+" = "),
			valDoc, layout.Text(" "), p.keyword("in"), layout.Text(" "), bodyDoc,
		)
		return wrap(lowPrecNeedsParens(place), inner)
	}
	if params, typeBody, body, ok := ex.AsMakeExists(); ok {
		var witnessDocs []layout.Doc
		for _, w := range params {
			witnessDocs = append(witnessDocs, p.Type(typeNamer, w.Witness, Root))
		}
		typeNamer.PushScope()
		var displays []string
		for _, w := range params {
			displays = append(displays, typeNamer.AddName(w.Name))
		}
		var bindings []layout.Doc
		for i, display := range displays {
			bindings = append(bindings, layout.Concat(layout.Text("{"+display+" = "), witnessDocs[i], layout.Text("}")))
		}
		typeBodyDoc := p.Type(typeNamer, typeBody, Root)
		typeNamer.PopScope()
		bodyDoc := p.Expr(varNamer, typeNamer, body, MakeExistsBody)
		inner := layout.Concat(p.keyword("make_exists"), layout.Text(" "))
		inner = layout.Concat(append([]layout.Doc{inner}, bindings...)...)
		inner = layout.Concat(inner, layout.Text(" "), typeBodyDoc, layout.Text(" "), p.keyword("of"), layout.Text(" "), bodyDoc)
		return wrap(lowPrecNeedsParens(place), inner)
	}
	if param, typeBody, equivalence, body, ok := ex.AsCast(); ok {
		typeNamer.PushScope()
		display := typeNamer.AddName(param.Name)
		typeBodyDoc := p.Type(typeNamer, typeBody, Root)
		typeNamer.PopScope()
		equivDoc := p.Expr(varNamer, typeNamer, equivalence, AppCallee)
		bodyDoc := p.Expr(varNamer, typeNamer, body, CastBody)
		inner := layout.Concat(
			p.keyword("cast"), layout.Text(" {"+display+"} "), typeBodyDoc, layout.Text(" "), p.keyword("by"), layout.Text(" "), equivDoc, layout.Text(" "), p.keyword("of"), layout.Text(" "), bodyDoc,
		)
		return wrap(lowPrecNeedsParens(place), inner)
	}
	if id, ok := ex.AsIntrinsic(); ok {
		return p.keyword(id)
	}
	panic("prettyprint: unreachable expression variant")
}

func commaList(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

func bracesList(names []string) string {
	out := ""
	for _, n := range names {
		out += "{" + n + "} "
	}
	if len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out
}
