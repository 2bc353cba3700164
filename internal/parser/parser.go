// Package parser is a recursive-descent parser over the surface token
// stream (package lexer/token), producing the raw syntax tree (package
// ast), including the phase-annotated function types, equivalence
// literals, casts, and intrinsic forms the grammar below covers.
package parser

import (
	"fmt"

	"github.com/funvibe/corelang/internal/ast"
	"github.com/funvibe/corelang/internal/lexer"
	"github.com/funvibe/corelang/internal/token"
)

// Error is a syntax error: an unexpected token, or a lexical error from the
// underlying lexer.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Msg)
}

type parser struct {
	toks []token.Token
	pos  int
}

func newParser(toks []token.Token) *parser {
	return &parser{toks: toks}
}

func (p *parser) cur() token.Token { return p.toks[p.pos] }

func (p *parser) curAt(off int) token.Token {
	if p.pos+off >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+off]
}

func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...any) error {
	return &Error{Offset: p.cur().Start, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(k token.Kind) (token.Token, error) {
	if p.cur().Kind != k {
		return token.Token{}, p.errorf("expected %s, got %s", k, p.cur().Kind)
	}
	return p.advance(), nil
}

// tokenize runs the lexer to completion, translating a lexer.Error into a
// parser *Error so callers only ever see one error type.
func tokenize(src string) ([]token.Token, error) {
	toks, err := lexer.All(src)
	if err != nil {
		if le, ok := err.(*lexer.Error); ok {
			return nil, &Error{Offset: le.Offset, Msg: le.Error()}
		}
		return nil, err
	}
	return append(toks, token.Token{Kind: token.EOF, Start: len(src), End: len(src)}), nil
}

func (p *parser) ident() (token.Ident, error) {
	switch p.cur().Kind {
	case token.Name:
		t := p.advance()
		id := token.Ident{Name: t.Text}
		if p.cur().Kind == token.NumSign {
			p.advance()
			u, err := p.expect(token.UInt)
			if err != nil {
				return token.Ident{}, err
			}
			id.CollisionID = u.UVal
		}
		return id, nil
	default:
		return token.Ident{}, p.errorf("expected identifier, got %s", p.cur().Kind)
	}
}

// Ident parses a single identifier (with optional `#N` collision suffix)
// from src, requiring the whole input be consumed.
func Ident(src string) (token.Ident, error) {
	toks, err := tokenize(src)
	if err != nil {
		return token.Ident{}, err
	}
	p := newParser(toks)
	id, err := p.ident()
	if err != nil {
		return token.Ident{}, err
	}
	if p.cur().Kind != token.EOF {
		return token.Ident{}, p.errorf("unexpected trailing %s", p.cur().Kind)
	}
	return id, nil
}

// Type parses a complete surface type from src.
func Type(src string) (ast.Type, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := newParser(toks)
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != token.EOF {
		return nil, p.errorf("unexpected trailing %s", p.cur().Kind)
	}
	return ty, nil
}

// Expr parses a complete surface expression from src.
func Expr(src string) (ast.Expr, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := newParser(toks)
	ex, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != token.EOF {
		return nil, p.errorf("unexpected trailing %s", p.cur().Kind)
	}
	return ex, nil
}

// --- Type grammar ---
//
//	type     := ('forall' | 'exists') ('{' ident '}')+ type
//	          | pair
//	pair     := func (',' func)* ','?
//	func     := phasedOperand ('->' 'static'? func)?
//	phasedOperand := '(' 'static' type ')'   -- only legal directly before '->'
//	          | operand
//	operand  := 'equiv' atom atom
//	          | app
//	app      := atom atom*
//	atom     := '(' type ')' | ident

func (p *parser) parseType() (ast.Type, error) {
	switch p.cur().Kind {
	case token.KeyForall, token.KeyExists:
		q := ast.ForAll
		if p.cur().Kind == token.KeyExists {
			q = ast.Exists
		}
		p.advance()
		var params []ast.TypeParam
		for p.cur().Kind == token.OpenCurly {
			p.advance()
			id, err := p.ident()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.CloseCurly); err != nil {
				return nil, err
			}
			params = append(params, ast.TypeParam{Ident: id})
		}
		if len(params) == 0 {
			return nil, p.errorf("expected '{' after quantifier keyword")
		}
		body, err := p.parseType()
		if err != nil {
			return nil, err
		}
		result := body
		for i := len(params) - 1; i >= 0; i-- {
			result = ast.TypeQuantified{Quantifier: q, Param: params[i], Body: result}
		}
		return result, nil
	default:
		return p.parsePairType()
	}
}

func (p *parser) parsePairType() (ast.Type, error) {
	first, err := p.parseFuncType()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != token.Comma {
		return first, nil
	}
	items := []ast.Type{first}
	for p.cur().Kind == token.Comma {
		p.advance()
		if !p.startsType() {
			break // trailing comma
		}
		next, err := p.parseFuncType()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	result := items[len(items)-1]
	for i := len(items) - 2; i >= 0; i-- {
		result = ast.TypePair{Left: items[i], Right: result}
	}
	return result, nil
}

func (p *parser) startsType() bool {
	switch p.cur().Kind {
	case token.Name, token.OpenPar, token.KeyForall, token.KeyExists, token.KeyEquiv, token.KeyStatic:
		return true
	default:
		return false
	}
}

func (p *parser) parseFuncType() (ast.Type, error) {
	argPhase := ast.Dynamic
	var arg ast.Type
	var err error
	if p.cur().Kind == token.OpenPar && p.curAt(1).Kind == token.KeyStatic {
		p.advance()
		p.advance()
		arg, err = p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ClosePar); err != nil {
			return nil, err
		}
		argPhase = ast.Static
	} else {
		arg, err = p.parseOperandType()
		if err != nil {
			return nil, err
		}
	}
	if p.cur().Kind != token.Arrow {
		return arg, nil
	}
	p.advance()
	retPhase := ast.Dynamic
	if p.cur().Kind == token.KeyStatic {
		p.advance()
		retPhase = ast.Static
	}
	ret, err := p.parseFuncType()
	if err != nil {
		return nil, err
	}
	return ast.TypeFunc{Arg: arg, ArgPhase: argPhase, Ret: ret, RetPhase: retPhase}, nil
}

func (p *parser) parseOperandType() (ast.Type, error) {
	if p.cur().Kind == token.KeyEquiv {
		p.advance()
		orig, err := p.parseAtomType()
		if err != nil {
			return nil, err
		}
		dest, err := p.parseAtomType()
		if err != nil {
			return nil, err
		}
		return ast.TypeEquiv{Orig: orig, Dest: dest}, nil
	}
	return p.parseAppType()
}

func (p *parser) parseAppType() (ast.Type, error) {
	result, err := p.parseAtomType()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.Name || p.cur().Kind == token.OpenPar {
		param, err := p.parseAtomType()
		if err != nil {
			return nil, err
		}
		result = ast.TypeApp{Constructor: result, Param: param}
	}
	return result, nil
}

func (p *parser) parseAtomType() (ast.Type, error) {
	switch p.cur().Kind {
	case token.Name:
		id, err := p.ident()
		if err != nil {
			return nil, err
		}
		return ast.TypeVar{Ident: id}, nil
	case token.OpenPar:
		p.advance()
		if p.cur().Kind == token.ClosePar {
			p.advance()
			return ast.TypeUnit{}, nil
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ClosePar); err != nil {
			return nil, err
		}
		return ty, nil
	default:
		return nil, p.errorf("expected a type, got %s", p.cur().Kind)
	}
}

// --- Expr grammar ---
//
//	expr      := 'forall' ('{' ident '}')+ expr
//	          | 'func' '(' 'static'? ident ':' type ')' '->' expr
//	          | 'let' ident (',' ident)* ','? '=' expr 'in' expr
//	          | 'let_exists' ('{' ident '}')+ ident '=' expr 'in' expr
//	          | 'make_exists' ('{' ident '=' type '}')+ type 'of' expr
//	          | 'cast' '{' ident '}' type 'by' expr 'of' expr
//	          | pairExpr
//	pairExpr  := appExpr (',' appExpr)* ','?
//	appExpr   := instExpr ('(' expr ')')*
//	instExpr  := primaryExpr ('{' type '}')*
//	primaryExpr := '(' expr ')' | 'move' ident | 'refl_equiv' | ident

func (p *parser) parseExpr() (ast.Expr, error) {
	switch p.cur().Kind {
	case token.KeyForall:
		p.advance()
		var params []ast.TypeParam
		for p.cur().Kind == token.OpenCurly {
			p.advance()
			id, err := p.ident()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.CloseCurly); err != nil {
				return nil, err
			}
			params = append(params, ast.TypeParam{Ident: id})
		}
		if len(params) == 0 {
			return nil, p.errorf("expected '{' after forall")
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.ExprForAll{TypeParams: params, Body: body}, nil

	case token.KeyFunc:
		p.advance()
		if _, err := p.expect(token.OpenPar); err != nil {
			return nil, err
		}
		argPhase := ast.Dynamic
		if p.cur().Kind == token.KeyStatic {
			p.advance()
			argPhase = ast.Static
		}
		argName, err := p.ident()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		argType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ClosePar); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Arrow); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.ExprFunc{ArgName: argName, ArgType: argType, ArgPhase: argPhase, Body: body}, nil

	case token.KeyLet:
		p.advance()
		names, err := p.parseIdentList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Equals); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.KeyIn); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.ExprLet{Names: names, Val: val, Body: body}, nil

	case token.KeyLetExists:
		p.advance()
		var typeNames []token.Ident
		for p.cur().Kind == token.OpenCurly {
			p.advance()
			id, err := p.ident()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.CloseCurly); err != nil {
				return nil, err
			}
			typeNames = append(typeNames, id)
		}
		if len(typeNames) == 0 {
			return nil, p.errorf("expected '{' after let_exists")
		}
		valName, err := p.ident()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Equals); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.KeyIn); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.ExprLetExists{TypeNames: typeNames, ValName: valName, Val: val, Body: body}, nil

	case token.KeyMakeExists:
		p.advance()
		var params []ast.ExistsParam
		for p.cur().Kind == token.OpenCurly {
			p.advance()
			id, err := p.ident()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.Equals); err != nil {
				return nil, err
			}
			witness, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.CloseCurly); err != nil {
				return nil, err
			}
			params = append(params, ast.ExistsParam{Ident: id, Witness: witness})
		}
		if len(params) == 0 {
			return nil, p.errorf("expected '{' after make_exists")
		}
		typeBody, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.KeyOf); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.ExprMakeExists{Params: params, TypeBody: typeBody, Body: body}, nil

	case token.KeyCast:
		p.advance()
		if _, err := p.expect(token.OpenCurly); err != nil {
			return nil, err
		}
		param, err := p.ident()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.CloseCurly); err != nil {
			return nil, err
		}
		typeBody, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.KeyBy); err != nil {
			return nil, err
		}
		equivalence, err := p.parseAppExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.KeyOf); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.ExprCast{Param: ast.TypeParam{Ident: param}, TypeBody: typeBody, Equivalence: equivalence, Body: body}, nil

	default:
		return p.parsePairExpr()
	}
}

func (p *parser) parseIdentList() ([]token.Ident, error) {
	first, err := p.ident()
	if err != nil {
		return nil, err
	}
	names := []token.Ident{first}
	for p.cur().Kind == token.Comma {
		p.advance()
		if p.cur().Kind != token.Name {
			break // trailing comma
		}
		next, err := p.ident()
		if err != nil {
			return nil, err
		}
		names = append(names, next)
	}
	return names, nil
}

func (p *parser) parsePairExpr() (ast.Expr, error) {
	first, err := p.parseAppExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != token.Comma {
		return first, nil
	}
	items := []ast.Expr{first}
	for p.cur().Kind == token.Comma {
		p.advance()
		if !p.startsExpr() {
			break // trailing comma
		}
		next, err := p.parseAppExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	result := items[len(items)-1]
	for i := len(items) - 2; i >= 0; i-- {
		result = ast.ExprPair{Left: items[i], Right: result}
	}
	return result, nil
}

func (p *parser) startsExpr() bool {
	switch p.cur().Kind {
	case token.Name, token.OpenPar, token.KeyMove, token.KeyReflEquiv,
		token.KeyForall, token.KeyFunc, token.KeyLet, token.KeyLetExists,
		token.KeyMakeExists, token.KeyCast:
		return true
	default:
		return false
	}
}

func (p *parser) parseAppExpr() (ast.Expr, error) {
	result, err := p.parseInstExpr()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.OpenPar {
		p.advance()
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ClosePar); err != nil {
			return nil, err
		}
		result = ast.ExprApp{Callee: result, Arg: arg}
	}
	return result, nil
}

func (p *parser) parseInstExpr() (ast.Expr, error) {
	receiver, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != token.OpenCurly {
		return receiver, nil
	}
	var typeParams []ast.Type
	for p.cur().Kind == token.OpenCurly {
		p.advance()
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.CloseCurly); err != nil {
			return nil, err
		}
		typeParams = append(typeParams, ty)
	}
	return ast.ExprInst{Receiver: receiver, TypeParams: typeParams}, nil
}

func (p *parser) parsePrimaryExpr() (ast.Expr, error) {
	switch p.cur().Kind {
	case token.KeyMove:
		p.advance()
		id, err := p.ident()
		if err != nil {
			return nil, err
		}
		return ast.ExprVar{Usage: ast.Move, Ident: id}, nil
	case token.KeyReflEquiv:
		p.advance()
		return ast.ExprIntrinsic{ID: "refl_equiv"}, nil
	case token.Name:
		id, err := p.ident()
		if err != nil {
			return nil, err
		}
		return ast.ExprVar{Usage: ast.Copy, Ident: id}, nil
	case token.OpenPar:
		p.advance()
		if p.cur().Kind == token.ClosePar {
			p.advance()
			return ast.ExprUnit{}, nil
		}
		ex, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ClosePar); err != nil {
			return nil, err
		}
		return ex, nil
	default:
		return nil, p.errorf("expected an expression, got %s", p.cur().Kind)
	}
}
