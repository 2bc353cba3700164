package parser_test

import (
	"reflect"
	"testing"

	"github.com/funvibe/corelang/internal/ast"
	"github.com/funvibe/corelang/internal/parser"
	"github.com/funvibe/corelang/internal/token"
)

func ident(s string) token.Ident { return token.Ident{Name: s} }

func tyVar(s string) ast.Type { return ast.TypeVar{Ident: ident(s)} }

func exVar(s string) ast.Expr { return ast.ExprVar{Usage: ast.Copy, Ident: ident(s)} }

func exMoveVar(s string) ast.Expr { return ast.ExprVar{Usage: ast.Move, Ident: ident(s)} }

func TestParseIdent(t *testing.T) {
	id, err := parser.Ident("foo")
	if err != nil || id != (token.Ident{Name: "foo"}) {
		t.Fatalf("got %v, %v", id, err)
	}

	id, err = parser.Ident("foo#42")
	if err != nil || id != (token.Ident{Name: "foo", CollisionID: 42}) {
		t.Fatalf("got %v, %v", id, err)
	}

	id, err = parser.Ident("`hello \\` world`")
	if err != nil || id.Name != "hello ` world" {
		t.Fatalf("got %v, %v", id, err)
	}

	if _, err := parser.Ident("foo#bar"); err == nil {
		t.Fatalf("expected error for foo#bar")
	}
}

func TestParseTypeUnit(t *testing.T) {
	ty, err := parser.Type("( -- embedded whitespace \n )")
	if err != nil {
		t.Fatalf("Type: %v", err)
	}
	if _, ok := ty.(ast.TypeUnit); !ok {
		t.Fatalf("got %#v, want TypeUnit", ty)
	}
}

func TestParseTypeApp(t *testing.T) {
	ty, err := parser.Type("foo bar baz")
	if err != nil {
		t.Fatalf("Type: %v", err)
	}
	want := ast.TypeApp{
		Constructor: ast.TypeApp{Constructor: tyVar("foo"), Param: tyVar("bar")},
		Param:       tyVar("baz"),
	}
	if !reflect.DeepEqual(ty, want) {
		t.Fatalf("got %#v, want %#v", ty, want)
	}
}

func TestParseTypeExists(t *testing.T) {
	ty, err := parser.Type("exists {t} t")
	if err != nil {
		t.Fatalf("Type: %v", err)
	}
	want := ast.TypeQuantified{Quantifier: ast.Exists, Param: ast.TypeParam{Ident: ident("t")}, Body: tyVar("t")}
	if !reflect.DeepEqual(ty, want) {
		t.Fatalf("got %#v, want %#v", ty, want)
	}
}

func TestParseTypeFuncPhased(t *testing.T) {
	ty, err := parser.Type("(static foo) -> static bar")
	if err != nil {
		t.Fatalf("Type: %v", err)
	}
	want := ast.TypeFunc{Arg: tyVar("foo"), ArgPhase: ast.Static, Ret: tyVar("bar"), RetPhase: ast.Static}
	if !reflect.DeepEqual(ty, want) {
		t.Fatalf("got %#v, want %#v", ty, want)
	}
}

func TestParseTypeQuantifiedChain(t *testing.T) {
	ty, err := parser.Type("forall {T} {U} {V} (T, U, V)")
	if err != nil {
		t.Fatalf("Type: %v", err)
	}
	pair := ast.TypePair{Left: tyVar("T"), Right: ast.TypePair{Left: tyVar("U"), Right: tyVar("V")}}
	want := ast.TypeQuantified{
		Quantifier: ast.ForAll, Param: ast.TypeParam{Ident: ident("T")},
		Body: ast.TypeQuantified{
			Quantifier: ast.ForAll, Param: ast.TypeParam{Ident: ident("U")},
			Body: ast.TypeQuantified{Quantifier: ast.ForAll, Param: ast.TypeParam{Ident: ident("V")}, Body: pair},
		},
	}
	if !reflect.DeepEqual(ty, want) {
		t.Fatalf("got %#v, want %#v", ty, want)
	}
}

func TestParseTypePairTrailingComma(t *testing.T) {
	ty, err := parser.Type("foo, bar, baz,")
	if err != nil {
		t.Fatalf("Type: %v", err)
	}
	want := ast.TypePair{Left: tyVar("foo"), Right: ast.TypePair{Left: tyVar("bar"), Right: tyVar("baz")}}
	if !reflect.DeepEqual(ty, want) {
		t.Fatalf("got %#v, want %#v", ty, want)
	}
}

func TestParseTypeEquiv(t *testing.T) {
	ty, err := parser.Type("equiv a b")
	if err != nil {
		t.Fatalf("Type: %v", err)
	}
	want := ast.TypeEquiv{Orig: tyVar("a"), Dest: tyVar("b")}
	if !reflect.DeepEqual(ty, want) {
		t.Fatalf("got %#v, want %#v", ty, want)
	}
}

func TestParseExprUnit(t *testing.T) {
	ex, err := parser.Expr("( )")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	if _, ok := ex.(ast.ExprUnit); !ok {
		t.Fatalf("got %#v, want ExprUnit", ex)
	}
}

func TestParseExprBareVarIsCopy(t *testing.T) {
	ex, err := parser.Expr("hello")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	if !reflect.DeepEqual(ex, exVar("hello")) {
		t.Fatalf("got %#v, want %#v", ex, exVar("hello"))
	}
}

func TestParseExprMoveVar(t *testing.T) {
	ex, err := parser.Expr("move hello")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	if !reflect.DeepEqual(ex, exMoveVar("hello")) {
		t.Fatalf("got %#v, want %#v", ex, exMoveVar("hello"))
	}
}

func TestParseExprNestedParens(t *testing.T) {
	ex, err := parser.Expr("((((hello))))")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	if !reflect.DeepEqual(ex, exVar("hello")) {
		t.Fatalf("got %#v, want %#v", ex, exVar("hello"))
	}
}

func TestParseExprApp(t *testing.T) {
	ex, err := parser.Expr("hello(move world)")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want := ast.ExprApp{Callee: exVar("hello"), Arg: exMoveVar("world")}
	if !reflect.DeepEqual(ex, want) {
		t.Fatalf("got %#v, want %#v", ex, want)
	}
}

func TestParseExprInstApp(t *testing.T) {
	ex, err := parser.Expr("hello{T}{U}(move world)")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want := ast.ExprApp{
		Callee: ast.ExprInst{Receiver: exVar("hello"), TypeParams: []ast.Type{tyVar("T"), tyVar("U")}},
		Arg:    exMoveVar("world"),
	}
	if !reflect.DeepEqual(ex, want) {
		t.Fatalf("got %#v, want %#v", ex, want)
	}
}

func TestParseExprFuncStatic(t *testing.T) {
	ex, err := parser.Expr("func (static x : T) -> move x")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want := ast.ExprFunc{ArgName: ident("x"), ArgType: tyVar("T"), ArgPhase: ast.Static, Body: exMoveVar("x")}
	if !reflect.DeepEqual(ex, want) {
		t.Fatalf("got %#v, want %#v", ex, want)
	}
}

func TestParseExprForAllFunc(t *testing.T) {
	ex, err := parser.Expr("forall {T} func (x : T) -> move x")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want := ast.ExprForAll{
		TypeParams: []ast.TypeParam{{Ident: ident("T")}},
		Body:       ast.ExprFunc{ArgName: ident("x"), ArgType: tyVar("T"), Body: exMoveVar("x")},
	}
	if !reflect.DeepEqual(ex, want) {
		t.Fatalf("got %#v, want %#v", ex, want)
	}
}

func TestParseExprLetMultiName(t *testing.T) {
	ex, err := parser.Expr("let x, y, = move z in ()")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want := ast.ExprLet{Names: []token.Ident{ident("x"), ident("y")}, Val: exMoveVar("z"), Body: ast.ExprUnit{}}
	if !reflect.DeepEqual(ex, want) {
		t.Fatalf("got %#v, want %#v", ex, want)
	}
}

func TestParseExprLetExists(t *testing.T) {
	ex, err := parser.Expr("let_exists {T} {U} x = move y in move x")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want := ast.ExprLetExists{
		TypeNames: []token.Ident{ident("T"), ident("U")},
		ValName:   ident("x"),
		Val:       exMoveVar("y"),
		Body:      exMoveVar("x"),
	}
	if !reflect.DeepEqual(ex, want) {
		t.Fatalf("got %#v, want %#v", ex, want)
	}
}

func TestParseExprMakeExists(t *testing.T) {
	ex, err := parser.Expr("make_exists {T = Foo} {U = Bar} T -> U of move f")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want := ast.ExprMakeExists{
		Params: []ast.ExistsParam{
			{Ident: ident("T"), Witness: tyVar("Foo")},
			{Ident: ident("U"), Witness: tyVar("Bar")},
		},
		TypeBody: ast.TypeFunc{Arg: tyVar("T"), Ret: tyVar("U")},
		Body:     exMoveVar("f"),
	}
	if !reflect.DeepEqual(ex, want) {
		t.Fatalf("got %#v, want %#v", ex, want)
	}
}

func TestParseExprPairTrailingComma(t *testing.T) {
	ex, err := parser.Expr("foo, bar, baz,")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want := ast.ExprPair{Left: exVar("foo"), Right: ast.ExprPair{Left: exVar("bar"), Right: exVar("baz")}}
	if !reflect.DeepEqual(ex, want) {
		t.Fatalf("got %#v, want %#v", ex, want)
	}
}

func TestParseExprCast(t *testing.T) {
	ex, err := parser.Expr("cast {T} (Foo, T) by token of foo")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want := ast.ExprCast{
		Param:       ast.TypeParam{Ident: ident("T")},
		TypeBody:    ast.TypePair{Left: tyVar("Foo"), Right: tyVar("T")},
		Equivalence: exVar("token"),
		Body:        exVar("foo"),
	}
	if !reflect.DeepEqual(ex, want) {
		t.Fatalf("got %#v, want %#v", ex, want)
	}
}

func TestParseExprReflEquiv(t *testing.T) {
	ex, err := parser.Expr("refl_equiv{()}")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want := ast.ExprInst{Receiver: ast.ExprIntrinsic{ID: "refl_equiv"}, TypeParams: []ast.Type{ast.TypeUnit{}}}
	if !reflect.DeepEqual(ex, want) {
		t.Fatalf("got %#v, want %#v", ex, want)
	}
}

// S6 full scenario text: `cast {t} t by refl_equiv{()} of ()`.
func TestParseScenarioS6(t *testing.T) {
	ex, err := parser.Expr("cast {t} t by refl_equiv{()} of ()")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want := ast.ExprCast{
		Param:    ast.TypeParam{Ident: ident("t")},
		TypeBody: tyVar("t"),
		Equivalence: ast.ExprInst{
			Receiver:   ast.ExprIntrinsic{ID: "refl_equiv"},
			TypeParams: []ast.Type{ast.TypeUnit{}},
		},
		Body: ast.ExprUnit{},
	}
	if !reflect.DeepEqual(ex, want) {
		t.Fatalf("got %#v, want %#v", ex, want)
	}
}

// S5 full scenario text:
// `let_exists {T} x = make_exists {T = ()} T of () in move x`.
func TestParseScenarioS5(t *testing.T) {
	ex, err := parser.Expr("let_exists {T} x = make_exists {T = ()} T of () in move x")
	if err != nil {
		t.Fatalf("Expr: %v", err)
	}
	want := ast.ExprLetExists{
		TypeNames: []token.Ident{ident("T")},
		ValName:   ident("x"),
		Val: ast.ExprMakeExists{
			Params:   []ast.ExistsParam{{Ident: ident("T"), Witness: ast.TypeUnit{}}},
			TypeBody: tyVar("T"),
			Body:     ast.ExprUnit{},
		},
		Body: exMoveVar("x"),
	}
	if !reflect.DeepEqual(ex, want) {
		t.Fatalf("got %#v, want %#v", ex, want)
	}
}

func TestParseErrorTrailingTokens(t *testing.T) {
	if _, err := parser.Type("foo bar )"); err == nil {
		t.Fatalf("expected a trailing-token error")
	}
}

func TestParseErrorUnclosedParen(t *testing.T) {
	if _, err := parser.Expr("(move x"); err == nil {
		t.Fatalf("expected an unclosed-paren error")
	}
}
