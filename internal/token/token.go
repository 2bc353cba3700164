// Package token defines the lexical tokens produced by the surface lexer
// and the identifier format used by the raw AST.
package token

import "fmt"

// Kind identifies the lexical class of a Token.
type Kind int

const (
	EOF Kind = iota
	Name
	UInt

	KeyMove
	KeyFunc
	KeyLet
	KeyLetExists
	KeyIn
	KeyMakeExists
	KeyOf
	KeyCast
	KeyBy
	KeyReflEquiv
	KeyForall
	KeyExists
	KeyEquiv
	KeySize
	KeyStatic

	NumSign
	Comma
	Semicolon
	Equals
	Colon
	Star
	Arrow

	OpenPar
	ClosePar
	OpenCurly
	CloseCurly
)

var keywords = map[string]Kind{
	"move":        KeyMove,
	"func":        KeyFunc,
	"let":         KeyLet,
	"let_exists":  KeyLetExists,
	"in":          KeyIn,
	"make_exists": KeyMakeExists,
	"of":          KeyOf,
	"cast":        KeyCast,
	"by":          KeyBy,
	"refl_equiv":  KeyReflEquiv,
	"forall":      KeyForall,
	"exists":      KeyExists,
	"equiv":       KeyEquiv,
	"size":        KeySize,
	"static":      KeyStatic,
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// LookupKeyword returns the keyword Kind for s, if any.
func LookupKeyword(s string) (Kind, bool) {
	k, ok := keywords[s]
	return k, ok
}

var kindNames = map[Kind]string{
	EOF:           "<eof>",
	Name:          "name",
	UInt:          "uint",
	KeyMove:       "move",
	KeyFunc:       "func",
	KeyLet:        "let",
	KeyLetExists:  "let_exists",
	KeyIn:         "in",
	KeyMakeExists: "make_exists",
	KeyOf:         "of",
	KeyCast:       "cast",
	KeyBy:         "by",
	KeyReflEquiv:  "refl_equiv",
	KeyForall:     "forall",
	KeyExists:     "exists",
	KeyEquiv:      "equiv",
	KeySize:       "size",
	KeyStatic:     "static",
	NumSign:       "#",
	Comma:         ",",
	Semicolon:     ";",
	Equals:        "=",
	Colon:         ":",
	Star:          "*",
	Arrow:         "->",
	OpenPar:       "(",
	ClosePar:      ")",
	OpenCurly:     "{",
	CloseCurly:    "}",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexed token together with its source span.
type Token struct {
	Kind  Kind
	Text  string // for Name: the identifier text; for UInt: the digits
	UVal  uint64 // for UInt
	Start int    // byte offset, inclusive
	End   int    // byte offset, exclusive
}

func (t Token) String() string {
	if t.Kind == Name {
		return fmt.Sprintf("Name(%q)", t.Text)
	}
	if t.Kind == UInt {
		return fmt.Sprintf("UInt(%d)", t.UVal)
	}
	return t.Kind.String()
}

// Ident is the surface identifier format: a display name plus an optional
// collision suffix (`#N`, default 0). Two identifiers are equal iff both
// fields match.
type Ident struct {
	Name        string
	CollisionID uint64
}

func (id Ident) String() string {
	if id.CollisionID == 0 {
		return id.Name
	}
	return fmt.Sprintf("%s#%d", id.Name, id.CollisionID)
}
