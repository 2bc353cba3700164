// Package lexer tokenizes corelang surface source text: identifiers,
// keywords, punctuation, `--` line comments, and backtick-quoted
// identifier escaping, over a rune-at-a-time scan of the input.
package lexer

import (
	"fmt"

	"github.com/funvibe/corelang/internal/token"
)

// ErrorKind classifies a lex failure.
type ErrorKind int

const (
	ErrChar ErrorKind = iota
	ErrEnd
	ErrEmpty
)

// Error is the structured error returned by the lexer.
type Error struct {
	Kind   ErrorKind
	Offset int
	Char   rune
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrChar:
		return fmt.Sprintf("lexer: unexpected character %q at offset %d", e.Char, e.Offset)
	case ErrEnd:
		return "lexer: unexpected end of input"
	default:
		return "lexer: empty input"
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// ValidName reports whether s is syntactically a plain identifier and not a
// reserved keyword (quoted identifiers bypass this check entirely).
func ValidName(s string) bool {
	rs := []rune(s)
	if len(rs) == 0 {
		return false
	}
	if !isIdentStart(rs[0]) {
		return false
	}
	for _, r := range rs[1:] {
		if !isIdentCont(r) {
			return false
		}
	}
	return !token.IsKeyword(s)
}

// QuoteName back-quotes s, escaping embedded backslashes and backticks.
func QuoteName(s string) string {
	out := make([]rune, 0, len(s)+2)
	out = append(out, '`')
	for _, r := range s {
		if r == '\\' || r == '`' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	out = append(out, '`')
	return string(out)
}

// Lexer produces a stream of tokens over a source string.
type Lexer struct {
	src []rune
	pos int
}

// New constructs a Lexer over the given source text.
func New(src string) *Lexer {
	return &Lexer{src: []rune(src)}
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *Lexer) peekAt(offset int) (rune, bool) {
	if l.pos+offset >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos+offset], true
}

// Next returns the next token. At end of input it returns a token.EOF token
// and ok == false.
func (l *Lexer) Next() (tok token.Token, ok bool, err error) {
	for {
		r, has := l.peek()
		if !has {
			return token.Token{Kind: token.EOF, Start: l.pos, End: l.pos}, false, nil
		}

		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			l.pos++
			continue

		case isIdentStart(r):
			start := l.pos
			var buf []rune
			for {
				c, has := l.peek()
				if !has || !isIdentCont(c) {
					break
				}
				buf = append(buf, c)
				l.pos++
			}
			name := string(buf)
			if kw, isKw := token.LookupKeyword(name); isKw {
				return token.Token{Kind: kw, Text: name, Start: start, End: l.pos}, true, nil
			}
			return token.Token{Kind: token.Name, Text: name, Start: start, End: l.pos}, true, nil

		case r == '`':
			start := l.pos
			l.pos++
			var buf []rune
			for {
				c, has := l.peek()
				if !has {
					return token.Token{}, false, &Error{Kind: ErrEnd}
				}
				if c == '`' {
					l.pos++
					return token.Token{Kind: token.Name, Text: string(buf), Start: start, End: l.pos}, true, nil
				}
				if c == '\\' {
					l.pos++
					esc, has := l.peek()
					if !has {
						return token.Token{}, false, &Error{Kind: ErrEnd}
					}
					buf = append(buf, esc)
					l.pos++
					continue
				}
				buf = append(buf, c)
				l.pos++
			}

		case isDigit(r):
			start := l.pos
			var val uint64
			for {
				c, has := l.peek()
				if !has || !isDigit(c) {
					break
				}
				d := uint64(c - '0')
				next := val*10 + d
				if next < val {
					return token.Token{}, false, &Error{Kind: ErrChar, Offset: l.pos, Char: c}
				}
				val = next
				l.pos++
			}
			return token.Token{Kind: token.UInt, UVal: val, Start: start, End: l.pos}, true, nil

		case r == '-':
			if c2, has := l.peekAt(1); has && c2 == '>' {
				start := l.pos
				l.pos += 2
				return token.Token{Kind: token.Arrow, Start: start, End: l.pos}, true, nil
			}
			if c2, has := l.peekAt(1); has && c2 == '-' {
				l.pos += 2
				for {
					c, has := l.peek()
					if !has {
						return token.Token{Kind: token.EOF, Start: l.pos, End: l.pos}, false, nil
					}
					l.pos++
					if c == '\n' {
						break
					}
				}
				continue
			}
			return token.Token{}, false, &Error{Kind: ErrChar, Offset: l.pos, Char: r}

		default:
			kind, size, matched := singleCharPunct(r)
			if !matched {
				return token.Token{}, false, &Error{Kind: ErrChar, Offset: l.pos, Char: r}
			}
			start := l.pos
			l.pos += size
			return token.Token{Kind: kind, Start: start, End: l.pos}, true, nil
		}
	}
}

func singleCharPunct(r rune) (token.Kind, int, bool) {
	switch r {
	case '#':
		return token.NumSign, 1, true
	case ',':
		return token.Comma, 1, true
	case ';':
		return token.Semicolon, 1, true
	case '=':
		return token.Equals, 1, true
	case ':':
		return token.Colon, 1, true
	case '*':
		return token.Star, 1, true
	case '(':
		return token.OpenPar, 1, true
	case ')':
		return token.ClosePar, 1, true
	case '{':
		return token.OpenCurly, 1, true
	case '}':
		return token.CloseCurly, 1, true
	}
	return 0, 0, false
}

// All lexes the entire source into a token slice, stopping at the first
// error.
func All(src string) ([]token.Token, error) {
	l := New(src)
	var out []token.Token
	for {
		tok, ok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, tok)
	}
}
