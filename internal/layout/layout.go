// Package layout is a small Wadler-style document-layout engine: Text,
// Concat, Line, SoftLine, Indent, Group, Sep, and Conditional combinators
// rendered by a single width-aware Render pass over a buffer, an indent
// counter, and a running column.
package layout

import "strings"

// Doc is a layout document: a tree of text, breakable space, grouping, and
// indentation nodes, rendered against a target line width.
type Doc interface {
	doc()
}

type textDoc struct{ s string }
type concatDoc struct{ docs []Doc }
type lineDoc struct{} // breaks to a newline when its enclosing group breaks, else a space
type softLineDoc struct{} // breaks to a newline when its enclosing group breaks, else nothing
type indentDoc struct{ inner Doc }
type groupDoc struct{ inner Doc }

func (textDoc) doc()     {}
func (concatDoc) doc()   {}
func (lineDoc) doc()     {}
func (softLineDoc) doc() {}
func (indentDoc) doc()   {}
func (groupDoc) doc()    {}

// Text is a literal, unbreakable run of text.
func Text(s string) Doc { return textDoc{s} }

// Concat joins docs with no separator.
func Concat(docs ...Doc) Doc { return concatDoc{docs} }

// Line is a space in flat mode, a newline (plus the current indent) when its
// enclosing Group breaks.
func Line() Doc { return lineDoc{} }

// SoftLine is nothing in flat mode, a newline (plus the current indent) when
// its enclosing Group breaks.
func SoftLine() Doc { return softLineDoc{} }

// Indent increases the indent level of inner by one step for any breaks
// occurring within it.
func Indent(inner Doc) Doc { return indentDoc{inner} }

// Group renders inner flat (all Lines become spaces, SoftLines vanish) if it
// fits within the remaining width; otherwise every Line/SoftLine inside it
// breaks.
func Group(inner Doc) Doc { return groupDoc{inner} }

// Sep joins items with sep, as a Group: all on one line if it fits, else one
// item per line.
func Sep(sep Doc, items []Doc) Doc {
	if len(items) == 0 {
		return Concat()
	}
	parts := make([]Doc, 0, len(items)*2-1)
	parts = append(parts, items[0])
	for _, it := range items[1:] {
		parts = append(parts, sep, it)
	}
	return Group(Concat(parts...))
}

// Conditional renders flat when the current mode is flat, broken otherwise.
// It is only meaningful nested inside a Group; at top level, outside any
// Group, it renders broken.
func Conditional(flat, broken Doc) Doc { return conditionalDoc{flat, broken} }

type conditionalDoc struct{ flat, broken Doc }

func (conditionalDoc) doc() {}

const indentWidth = 2

type mode int

const (
	modeBreak mode = iota
	modeFlat
)

type item struct {
	indent int
	mode   mode
	doc    Doc
}

// Render lays out d for the given target line width (printer config;
// the target printer width).
func Render(d Doc, width int) string {
	var b strings.Builder
	column := 0
	work := []item{{indent: 0, mode: modeBreak, doc: d}}
	for len(work) > 0 {
		it := work[0]
		work = work[1:]
		switch n := it.doc.(type) {
		case textDoc:
			b.WriteString(n.s)
			column += len(n.s)
		case concatDoc:
			rest := make([]item, len(n.docs))
			for i, sub := range n.docs {
				rest[i] = item{indent: it.indent, mode: it.mode, doc: sub}
			}
			work = append(rest, work...)
		case indentDoc:
			work = append([]item{{indent: it.indent + indentWidth, mode: it.mode, doc: n.inner}}, work...)
		case groupDoc:
			flatItem := item{indent: it.indent, mode: modeFlat, doc: n.inner}
			if fits(width-column, append([]item{flatItem}, work...)) {
				work = append([]item{flatItem}, work...)
			} else {
				work = append([]item{{indent: it.indent, mode: modeBreak, doc: n.inner}}, work...)
			}
		case conditionalDoc:
			chosen := n.broken
			if it.mode == modeFlat {
				chosen = n.flat
			}
			work = append([]item{{indent: it.indent, mode: it.mode, doc: chosen}}, work...)
		case lineDoc:
			if it.mode == modeFlat {
				b.WriteString(" ")
				column++
			} else {
				b.WriteString("\n")
				b.WriteString(strings.Repeat(" ", it.indent))
				column = it.indent
			}
		case softLineDoc:
			if it.mode == modeBreak {
				b.WriteString("\n")
				b.WriteString(strings.Repeat(" ", it.indent))
				column = it.indent
			}
		}
	}
	return b.String()
}

// fits reports whether rendering the given work list flat (up to the next
// hard break in break mode) stays within the remaining width.
func fits(remaining int, work []item) bool {
	if remaining < 0 {
		return false
	}
	for i := 0; i < len(work); i++ {
		it := work[i]
		switch n := it.doc.(type) {
		case textDoc:
			remaining -= len(n.s)
			if remaining < 0 {
				return false
			}
		case concatDoc:
			rest := make([]item, len(n.docs))
			for j, sub := range n.docs {
				rest[j] = item{indent: it.indent, mode: it.mode, doc: sub}
			}
			tail := append(append([]item{}, rest...), work[i+1:]...)
			return fits(remaining, tail)
		case indentDoc:
			tail := append([]item{{indent: it.indent, mode: it.mode, doc: n.inner}}, work[i+1:]...)
			return fits(remaining, tail)
		case groupDoc:
			tail := append([]item{{indent: it.indent, mode: modeFlat, doc: n.inner}}, work[i+1:]...)
			return fits(remaining, tail)
		case conditionalDoc:
			chosen := n.broken
			if it.mode == modeFlat {
				chosen = n.flat
			}
			tail := append([]item{{indent: it.indent, mode: it.mode, doc: chosen}}, work[i+1:]...)
			return fits(remaining, tail)
		case lineDoc:
			if it.mode == modeFlat {
				remaining--
				if remaining < 0 {
					return false
				}
			} else {
				return true // a real newline always "fits" what follows
			}
		case softLineDoc:
			if it.mode == modeBreak {
				return true
			}
		}
	}
	return true
}
