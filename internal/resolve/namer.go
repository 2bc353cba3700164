package resolve

import (
	"fmt"

	"github.com/funvibe/corelang/internal/lexer"
)

type namerScope struct {
	indexCount int
	oldCounts  map[string]int
}

// Namer tracks display names for pretty-printing: unlike Resolver, it
// allows shadowing by appending a per-raw-name collision counter
// (`name`, then `name#1`, `name#2`, ...). Names that are not valid bare
// identifiers (or that collide with a keyword) are back-quoted.
type Namer struct {
	names  []string
	counts map[string]int
	scopes []namerScope
}

// NewNamer returns an empty Namer.
func NewNamer() *Namer {
	return &Namer{counts: make(map[string]int)}
}

// IndexCount returns the number of display names currently recorded.
func (n *Namer) IndexCount() int { return len(n.names) }

// PushScope opens a new scope.
func (n *Namer) PushScope() {
	n.scopes = append(n.scopes, namerScope{
		indexCount: len(n.names),
		oldCounts:  make(map[string]int),
	})
}

// PopScope closes the most recently opened scope, restoring collision
// counters to their pre-scope values and truncating the name list. Panics
// on stack underflow (see Resolver.PopScope).
func (n *Namer) PopScope() {
	if len(n.scopes) == 0 {
		panic("resolve: PopScope: stack underflow")
	}
	last := len(n.scopes) - 1
	scope := n.scopes[last]
	n.scopes = n.scopes[:last]
	n.names = n.names[:scope.indexCount]
	for name, oldCount := range scope.oldCounts {
		if oldCount == 0 {
			delete(n.counts, name)
		} else {
			n.counts[name] = oldCount
		}
	}
}

// displayBase renders rawName as it would appear with no collision suffix:
// quoted if it isn't a syntactically valid bare identifier.
func displayBase(rawName string) string {
	if lexer.ValidName(rawName) {
		return rawName
	}
	return lexer.QuoteName(rawName)
}

// AddName records a new binding for rawName and returns its display name.
func (n *Namer) AddName(rawName string) string {
	if currCount, live := n.counts[rawName]; live {
		if len(n.scopes) > 0 {
			last := len(n.scopes) - 1
			if _, recorded := n.scopes[last].oldCounts[rawName]; !recorded {
				n.scopes[last].oldCounts[rawName] = currCount
			}
		}
		n.counts[rawName] = currCount + 1
		display := fmt.Sprintf("%s#%d", displayBase(rawName), currCount)
		n.names = append(n.names, display)
		return display
	}

	if len(n.scopes) > 0 {
		last := len(n.scopes) - 1
		if _, recorded := n.scopes[last].oldCounts[rawName]; !recorded {
			n.scopes[last].oldCounts[rawName] = 0
		}
	}
	n.counts[rawName] = 1
	display := displayBase(rawName)
	n.names = append(n.names, display)
	return display
}

// GetName returns the display name previously assigned at index.
func (n *Namer) GetName(index int) string {
	return n.names[index]
}
