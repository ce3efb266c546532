// Package sheet collects injected CSS into an in-memory stylesheet. It is the
// inserter for server-side rendering, the CLI generator, and tests: anywhere
// there is no document to mount style elements into.
package sheet

import (
	"strings"
	"sync"
)

// entry is one mounted fragment. Entries keep their insertion order so the
// rendered stylesheet is deterministic.
type entry struct {
	class      string
	statements string
}

// Sheet is an ordered collection of live CSS statements.
type Sheet struct {
	mu      sync.Mutex
	entries []*entry
}

// New creates an empty sheet.
func New() *Sheet {
	return &Sheet{}
}

// Insert mounts statements under class and returns the callback that unmounts
// them. It satisfies cascada.Inserter.
func (s *Sheet) Insert(statements, class string) func() {
	e := &entry{class: class, statements: statements}

	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, cur := range s.entries {
			if cur == e {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				return
			}
		}
	}
}

// Render returns every live statement, insertion order, one per line.
func (s *Sheet) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	for _, e := range s.entries {
		b.WriteString(e.statements)
		b.WriteString("\n")
	}
	return b.String()
}

// Classes returns the classes currently mounted, insertion order.
func (s *Sheet) Classes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.class
	}
	return out
}

// Len reports the number of live entries.
func (s *Sheet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
