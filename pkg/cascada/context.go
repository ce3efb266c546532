// Package cascada injects parameterized CSS into a page exactly once per
// distinct fragment. Callers describe CSS as templated stylers, compose the
// results into requireable trees, and hand them to a Context, which
// deduplicates fragments by class, reference-counts concurrent requesters,
// and removes each fragment when its last requester releases it.
//
// The package performs text substitution and identifier-safe encoding only;
// it does not parse CSS, and two rules that target the same property on the
// same element remain the caller's problem.
package cascada

import (
	"fmt"
	"sync"
)

// Inserter performs the actual page mutation for one fragment and returns a
// callback that undoes it. A Context calls Insert at most once per distinct
// class while that class is live, and the removal callback at most once.
type Inserter interface {
	Insert(statements, class string) (remove func())
}

// InserterFunc adapts a function to Inserter.
type InserterFunc func(statements, class string) func()

// Insert implements Inserter.
func (f InserterFunc) Insert(statements, class string) func() { return f(statements, class) }

// Config holds Context configuration.
type Config struct {
	// Inserter mounts fragments into the page. Required.
	Inserter Inserter

	// Classifier derives fragment classes. Defaults to a fresh readable
	// classifier owned by this Context alone.
	Classifier Classifier
}

// token is one outstanding reference. Identity is the pointer itself.
type token struct {
	class string
}

// requisition is the per-class bookkeeping record: the canonical statements,
// the inserter's removal callback, and the set of outstanding references.
type requisition struct {
	statements string
	remove     func()
	refs       map[*token]struct{}
}

// Context is the deduplicating, reference-counted injection cache. It is
// created active and disposed exactly once; a disposed Context rejects
// further use.
type Context struct {
	mu         sync.Mutex
	inserter   Inserter
	classifier Classifier
	reqs       map[string]*requisition
	disposed   bool
}

// New creates an active Context.
func New(cfg Config) (*Context, error) {
	if cfg.Inserter == nil {
		return nil, fmt.Errorf("cascada: config needs an Inserter")
	}
	cl := cfg.Classifier
	if cl == nil {
		cl = NewReadableClassifier()
	}
	return &Context{
		inserter:   cfg.Inserter,
		classifier: cl,
		reqs:       make(map[string]*requisition),
	}, nil
}

// Handle is the caller-facing result of Require: the classes of the flattened
// fragments, in order, and the release operation scoped to exactly the
// references this Require added.
type Handle struct {
	Classes []string

	ctx    *Context
	tokens []*token
}

// Require flattens r into fragments, registers each with the cache, and
// mounts every fragment not already live. Registration is all-or-nothing: a
// failing Require performs no insertions and leaves the cache untouched.
func (c *Context) Require(r Requireable) (*Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return nil, ErrNotActive
	}

	var frags []Fragment
	if r != nil {
		if err := r.flatten(c.classifier, &frags); err != nil {
			return nil, err
		}
	}

	// Validate and collision-check everything before the first side effect.
	inCall := make(map[string]string, len(frags))
	for _, f := range frags {
		if f.Statements == "" {
			return nil, fmt.Errorf("%w: class %q", ErrBadStatements, f.Class)
		}
		if !ValidClass(f.Class) {
			return nil, fmt.Errorf("%w: %q", ErrBadClass, f.Class)
		}
		if req, ok := c.reqs[f.Class]; ok && req.statements != f.Statements {
			return nil, fmt.Errorf("%w: class %q already maps to different statements", ErrClassCollision, f.Class)
		}
		if prev, ok := inCall[f.Class]; ok && prev != f.Statements {
			return nil, fmt.Errorf("%w: class %q produced twice with different statements", ErrClassCollision, f.Class)
		}
		inCall[f.Class] = f.Statements
	}

	h := &Handle{
		Classes: make([]string, 0, len(frags)),
		ctx:     c,
		tokens:  make([]*token, 0, len(frags)),
	}
	for _, f := range frags {
		req, ok := c.reqs[f.Class]
		if !ok {
			req = &requisition{
				statements: f.Statements,
				remove:     c.inserter.Insert(f.Statements, f.Class),
				refs:       make(map[*token]struct{}),
			}
			c.reqs[f.Class] = req
		}
		tok := &token{class: f.Class}
		req.refs[tok] = struct{}{}
		h.Classes = append(h.Classes, f.Class)
		h.tokens = append(h.tokens, tok)
	}
	return h, nil
}

// Release drops every reference this handle owns. Releasing twice is a
// harmless no-op, and releases across handles may interleave in any order:
// each handle only ever touches its own tokens. A requisition whose last
// reference goes fires its removal callback once and is forgotten.
func (h *Handle) Release() {
	c := h.ctx
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || c.reqs == nil {
		return
	}
	for _, tok := range h.tokens {
		req, ok := c.reqs[tok.class]
		if !ok {
			continue
		}
		if _, owned := req.refs[tok]; !owned {
			continue // already released
		}
		delete(req.refs, tok)
		if len(req.refs) == 0 {
			req.remove()
			delete(c.reqs, tok.class)
		}
	}
}

// Live reports the number of distinct fragments currently mounted.
func (c *Context) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reqs)
}

// Dispose tears the Context down: every live requisition's removal callback
// fires regardless of outstanding references, classifier and inserter state
// is dropped, and any later Require fails with ErrNotActive. A second Dispose
// is a no-op.
func (c *Context) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}
	c.disposed = true
	for _, req := range c.reqs {
		req.remove()
	}
	c.reqs = nil
	c.classifier = nil
	c.inserter = nil
}
