package cascada

import (
	"fmt"
	"strings"
)

// Fragment is an immutable identifier/CSS pair. Class is the fragment's
// identity key: the Context treats two fragments with equal Class as the same
// fragment and verifies their Statements agree.
type Fragment struct {
	Class      string
	Statements string
}

// Requireable is zero or more deferred fragment computations. Nothing is
// rendered or classified until a Context flattens the tree inside Require.
type Requireable interface {
	flatten(cl Classifier, out *[]Fragment) error
}

// shape selects how a styler wraps its rendered output into statements.
type shape int

const (
	shapeRule shape = iota
	shapeBlock
)

// Styler produces requireables from parameter records. Its pointer identity,
// not its structure, feeds classification: two stylers built from identical
// templates and labels still yield distinct classes.
type Styler struct {
	label    string
	template string
	source   Source
	kind     shape
}

// Rule creates a styler whose output is a single class-selector ruleset:
// `.<class> { <declarations> }`. The declarations may use named placeholders
// and the empty placeholder (which becomes the fragment's own class, e.g. for
// an animation name).
func Rule(label, declarations string, src Source) *Styler {
	return &Styler{label: label, template: declarations, source: src, kind: shapeRule}
}

// Block creates a styler whose rendered template is used as-is: one or more
// complete CSS statements, with every empty placeholder replaced by the
// fragment's class. This is how one class names both a selector and the
// keyframes block it animates with.
func Block(label, css string, src Source) *Styler {
	return &Styler{label: label, template: css, source: src, kind: shapeBlock}
}

// With invokes the styler with a parameter record and returns the deferred
// fragment computation.
func (s *Styler) With(params Params) Requireable {
	return leaf{styler: s, params: params}
}

// Use is shorthand for With(nil).
func (s *Styler) Use() Requireable {
	return s.With(nil)
}

// leaf is one pending fragment computation.
type leaf struct {
	styler *Styler
	params Params
}

func (l leaf) flatten(cl Classifier, out *[]Fragment) error {
	frag, err := l.styler.build(cl, l.params)
	if err != nil {
		return err
	}
	*out = append(*out, frag)
	return nil
}

// build runs the full pipeline for one invocation: render, classify, encode,
// substitute the fragment's own class for empty placeholders.
func (s *Styler) build(cl Classifier, params Params) (Fragment, error) {
	rendered, used, err := render(s.template, s.source, params)
	if err != nil {
		return Fragment{}, err
	}
	if err := checkParams(params); err != nil {
		return Fragment{}, err
	}

	raw, err := cl.Classify(s, s.label, used, params)
	if err != nil {
		return Fragment{}, err
	}
	class := Encode(raw)

	rendered = strings.ReplaceAll(rendered, ClassPlaceholder, class)

	var statements string
	switch s.kind {
	case shapeRule:
		statements = fmt.Sprintf(".%s { %s }", class, strings.TrimSpace(rendered))
	default:
		statements = rendered
	}
	return Fragment{Class: class, Statements: statements}, nil
}

// composite is an ordered sequence of requireables.
type composite []Requireable

func (c composite) flatten(cl Classifier, out *[]Fragment) error {
	for _, r := range c {
		if r == nil {
			continue
		}
		if err := r.flatten(cl, out); err != nil {
			return err
		}
	}
	return nil
}

// Group composes requireables by concatenation. Groups nest; flattening is a
// single depth-first traversal so the resulting class order is deterministic.
func Group(items ...Requireable) Requireable {
	return composite(items)
}
