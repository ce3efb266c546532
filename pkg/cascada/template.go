package cascada

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Params is the parameter record passed to a styler invocation.
type Params map[string]any

// Param is one resolved placeholder name/value pair, with the value already
// rendered to its identifier form.
type Param struct {
	Name  string
	Value string
}

// Source supplies values for named placeholders.
type Source interface {
	// Resolve returns the value for a placeholder name and whether the
	// source knows the name at all.
	Resolve(name string) (any, bool)
}

// SourceFunc adapts a function to Source. A callable source is authoritative:
// every name counts as found and the function's return value is resolved as
// usual.
type SourceFunc func(name string) any

// Resolve implements Source.
func (f SourceFunc) Resolve(name string) (any, bool) { return f(name), true }

// SourceMap adapts a plain map to Source. Names absent from the map fall back
// to the invocation's parameter record during rendering.
type SourceMap map[string]any

// Resolve implements Source.
func (m SourceMap) Resolve(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// Resolver resolves a possibly-callable value down to a primitive. It is
// passed to values of type func(Resolver) any so that pluggable reactive
// wrappers can recurse without reaching for package state.
type Resolver func(v any) (any, error)

// resolveValue unwraps callables until a non-callable value remains.
// Supported callable shapes: func() any (the reactive getter convention) and
// func(Resolver) any (explicit capability threading).
func resolveValue(v any) (any, error) {
	for {
		switch fn := v.(type) {
		case func() any:
			v = fn()
		case func(Resolver) any:
			v = fn(resolveValue)
		default:
			return v, nil
		}
	}
}

// formatValue renders a resolved value as its identifier text. Only strings
// and numbers qualify.
func formatValue(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case int:
		return strconv.Itoa(x), true
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", x), true
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x), true
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	}
	return "", false
}

// ClassPlaceholder is the empty placeholder. It survives template rendering
// untouched and is substituted with the fragment's own class, so one class
// can name both a selector and a keyframes animation.
const ClassPlaceholder = "<>"

// render substitutes every named placeholder in template and returns the
// rendered text plus each resolved (name, value) pair in first-occurrence
// order. Lookup order: src, then params for names the source does not know.
// Callable values are unwrapped via resolveValue before use.
func render(template string, src Source, params Params) (string, []Param, error) {
	var out strings.Builder
	out.Grow(len(template))
	var used []Param
	seen := make(map[string]bool)

	for i := 0; i < len(template); {
		c := template[i]
		if c != '<' {
			out.WriteByte(c)
			i++
			continue
		}

		name, end, ok := scanPlaceholder(template, i)
		if !ok {
			out.WriteByte(c)
			i++
			continue
		}
		if name == "" {
			// Empty placeholder: deferred to the fragment builder.
			out.WriteString(ClassPlaceholder)
			i = end
			continue
		}

		value, err := lookup(name, src, params)
		if err != nil {
			return "", nil, err
		}
		out.WriteString(value)
		if !seen[name] {
			seen[name] = true
			used = append(used, Param{Name: name, Value: value})
		}
		i = end
	}
	return out.String(), used, nil
}

// scanPlaceholder tries to read a placeholder starting at the '<' at position
// i. It returns the placeholder name ("" for the empty placeholder), the
// index just past the closing '>', and whether a placeholder was present at
// all. A '<' followed by whitespace, another '<', or no closing '>' is
// literal text.
func scanPlaceholder(s string, i int) (string, int, bool) {
	j := i + 1
	for j < len(s) {
		c := s[j]
		if c == '>' {
			return s[i+1 : j], j + 1, true
		}
		if c == '<' || unicode.IsSpace(rune(c)) {
			return "", 0, false
		}
		j++
	}
	return "", 0, false
}

// lookup resolves one placeholder name against the source with parameter
// fallback, unwraps callables, and renders the result.
func lookup(name string, src Source, params Params) (string, error) {
	var raw any
	found := false
	if src != nil {
		raw, found = src.Resolve(name)
	}
	if !found {
		raw, found = params[name]
	}
	if !found {
		return "", fmt.Errorf("%w: no value for %q", ErrPlaceholderUnresolved, name)
	}

	resolved, err := resolveValue(raw)
	if err != nil {
		return "", err
	}
	value, ok := formatValue(resolved)
	if !ok {
		return "", fmt.Errorf("%w: %q resolved to %T, want string or number", ErrPlaceholderUnresolved, name, resolved)
	}
	return value, nil
}
