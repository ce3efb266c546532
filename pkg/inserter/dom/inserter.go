//go:build js && wasm
// +build js,wasm

// Package dom mounts injected CSS as <style> elements in the browser
// document. Only available in WASM builds; other platforms get a stub whose
// constructor fails.
package dom

import (
	"syscall/js"
)

// StyleInserter creates one <style> element per inserted fragment and removes
// it again through the returned callback. It satisfies cascada.Inserter.
type StyleInserter struct {
	document js.Value
	head     js.Value
}

// New creates a style inserter bound to the global document.
func New() (*StyleInserter, error) {
	document := js.Global().Get("document")
	head := document.Get("head")
	return &StyleInserter{document: document, head: head}, nil
}

// Insert mounts statements as a <style> element tagged with the fragment's
// class and returns the callback that detaches it.
func (s *StyleInserter) Insert(statements, class string) func() {
	el := s.document.Call("createElement", "style")
	el.Set("textContent", statements)
	el.Call("setAttribute", "data-cascada", class)
	s.head.Call("appendChild", el)

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		parent := el.Get("parentNode")
		if !parent.IsNull() && !parent.IsUndefined() {
			parent.Call("removeChild", el)
		}
	}
}
