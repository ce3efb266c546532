//go:build !js || !wasm
// +build !js !wasm

package dom

import "fmt"

// StyleInserter mounts CSS as <style> elements (stub for non-WASM builds).
type StyleInserter struct{}

// New creates a style inserter (stub).
func New() (*StyleInserter, error) {
	return nil, fmt.Errorf("style inserter is only available in WASM builds")
}

// Insert is never reachable outside WASM builds; the constructor fails first.
func (s *StyleInserter) Insert(statements, class string) func() {
	return func() {}
}
