package cascada

import (
	"fmt"
	"strings"
	"unicode"
)

// identThreshold is the code point at or above which runes pass through
// unescaped, matching the CSS non-ASCII identifier range.
const identThreshold = 0x00A0

// isIdentRune reports whether r may appear raw in a class token after the
// first character.
func isIdentRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	case r >= identThreshold:
		return true
	}
	return false
}

// Encode rewrites s so that every rune is legal inside a CSS class token.
// Letters, digits, underscore, hyphen, and runes at or above U+00A0 pass
// through; everything else becomes a backslash followed by the rune's code
// point as exactly six uppercase hex digits. The escape is fixed-width and the
// marker is never legal raw, so distinct inputs cannot collide within one
// encoded run.
func Encode(s string) string {
	// Fast path: nothing to escape.
	clean := true
	for _, r := range s {
		if !isIdentRune(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if isIdentRune(r) {
			b.WriteRune(r)
		} else {
			fmt.Fprintf(&b, `\%06X`, r)
		}
	}
	return b.String()
}

// ValidClass reports whether s satisfies the class-token grammar: a leading
// letter or underscore, then letters, digits, underscore, hyphen, or a
// backslash escape of exactly six uppercase hex digits.
func ValidClass(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	first := runes[0]
	if first != '_' && !unicode.IsLetter(first) && first < identThreshold {
		return false
	}
	for i := 1; i < len(runes); i++ {
		r := runes[i]
		if isIdentRune(r) {
			continue
		}
		if r != '\\' {
			return false
		}
		// Escape sequence: exactly six uppercase hex digits must follow.
		if i+6 > len(runes)-1 {
			return false
		}
		for j := i + 1; j <= i+6; j++ {
			h := runes[j]
			if !(h >= '0' && h <= '9' || h >= 'A' && h <= 'F') {
				return false
			}
		}
		i += 6
	}
	return true
}
