// Package manifest turns a declarative stylesheet manifest into CSS by
// feeding every entry through the styling core: stylers, classification, and
// a sheet-backed injection context.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/recera/cascada/pkg/cascada"
	"github.com/recera/cascada/pkg/inserter/sheet"
)

// Manifest is the top-level manifest document.
type Manifest struct {
	// Tokens are named values addressable as placeholders from every entry,
	// e.g. `primary: "#3b82f6"` makes `<primary>` resolvable.
	Tokens map[string]string `yaml:"tokens,omitempty"`

	// Styles are rule-shaped entries: one class selector per variant.
	Styles []Style `yaml:"styles,omitempty"`

	// Fragments are block-shaped entries: arbitrary statements, with `<>`
	// standing for the entry's own class.
	Fragments []FragmentEntry `yaml:"fragments,omitempty"`
}

// Style is one rule-shaped manifest entry.
type Style struct {
	Label        string           `yaml:"label"`
	Declarations string           `yaml:"declarations"`
	Variants     []map[string]any `yaml:"variants,omitempty"`
}

// FragmentEntry is one block-shaped manifest entry.
type FragmentEntry struct {
	Label  string         `yaml:"label"`
	CSS    string         `yaml:"css"`
	Params map[string]any `yaml:"params,omitempty"`
}

// Class reports one generated class and where it came from.
type Class struct {
	Label   string
	Variant int // index into the entry's variants; 0 when there are none
	Name    string
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes manifest bytes and validates entry labels.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	for i, s := range m.Styles {
		if s.Label == "" {
			return nil, fmt.Errorf("styles[%d]: label is required", i)
		}
		if s.Declarations == "" {
			return nil, fmt.Errorf("styles[%d] (%s): declarations are required", i, s.Label)
		}
	}
	for i, f := range m.Fragments {
		if f.Label == "" {
			return nil, fmt.Errorf("fragments[%d]: label is required", i)
		}
		if f.CSS == "" {
			return nil, fmt.Errorf("fragments[%d] (%s): css is required", i, f.Label)
		}
	}
	return &m, nil
}

// Generate renders the whole manifest through a fresh injection context and
// returns the stylesheet plus the classes it emitted, manifest order.
func (m *Manifest) Generate(cl cascada.Classifier) (string, []Class, error) {
	sh := sheet.New()
	ctx, err := cascada.New(cascada.Config{Inserter: sh, Classifier: cl})
	if err != nil {
		return "", nil, err
	}
	defer ctx.Dispose()

	tokens := make(cascada.SourceMap, len(m.Tokens))
	for name, value := range m.Tokens {
		tokens[name] = value
	}

	var classes []Class

	for _, s := range m.Styles {
		styler := cascada.Rule(s.Label, s.Declarations, tokens)
		variants := s.Variants
		if len(variants) == 0 {
			variants = []map[string]any{nil}
		}
		for vi, variant := range variants {
			h, err := ctx.Require(styler.With(cascada.Params(variant)))
			if err != nil {
				return "", nil, fmt.Errorf("style %q variant %d: %w", s.Label, vi, err)
			}
			classes = append(classes, Class{Label: s.Label, Variant: vi, Name: h.Classes[0]})
		}
	}

	for _, f := range m.Fragments {
		styler := cascada.Block(f.Label, f.CSS, tokens)
		h, err := ctx.Require(styler.With(cascada.Params(f.Params)))
		if err != nil {
			return "", nil, fmt.Errorf("fragment %q: %w", f.Label, err)
		}
		classes = append(classes, Class{Label: f.Label, Name: h.Classes[0]})
	}

	// Handles stay live on purpose: the sheet must hold everything when we
	// render it. Dispose tears the context down afterwards.
	return sh.Render(), classes, nil
}
