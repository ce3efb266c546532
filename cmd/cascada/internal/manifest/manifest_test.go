package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/cascada/pkg/cascada"
)

const sample = `
tokens:
  primary: "#3b82f6"
styles:
  - label: button
    declarations: "background: <primary>; padding: <pad>;"
    variants:
      - pad: 8px
      - pad: 12px
  - label: card
    declarations: "border-radius: 6px;"
fragments:
  - label: spin
    css: "@keyframes <> { to { transform: rotate(360deg); } } .<> { animation: <> 1s linear infinite; }"
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "#3b82f6", m.Tokens["primary"])
	require.Len(t, m.Styles, 2)
	assert.Equal(t, "button", m.Styles[0].Label)
	assert.Len(t, m.Styles[0].Variants, 2)
	require.Len(t, m.Fragments, 1)
}

func TestParseValidation(t *testing.T) {
	_, err := Parse([]byte("styles:\n  - declarations: \"color: red;\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "label")

	_, err = Parse([]byte("fragments:\n  - label: x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "css")
}

func TestGenerate(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)

	css, classes, err := m.Generate(cascada.NewReadableClassifier())
	require.NoError(t, err)

	// button x2 variants, card, spin.
	require.Len(t, classes, 4)
	assert.Equal(t, "button", classes[0].Label)
	assert.Equal(t, 0, classes[0].Variant)
	assert.Equal(t, 1, classes[1].Variant)
	assert.NotEqual(t, classes[0].Name, classes[1].Name)

	assert.Contains(t, css, "background: #3b82f6; padding: 8px;")
	assert.Contains(t, css, "background: #3b82f6; padding: 12px;")
	assert.Contains(t, css, "border-radius: 6px;")

	// The fragment's class names both its keyframes and its selector.
	spin := classes[3].Name
	assert.Contains(t, css, "@keyframes "+spin+" ")
	assert.Contains(t, css, "."+spin+" { animation: "+spin+" 1s linear infinite; }")
}

func TestGenerateCompactIntern(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)

	_, classes, err := m.Generate(cascada.Intern(cascada.NewCompactClassifier()))
	require.NoError(t, err)

	for i, c := range classes {
		assert.True(t, strings.HasPrefix(c.Name, "f"), "class %d = %q", i, c.Name)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)

	a, _, err := m.Generate(cascada.NewReadableClassifier())
	require.NoError(t, err)
	b, _, err := m.Generate(cascada.NewReadableClassifier())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
