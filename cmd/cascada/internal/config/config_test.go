package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFillsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("manifest: theme.yml\n"))
	require.NoError(t, err)

	assert.Equal(t, "theme.yml", cfg.Manifest)
	assert.Equal(t, "public/styles.css", cfg.Output)
	assert.Equal(t, "readable", cfg.Flavor)
	assert.Equal(t, 5173, cfg.Dev.Port)
	assert.False(t, cfg.Intern)
}

func TestParseFull(t *testing.T) {
	cfg, err := Parse([]byte(`
manifest: styles/manifest.yml
output: dist/app.css
flavor: compact
intern: true
dev:
  port: 9000
`))
	require.NoError(t, err)

	assert.Equal(t, "styles/manifest.yml", cfg.Manifest)
	assert.Equal(t, "dist/app.css", cfg.Output)
	assert.Equal(t, "compact", cfg.Flavor)
	assert.True(t, cfg.Intern)
	assert.Equal(t, 9000, cfg.Dev.Port)
}

func TestParseRejectsUnknownFlavor(t *testing.T) {
	_, err := Parse([]byte("flavor: fancy\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flavor")
}

func TestClassifierMatchesFlavor(t *testing.T) {
	readable := Config{Flavor: "readable"}.Classifier()
	compact := Config{Flavor: "compact"}.Classifier()
	require.NotNil(t, readable)
	require.NotNil(t, compact)
	assert.IsType(t, readable, Config{}.Classifier())
}
