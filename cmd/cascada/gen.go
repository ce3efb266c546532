package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/recera/cascada/cmd/cascada/internal/config"
	"github.com/recera/cascada/cmd/cascada/internal/manifest"
	"github.com/recera/cascada/internal/cache"
)

// newGenCommand creates the `cascada gen` command.
func newGenCommand() *cobra.Command {
	var (
		configPath string
		noCache    bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate the stylesheet from the manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(configPath, noCache, verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to cascada.yml")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "always regenerate, ignoring the cache")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every generated class")
	return cmd
}

func runGen(configPath string, noCache, verbose bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	cfgBytes, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}
	manifestBytes, err := os.ReadFile(cfg.Manifest)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	key := cache.Key(cfgBytes, manifestBytes)
	var genCache *cache.Cache
	if !noCache {
		genCache, err = cache.New(filepath.Join(".cascada", "cache"))
		if err != nil {
			return err
		}
		if cached, ok := genCache.Get(key); ok {
			if err := writeOutput(cfg.Output, cached); err != nil {
				return err
			}
			fmt.Printf("✓ %s up to date (cached)\n", cfg.Output)
			return nil
		}
	}

	css, classes, err := generate(cfg, manifestBytes)
	if err != nil {
		return err
	}

	if err := writeOutput(cfg.Output, []byte(css)); err != nil {
		return err
	}
	if genCache != nil {
		if err := genCache.Put(key, []byte(css)); err != nil {
			return err
		}
	}

	fmt.Printf("✓ wrote %s (%d classes)\n", cfg.Output, len(classes))
	if verbose {
		for _, c := range classes {
			if c.Variant > 0 {
				fmt.Printf("  %s[%d] → %s\n", c.Label, c.Variant, c.Name)
			} else {
				fmt.Printf("  %s → %s\n", c.Label, c.Name)
			}
		}
	}
	return nil
}

// generate runs the manifest through the core with the configured classifier.
func generate(cfg config.Config, manifestBytes []byte) (string, []manifest.Class, error) {
	m, err := manifest.Parse(manifestBytes)
	if err != nil {
		return "", nil, err
	}
	return m.Generate(cfg.Classifier())
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
