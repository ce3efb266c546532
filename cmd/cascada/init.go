package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/recera/cascada/cmd/cascada/internal/config"
	"github.com/recera/cascada/cmd/cascada/internal/ui"
)

// starterManifest gives a new project something that renders on first `gen`.
const starterManifest = `tokens:
  primary: "#3b82f6"
  radius: "6px"

styles:
  - label: button
    declarations: "background: <primary>; color: white; border-radius: <radius>; padding: <pad>;"
    variants:
      - pad: 8px 16px
      - pad: 12px 24px

fragments:
  - label: spin
    css: "@keyframes <> { to { transform: rotate(360deg); } } .<> { animation: <> 1s linear infinite; }"
`

// newInitCommand creates the `cascada init` command.
func newInitCommand() *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create cascada.yml and a starter manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(defaults)
		},
	}

	cmd.Flags().BoolVarP(&defaults, "yes", "y", false, "accept all defaults without prompting")
	return cmd
}

func runInit(defaults bool) error {
	if _, err := os.Stat(config.DefaultPath); err == nil {
		return fmt.Errorf("%s already exists", config.DefaultPath)
	}

	cfg := config.Default()
	if !defaults {
		answers, err := ui.RunInitWizard(ui.Defaults{
			Manifest: cfg.Manifest,
			Output:   cfg.Output,
			Flavor:   cfg.Flavor,
		})
		if err != nil {
			return err
		}
		if answers.Aborted {
			fmt.Println("aborted")
			return nil
		}
		cfg.Manifest = answers.Manifest
		cfg.Output = answers.Output
		cfg.Flavor = answers.Flavor
		cfg.Intern = answers.Intern
	}

	if err := cfg.Save(config.DefaultPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.DefaultPath, err)
	}

	if _, err := os.Stat(cfg.Manifest); os.IsNotExist(err) {
		if dir := filepath.Dir(cfg.Manifest); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
		if err := os.WriteFile(cfg.Manifest, []byte(starterManifest), 0644); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
	}

	fmt.Printf("✓ wrote %s and %s\n", config.DefaultPath, cfg.Manifest)
	fmt.Println("  next: cascada gen")
	return nil
}
