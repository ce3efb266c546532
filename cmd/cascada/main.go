package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "cascada",
		Short: "Cascada - deduplicating CSS injection for Go",
		Long: `Cascada renders parameterized CSS templates into uniquely-classed
fragments and injects each distinct fragment exactly once. The CLI generates
stylesheets from a declarative manifest and serves them with live reload
during development.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newGenCommand())
	rootCmd.AddCommand(newDevCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
