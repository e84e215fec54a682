package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "routecore",
	Short: "routecore - multi-provider LLM routing and orchestration core",
	Long: `routecore resolves a tool call to a concrete model, enforces a
per-provider allow-list, assembles file/conversation context within a
token budget, and dispatches generation to one of several provider
back-ends.

It exposes:
  - Provider abstraction and registry over native, aggregator, custom, and
    hosted-deployment back-ends
  - Auto-mode model selection by tool category (fast / balanced / extended
    reasoning)
  - A file/path sandbox and token-budgeted context assembler
  - A TTL-bounded conversation store with continuation support
  - A local-repository diff engine

For more information, visit: https://github.com/mercator-hq/routecore`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.CompletionOptions.DisableDefaultCmd = false
}
