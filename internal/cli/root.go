// Package cli implements the unsplash-proxy command line.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "unsplash-proxy",
		Short: "Rate-aware proxy for the Unsplash API",
		Long: `unsplash-proxy forwards calls to the Unsplash API and stops doing so
when the quota reported by Unsplash drops to the configured threshold.

Configuration is read from an optional YAML file and UNSPLASH_* environment variables.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional)")

	root.AddCommand(
		newServeCmd(&cfgFile),
		newSearchCmd(&cfgFile),
	)
	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}
