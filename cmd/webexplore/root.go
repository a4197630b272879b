// Package main provides the entry point for the webexplore CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for webexplore.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webexplore",
		Short: "Bounded same-domain web content explorer",
		Long: `webexplore fetches a web page and its same-domain neighborhood to a
bounded depth. Each page is fetched cheaply first and rendered in a
headless browser only when the cheap fetch is unusable. The main
content of every page is extracted, outbound links are scored, and the
whole run is bounded by a global deadline.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewExploreCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
