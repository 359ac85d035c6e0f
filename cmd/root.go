// Package cmd is the demoblog command line.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "demoblog",
	Short: "Serve a small markdown blog with a demo admin login",
	Long: `demoblog serves a fixed set of markdown posts, a login page and an admin page
that only logged-in sessions can open. Sessions live in memory and end when
the process exits. Configuration comes from the environment (see serve --help).`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
