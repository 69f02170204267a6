// Package cmd implements the adapter's control surface: start, stop, and
// status subcommands over the HTTP server defined in httpapi.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "agentcli-bridge",
	Short: "OpenAI-compatible HTTP adapter for the upstream CLI",
	Long: `agentcli-bridge exposes an OpenAI-compatible chat-completions
endpoint backed by a subprocess invocation of the upstream CLI for every
request.`,
}

// Execute runs the root command, exiting 1 on any command error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(startCmd, stopCmd, statusCmd)
}
