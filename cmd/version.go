package cmd

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

// Set at build time via go build -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(buildInfo())
	},
}

func buildInfo() string {
	return fmt.Sprintf("agentcli-bridge %s (commit %s)", Version, resolveGitCommit())
}

func resolveGitCommit() string {
	if GitCommit != "unknown" {
		return GitCommit
	}
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
