package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the adapter is running",
	Args:  cobra.NoArgs,
	Run:   runStatus,
}

func runStatus(cmd *cobra.Command, args []string) {
	if pid := readRunningPID(); pid != 0 {
		fmt.Printf("agentcli-bridge is running (pid %d)\n", pid)
		return
	}
	fmt.Println("agentcli-bridge is not running")
}
