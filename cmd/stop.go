package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a running adapter instance",
	Args:  cobra.NoArgs,
	Run:   runStop,
}

func runStop(cmd *cobra.Command, args []string) {
	pid := readRunningPID()
	if pid == 0 {
		fmt.Println("agentcli-bridge is not running")
		return
	}

	if err := killRunningProcess(pid); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop agentcli-bridge (pid %d): %v\n", pid, err)
		os.Exit(1)
	}

	for i := 0; i < 50; i++ {
		if !isProcessAlive(pid) {
			removePIDFile()
			fmt.Println("agentcli-bridge stopped")
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	fmt.Fprintln(os.Stderr, "agentcli-bridge did not exit within the grace period")
	os.Exit(1)
}
