package main

import "agentcli-bridge/cmd"

func main() {
	cmd.Execute()
}
