package driver

import "os/exec"

// CheckCLIAvailable reports whether the configured CLI executable is on
// PATH, and the resolved path when it is.
func CheckCLIAvailable(cliPath string) (bool, string) {
	resolved, err := exec.LookPath(cliPath)
	if err != nil {
		return false, ""
	}
	return true, resolved
}
