//go:build windows

package oracle

import "os/exec"

// extractStatus on Windows reports only the exit code: there is no
// POSIX-style terminating signal to decode.
func extractStatus(state *exec.ProcessState) (exitCode, signal *int) {
	if state == nil {
		return nil, nil
	}
	code := state.ExitCode()
	return &code, nil
}
