//go:build !windows

package oracle

import (
	"os/exec"
	"syscall"
)

// extractStatus reports the exit code and terminating signal the way
// spec.md's combined-output format wants them: exactly one of the two
// is set, matching the original implementation's Option<i32> rendering.
func extractStatus(state *exec.ProcessState) (exitCode, signal *int) {
	if state == nil {
		return nil, nil
	}

	ws, ok := state.Sys().(syscall.WaitStatus)
	if ok && ws.Signaled() {
		sig := int(ws.Signal())
		return nil, &sig
	}

	code := state.ExitCode()
	return &code, nil
}
