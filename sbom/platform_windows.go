package sbom

import (
	"os/exec"
)

// No process groups on windows; a plain kill of the direct child is the
// supported timeout behavior there.
func setProcessGroup(command *exec.Cmd) {
}

func killProcess(command *exec.Cmd) {
	if command.Process == nil {
		return
	}
	command.Process.Kill()
}
