package sbom

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// setProcessGroup puts the child into its own process group, so that a
// timeout kill takes the delegate's own children down with it.
func setProcessGroup(command *exec.Cmd) {
	command.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killProcess(command *exec.Cmd) {
	if command.Process == nil {
		return
	}
	// negative pid addresses the whole process group
	unix.Kill(-command.Process.Pid, unix.SIGKILL)
}
