package main

import (
	"os"

	"github.com/spdxbridge/sdg/cmd"
	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/operations"
)

// ExitProtection turns common.ExitCode panics into clean process exits
// and lets everything else escape as a real panic. Either way the async
// log pipeline is drained first, so no tail output is lost.
func ExitProtection() {
	status := recover()
	if status != nil {
		exit, ok := status.(common.ExitCode)
		if ok {
			exit.ShowMessage()
			common.WaitLogs()
			os.Exit(exit.Code)
		}
		common.WaitLogs()
		panic(status)
	}
	common.WaitLogs()
}

func main() {
	defer ExitProtection()
	cmd.Execute()
	if nag := operations.GeneratorVersionCheck(); nag != nil {
		nag()
	}
}
