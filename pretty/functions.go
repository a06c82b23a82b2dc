package pretty

import (
	"fmt"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/dashcore"
)

func Ok() error {
	Highlight("OK.")
	return nil
}

func Note(format string, rest ...interface{}) {
	niceform := fmt.Sprintf("%sNote: %s%s", Cyan, format, Reset)
	common.Log(niceform, rest...)
}

func DebugNote(format string, rest ...interface{}) {
	niceform := fmt.Sprintf("%sNote: %s%s", Grey, format, Reset)
	common.Debug(niceform, rest...)
}

func Warning(format string, rest ...interface{}) {
	niceform := fmt.Sprintf("%sWarning: %s%s", Yellow, format, Reset)
	common.Log(niceform, rest...)
}

func Highlight(format string, rest ...interface{}) {
	niceform := fmt.Sprintf("%s%s%s", Cyan, format, Reset)
	common.Log(niceform, rest...)
}

func Lowlight(format string, rest ...interface{}) {
	niceform := fmt.Sprintf("%s%s%s", Grey, format, Reset)
	common.Log(niceform, rest...)
}

// Progress reports a numbered phase of a longer operation. Output is
// suppressed while a dashboard owns the terminal.
func Progress(step int, form string, details ...interface{}) {
	if dashcore.IsDashboardActive() {
		return
	}
	common.Progress(step, form, details...)
}

// Guard panics with given exit code and formatted message, unless the
// condition holds. Must only be used from command level, where the exit
// protection recover is in place.
func Guard(condition bool, exitcode int, format string, rest ...interface{}) {
	if !condition {
		Exit(exitcode, format, rest...)
	}
}

// Exit panics with given exit code and formatted message. Must only be
// used from command level, where the exit protection recover is in place.
func Exit(code int, format string, rest ...interface{}) {
	message := fmt.Sprintf(format, rest...)
	if code == 0 {
		panic(common.ExitCode{Code: code, Message: fmt.Sprintf("%s%s%s", Green, message, Reset)})
	}
	panic(common.ExitCode{Code: code, Message: fmt.Sprintf("%s%s%s", Red, message, Reset)})
}
