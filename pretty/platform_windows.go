package pretty

import (
	"os"

	"github.com/spdxbridge/sdg/common"
	"golang.org/x/sys/windows"
)

// localSetup tries to turn on virtual terminal processing, so that CSI
// sequences work on modern Windows consoles. Colors stay disabled when
// the console refuses.
func localSetup(interactive bool) {
	Iconic = false
	Disabled = true
	if !interactive {
		return
	}
	handle := windows.Handle(os.Stdout.Fd())
	var mode uint32
	err := windows.GetConsoleMode(handle, &mode)
	if err != nil {
		common.Trace("Could not read console mode, colors stay off: %v", err)
		return
	}
	err = windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
	if err != nil {
		common.Trace("Could not enable virtual terminal processing, colors stay off: %v", err)
		return
	}
	Disabled = false
}
