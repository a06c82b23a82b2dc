package common

// ExitCode is the panic payload for controlled process exits. The recover
// handler in main turns it into a message and a matching os.Exit code.
type ExitCode struct {
	Code    int
	Message string
}

func (it ExitCode) ShowMessage() {
	Log("%s", it.Message)
}
