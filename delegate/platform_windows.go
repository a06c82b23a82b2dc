package delegate

// installedCommand wraps the archive with a python launcher; Windows does
// not honor interpreter lines inside the zipapp.
func installedCommand(archive string) []string {
	return []string{"python", archive}
}

// InterpreterName is the python executable the bootstrapped archive needs
// on PATH to actually run.
func InterpreterName() string {
	return "python"
}

func IsWindows() bool {
	return true
}
