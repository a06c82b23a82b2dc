package delegate

// installedCommand runs the bootstrapped archive directly; the installer
// marked it executable and a zipapp carries its own interpreter line.
func installedCommand(archive string) []string {
	return []string{archive}
}

// InterpreterName is the python executable the bootstrapped archive needs
// on PATH to actually run.
func InterpreterName() string {
	return "python3"
}

func IsWindows() bool {
	return false
}
