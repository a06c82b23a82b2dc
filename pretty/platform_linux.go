package pretty

func localSetup(interactive bool) {
	Disabled = false
	Iconic = interactive && !Colorless
}
