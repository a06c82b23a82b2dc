package interactive

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds all the key bindings for the interactive TUI
type KeyMap struct {
	// Global
	Quit key.Binding
	Help key.Binding

	// View switching
	ViewHistory     key.Binding
	ViewFormats     key.Binding
	ViewDiagnostics key.Binding

	// Navigation (vim-style)
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Actions
	Refresh key.Binding
	Tab     key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),

		// View switching
		ViewHistory: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "history"),
		),
		ViewFormats: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "formats"),
		),
		ViewDiagnostics: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "diagnostics"),
		),

		// Navigation (vim-style + arrows)
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),

		// Actions
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch"),
		),
	}
}

// keys is the global key map instance
var keys = DefaultKeyMap()
