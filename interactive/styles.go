package interactive

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/spdxbridge/sdg/dashcore"
)

// Styles holds the lipgloss styles for the app shell. Views derive their
// own ViewStyles from the same theme so every screen matches the
// generation dashboards.
type Styles struct {
	theme Theme

	// Text styles
	Title   lipgloss.Style
	Subtle  lipgloss.Style
	Accent  lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Layout
	Divider lipgloss.Style

	// Logo/Header
	LogoText   lipgloss.Style
	LogoSubtle lipgloss.Style

	// Breadcrumbs
	CrumbActive   lipgloss.Style
	CrumbInactive lipgloss.Style

	// Status indicators
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style

	// Menu/Help bar
	MenuKey       lipgloss.Style
	MenuDesc      lipgloss.Style
	MenuSeparator lipgloss.Style

	// Panels
	PanelTitle lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Spinner
	Spinner lipgloss.Style

	// Step indicators
	StepPending lipgloss.Style
	StepRunning lipgloss.Style
	StepDone    lipgloss.Style
	StepFail    lipgloss.Style
}

// NewStyles creates a new Styles instance using the DefaultTheme
func NewStyles() *Styles {
	theme := DefaultTheme()
	return &Styles{
		theme: theme,

		// Text styles
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtle: lipgloss.NewStyle().
			Foreground(theme.TextMuted),

		Accent: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Info: lipgloss.NewStyle().
			Foreground(theme.Info),

		// Layout
		Divider: lipgloss.NewStyle().
			Foreground(theme.BorderDim),

		// Logo/Header
		LogoText: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.TextBright).
			Background(theme.Primary),

		LogoSubtle: lipgloss.NewStyle().
			Foreground(theme.TextMuted).
			PaddingLeft(1),

		// Breadcrumbs
		CrumbActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.TextBright).
			Background(theme.Secondary),

		CrumbInactive: lipgloss.NewStyle().
			Foreground(theme.TextMuted).
			Background(theme.Surface),

		// Status indicators
		StatusKey: lipgloss.NewStyle().
			Foreground(theme.TextMuted),

		StatusValue: lipgloss.NewStyle().
			Foreground(theme.Accent),

		// Menu/Help bar
		MenuKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		MenuDesc: lipgloss.NewStyle().
			Foreground(theme.Text),

		MenuSeparator: lipgloss.NewStyle().
			Foreground(theme.BorderDim),

		// Panels
		PanelTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		// Help
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		HelpDesc: lipgloss.NewStyle().
			Foreground(theme.TextMuted),

		// Spinner
		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		// Step indicators
		StepPending: lipgloss.NewStyle().
			Foreground(theme.TextDim),

		StepRunning: lipgloss.NewStyle().
			Foreground(theme.Accent),

		StepDone: lipgloss.NewStyle().
			Foreground(theme.Success),

		StepFail: lipgloss.NewStyle().
			Foreground(theme.Error),
	}
}

// StepStyle returns the appropriate style for a step status
func (s *Styles) StepStyle(status dashcore.StepStatus) lipgloss.Style {
	switch status {
	case dashcore.StepRunning:
		return s.StepRunning
	case dashcore.StepComplete:
		return s.StepDone
	case dashcore.StepFailed:
		return s.StepFail
	case dashcore.StepSkipped:
		return s.Subtle
	default:
		return s.StepPending
	}
}

// StepIcon returns the appropriate icon for a step status
func (s *Styles) StepIcon(status dashcore.StepStatus, spinnerFrame string) string {
	if dashcore.Iconic {
		switch status {
		case dashcore.StepRunning:
			return spinnerFrame
		case dashcore.StepComplete:
			return "●"
		case dashcore.StepFailed:
			return "✗"
		case dashcore.StepSkipped:
			return "◌"
		default:
			return "○"
		}
	}
	// ASCII fallback
	switch status {
	case dashcore.StepRunning:
		return spinnerFrame
	case dashcore.StepComplete:
		return "*"
	case dashcore.StepFailed:
		return "x"
	case dashcore.StepSkipped:
		return "-"
	default:
		return "o"
	}
}
