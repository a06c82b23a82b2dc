package interactive

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spdxbridge/sdg/common"
)

// ViewStyles provides consistent styling for all views
type ViewStyles struct {
	theme     Theme
	Title     lipgloss.Style
	Subtext   lipgloss.Style
	Label     lipgloss.Style
	Text      lipgloss.Style
	Accent    lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
	Separator lipgloss.Style
	KeyHint   lipgloss.Style
	Selected  lipgloss.Style
	Normal    lipgloss.Style

	// Table/List styles
	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
}

// NewViewStyles creates consistent styles from a theme
func NewViewStyles(theme Theme) ViewStyles {
	return ViewStyles{
		theme:     theme,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtext:   lipgloss.NewStyle().Foreground(theme.TextMuted),
		Label:     lipgloss.NewStyle().Foreground(theme.TextDim).Width(14),
		Text:      lipgloss.NewStyle().Foreground(theme.Text),
		Accent:    lipgloss.NewStyle().Foreground(theme.Accent),
		Success:   lipgloss.NewStyle().Foreground(theme.Success),
		Warning:   lipgloss.NewStyle().Foreground(theme.Warning),
		Error:     lipgloss.NewStyle().Foreground(theme.Error),
		Info:      lipgloss.NewStyle().Foreground(theme.Info),
		Separator: lipgloss.NewStyle().Foreground(theme.BorderDim),
		KeyHint:   lipgloss.NewStyle().Foreground(theme.TextDim).Background(theme.Surface).Padding(0, 1),
		Selected:  lipgloss.NewStyle().Foreground(theme.TextBright).Background(theme.Highlight).Bold(true).Padding(0, 1),
		Normal:    lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1),

		// Table/List
		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary).BorderBottom(true).BorderStyle(lipgloss.NormalBorder()).BorderForeground(theme.BorderDim),
		TableRow:    lipgloss.NewStyle().Foreground(theme.Text),
	}
}

// ViewBox provides a consistent container for all views
type ViewBox struct {
	Width        int
	Height       int
	ContentWidth int
	Theme        Theme
	BoxStyle     lipgloss.Style
}

// NewViewBox creates a responsive box for view content
func NewViewBox(width, height int, theme Theme) ViewBox {
	boxWidth := width - 8
	if boxWidth < 60 {
		boxWidth = 60
	}
	if boxWidth > 120 {
		boxWidth = 120
	}

	return ViewBox{
		Width:        boxWidth,
		Height:       height,
		ContentWidth: boxWidth - 6,
		Theme:        theme,
		BoxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2).
			Width(boxWidth),
	}
}

// Render wraps content in a centered box
func (vb ViewBox) Render(content string, termWidth, termHeight int) string {
	box := vb.BoxStyle.Render(content)
	return lipgloss.Place(
		termWidth,
		termHeight,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}

// RenderHeader creates a consistent header with product version and view title
func RenderHeader(vs ViewStyles, viewTitle string, subtitle string, contentWidth int) string {
	var b strings.Builder

	badge := vs.Title.Render(common.Product.Name())
	version := vs.Subtext.Render(" " + common.Version + " ")
	title := vs.Accent.Bold(true).Render(viewTitle)

	b.WriteString(badge)
	b.WriteString(version)
	b.WriteString(vs.Separator.Render("|"))
	b.WriteString(" ")
	b.WriteString(title)

	if subtitle != "" {
		b.WriteString(" ")
		b.WriteString(vs.Subtext.Render(subtitle))
	}
	b.WriteString("\n")
	b.WriteString(vs.Separator.Render(strings.Repeat("─", contentWidth)))
	b.WriteString("\n")
	return b.String()
}

// RenderFooter creates a consistent footer with key hints
func RenderFooter(vs ViewStyles, hints []KeyHint, contentWidth int) string {
	var b strings.Builder
	b.WriteString(vs.Separator.Render(strings.Repeat("─", contentWidth)))
	b.WriteString("\n")

	for i, hint := range hints {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(vs.KeyHint.Render(hint.Key))
		b.WriteString(" ")
		b.WriteString(vs.Subtext.Render(hint.Desc))
	}
	return b.String()
}

// KeyHint represents a keyboard shortcut hint
type KeyHint struct {
	Key  string
	Desc string
}
