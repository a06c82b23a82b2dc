package interactive

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spdxbridge/sdg/operations"
	"github.com/spdxbridge/sdg/sbom"
)

// FormatsView lists the document formats the delegate generator supports
// and how each one surfaces in requests, files, and published artifacts.
type FormatsView struct {
	styles        *Styles
	width         int
	height        int
	formats       []sbom.Format
	defaultFormat string
	selected      int
}

// NewFormatsView creates a new formats view
func NewFormatsView(styles *Styles) *FormatsView {
	return &FormatsView{
		styles:  styles,
		width:   120,
		height:  30,
		formats: sbom.KnownFormats(),
	}
}

// Init implements View
func (v *FormatsView) Init() tea.Cmd {
	return v.loadDefault
}

type defaultFormatMsg string

func (v *FormatsView) loadDefault() tea.Msg {
	return defaultFormatMsg(operations.DefaultFormat())
}

// Update implements View
func (v *FormatsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case defaultFormatMsg:
		v.defaultFormat = string(msg)
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if v.selected < len(v.formats)-1 {
				v.selected++
			}
		case "k", "up":
			if v.selected > 0 {
				v.selected--
			}
		case "g":
			v.selected = 0
		case "G":
			if len(v.formats) > 0 {
				v.selected = len(v.formats) - 1
			}
		case "R":
			return v, v.loadDefault
		}
	}
	return v, nil
}

// View implements View
func (v *FormatsView) View() string {
	theme := v.styles.theme
	vs := NewViewStyles(theme)
	box := NewViewBox(v.width, v.height, theme)
	contentWidth := box.ContentWidth

	var b strings.Builder

	subtitle := fmt.Sprintf("(%d formats)", len(v.formats))
	b.WriteString(RenderHeader(vs, "Formats", subtitle, contentWidth))

	header := fmt.Sprintf("  %-12s %-6s %-8s %s", "NAME", "FLAG", "FILE", "MEDIA TYPE")
	b.WriteString(vs.TableHeader.Render(header))
	b.WriteString("\n")

	for i, format := range v.formats {
		isSelected := i == v.selected

		marker := " "
		if format.Name == v.defaultFormat {
			marker = "*"
		}

		line := fmt.Sprintf("%s %-12s %-6s %-8s %s",
			marker, format.Name, format.Flag, "*"+format.Extension, format.MediaType)

		if isSelected {
			b.WriteString(vs.Selected.Render("> " + line))
		} else {
			b.WriteString(vs.TableRow.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")

	// Detail panel for the selected format
	if v.selected >= 0 && v.selected < len(v.formats) {
		format := v.formats[v.selected]

		b.WriteString(vs.Label.Render("Invocation "))
		sample := fmt.Sprintf("<directory> --output=<name>%s --format=%s", format.Extension, format.Flag)
		b.WriteString(vs.Accent.Render(sample))
		b.WriteString("\n")

		b.WriteString(vs.Label.Render("Publish as "))
		b.WriteString(vs.Text.Render(format.MediaType))
		b.WriteString("\n")

		if format.Name == v.defaultFormat {
			b.WriteString(vs.Label.Render("Default "))
			b.WriteString(vs.Success.Render("used when no --format is given"))
			b.WriteString("\n")
		}

		if format.Name == sbom.RDF.Name {
			b.WriteString("\n")
			b.WriteString(vs.Warning.Render("Broken in the current upstream generator."))
			b.WriteString("\n")
			b.WriteString(vs.Subtext.Render("Requests are passed through unchanged, so runs fail as"))
			b.WriteString("\n")
			b.WriteString(vs.Subtext.Render("delegate failures until the upstream fix lands."))
			b.WriteString("\n")
		}
	}

	// Footer
	b.WriteString("\n")
	hints := []KeyHint{
		{"j/k", "nav"},
		{"R", "reload default"},
	}
	b.WriteString(RenderFooter(vs, hints, contentWidth))

	return box.Render(b.String(), v.width, v.height)
}

// Name implements View
func (v *FormatsView) Name() string {
	return "Formats"
}

// ShortHelp implements View
func (v *FormatsView) ShortHelp() string {
	return "j/k:nav R:reload"
}
