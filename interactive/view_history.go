package interactive

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spdxbridge/sdg/dashcore"
	"github.com/spdxbridge/sdg/journal"
)

// historyWindow caps how many journal events the view loads.
const historyWindow = 50

// HistoryView displays recent journal events, newest first.
type HistoryView struct {
	styles   *Styles
	width    int
	height   int
	events   []journal.Event
	problem  string
	selected int
	loading  bool
}

// NewHistoryView creates a new history view
func NewHistoryView(styles *Styles) *HistoryView {
	return &HistoryView{
		styles:   styles,
		width:    120,
		height:   30,
		events:   []journal.Event{},
		selected: 0,
		loading:  true,
	}
}

// Init implements View
func (v *HistoryView) Init() tea.Cmd {
	return v.loadHistory
}

type historyLoadedMsg struct {
	events  []journal.Event
	problem string
}

func (v *HistoryView) loadHistory() tea.Msg {
	events, err := journal.Recent(historyWindow)
	if err != nil {
		return historyLoadedMsg{problem: err.Error()}
	}
	// The journal is oldest first, the view wants newest on top.
	for left, right := 0, len(events)-1; left < right; left, right = left+1, right-1 {
		events[left], events[right] = events[right], events[left]
	}
	return historyLoadedMsg{events: events}
}

// Update implements View
func (v *HistoryView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		v.events = msg.events
		v.problem = msg.problem
		v.loading = false
		if len(v.events) > 0 && v.selected >= len(v.events) {
			v.selected = len(v.events) - 1
		}
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if v.selected < len(v.events)-1 {
				v.selected++
			}
		case "k", "up":
			if v.selected > 0 {
				v.selected--
			}
		case "g":
			v.selected = 0
		case "G":
			if len(v.events) > 0 {
				v.selected = len(v.events) - 1
			}
		case "R":
			v.loading = true
			return v, v.loadHistory
		}
	}
	return v, nil
}

// eventMark picks the status icon and style for one journal event. Only
// generation events carry success or failure; other events are neutral.
func eventMark(vs ViewStyles, event journal.Event) (string, lipgloss.Style) {
	success := strings.HasPrefix(event.Comment, "success")
	generation := event.Event == "generate" || event.Event == "batch"
	if dashcore.Iconic {
		switch {
		case success:
			return "✓", vs.Success
		case generation:
			return "✗", vs.Error
		default:
			return "•", vs.Info
		}
	}
	switch {
	case success:
		return "+", vs.Success
	case generation:
		return "x", vs.Error
	default:
		return "*", vs.Info
	}
}

// View implements View
func (v *HistoryView) View() string {
	theme := v.styles.theme
	vs := NewViewStyles(theme)
	box := NewViewBox(v.width, v.height, theme)
	contentWidth := box.ContentWidth

	var b strings.Builder

	subtitle := ""
	if !v.loading {
		subtitle = fmt.Sprintf("(%d runs)", len(v.events))
	}
	b.WriteString(RenderHeader(vs, "Run History", subtitle, contentWidth))

	switch {
	case v.loading:
		b.WriteString(vs.Subtext.Render("Loading journal..."))
	case len(v.problem) > 0:
		b.WriteString(vs.Error.Render("Journal could not be read"))
		b.WriteString("\n\n")
		b.WriteString(vs.Label.Render("Reason "))
		b.WriteString(vs.Subtext.Render(v.problem))
	case len(v.events) == 0:
		b.WriteString(vs.Subtext.Render("No runs recorded yet"))
		b.WriteString("\n\n")
		b.WriteString(vs.Label.Render("Tip "))
		b.WriteString(vs.Text.Render("Generate a document to start the journal"))
	default:
		maxVisible := 12
		startIdx := 0
		if v.selected >= maxVisible {
			startIdx = v.selected - maxVisible + 1
		}

		for i := startIdx; i < len(v.events) && i < startIdx+maxVisible; i++ {
			event := v.events[i]
			isSelected := i == v.selected

			icon, iconStyle := eventMark(vs, event)

			name := event.Event
			if len(name) > 12 {
				name = name[:9] + "..."
			}

			detail := event.Detail
			if len(detail) > 36 {
				detail = detail[:33] + "..."
			}

			timeStr := time.Unix(event.When, 0).Format("Jan 02 15:04")

			if isSelected {
				b.WriteString(vs.Selected.Render("> "))
			} else {
				b.WriteString("  ")
			}

			b.WriteString(iconStyle.Render(icon))
			b.WriteString(" ")

			if isSelected {
				b.WriteString(vs.Selected.Render(name))
			} else {
				b.WriteString(vs.Text.Render(name))
			}
			b.WriteString("  ")
			b.WriteString(vs.Subtext.Render(detail))
			b.WriteString("  ")
			b.WriteString(vs.Info.Render(timeStr))
			b.WriteString("\n")

			// Show details for selected entry
			if isSelected {
				b.WriteString("\n")
				b.WriteString(vs.Label.Render("  Detail "))
				detailStr := event.Detail
				if len(detailStr) > contentWidth-10 {
					detailStr = detailStr[:contentWidth-13] + "..."
				}
				b.WriteString(vs.Subtext.Render(detailStr))
				b.WriteString("\n")

				if event.Comment != "" {
					b.WriteString(vs.Label.Render("  Outcome "))
					b.WriteString(vs.Subtext.Render(event.Comment))
					b.WriteString("\n")
				}

				if event.Controller != "" {
					b.WriteString(vs.Label.Render("  Controller "))
					b.WriteString(vs.Subtext.Render(event.Controller))
					b.WriteString("\n")
				}
			}
		}

		if len(v.events) > maxVisible {
			remaining := len(v.events) - startIdx - maxVisible
			if remaining > 0 {
				b.WriteString(vs.Subtext.Render(fmt.Sprintf("\n  ... +%d more", remaining)))
			}
		}
	}

	// Footer
	b.WriteString("\n")
	hints := []KeyHint{
		{"j/k", "nav"},
		{"g/G", "top/bottom"},
		{"R", "refresh"},
	}
	b.WriteString(RenderFooter(vs, hints, contentWidth))

	return box.Render(b.String(), v.width, v.height)
}

// Name implements View
func (v *HistoryView) Name() string {
	return "History"
}

// ShortHelp implements View
func (v *HistoryView) ShortHelp() string {
	return "j/k:nav g/G:top/bottom R:refresh"
}
