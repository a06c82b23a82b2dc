package interactive

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spdxbridge/sdg/dashcore"
	"github.com/spdxbridge/sdg/operations"
)

// DiagnosticsView runs the installation health checks and shows their
// progress live, step by step, then the settled report.
type DiagnosticsView struct {
	styles  *Styles
	width   int
	height  int
	tracker *ProgressTracker
	report  *operations.DiagnosticsReport
	loading bool
	frame   int
}

var checkFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewDiagnosticsView creates a new diagnostics view
func NewDiagnosticsView(styles *Styles) *DiagnosticsView {
	return &DiagnosticsView{
		styles:  styles,
		width:   120,
		height:  30,
		tracker: NewProgressTracker(operations.DiagnosticsLabels()),
		loading: true,
	}
}

// Init implements View
func (v *DiagnosticsView) Init() tea.Cmd {
	return v.runChecks(v.tracker)
}

type diagnosticsLoadedMsg struct {
	report *operations.DiagnosticsReport
}

// runChecks probes in a background command while the tracker mirrors each
// step. Spinner ticks repaint the view, so progress shows as it happens.
func (v *DiagnosticsView) runChecks(tracker *ProgressTracker) tea.Cmd {
	return func() tea.Msg {
		report := operations.ObservedDiagnostics(func(at int, label string, settled *operations.Check) {
			if settled == nil {
				tracker.StartStep(at, "checking")
				return
			}
			if settled.Status == operations.StatusFail {
				tracker.FailStep(at, settled.Message)
				return
			}
			tracker.SetStep(at, dashcore.StepComplete, settled.Message)
		})
		return diagnosticsLoadedMsg{report: report}
	}
}

// Update implements View
func (v *DiagnosticsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case diagnosticsLoadedMsg:
		v.report = msg.report
		v.loading = false
	case spinner.TickMsg:
		v.frame = (v.frame + 1) % len(checkFrames)
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "R":
			if !v.loading {
				v.tracker = NewProgressTracker(operations.DiagnosticsLabels())
				v.loading = true
				v.report = nil
				return v, v.runChecks(v.tracker)
			}
		}
	}
	return v, nil
}

func (v *DiagnosticsView) spinnerFrame() string {
	if dashcore.Iconic {
		return checkFrames[v.frame]
	}
	return "*"
}

// View implements View
func (v *DiagnosticsView) View() string {
	theme := v.styles.theme
	vs := NewViewStyles(theme)
	box := NewViewBox(v.width, v.height, theme)
	contentWidth := box.ContentWidth

	var b strings.Builder

	b.WriteString(RenderHeader(vs, "Diagnostics", "Installation Health", contentWidth))

	if v.loading {
		v.renderProgress(&b, vs, contentWidth)
	} else {
		v.renderReport(&b, vs, contentWidth)
	}

	// Footer
	b.WriteString("\n")
	hints := []KeyHint{
		{"R", "recheck"},
	}
	b.WriteString(RenderFooter(vs, hints, contentWidth))

	return box.Render(b.String(), v.width, v.height)
}

func (v *DiagnosticsView) renderProgress(b *strings.Builder, vs ViewStyles, contentWidth int) {
	steps := v.tracker.Steps()
	for _, step := range steps {
		style := v.styles.StepStyle(step.Status)
		icon := v.styles.StepIcon(step.Status, v.spinnerFrame())

		b.WriteString("  ")
		b.WriteString(style.Render(icon))
		b.WriteString(" ")
		b.WriteString(style.Render(fmt.Sprintf("%-18s", step.Name)))

		message := step.Message
		if len(message) > contentWidth-26 && contentWidth > 29 {
			message = message[:contentWidth-29] + "..."
		}
		if message != "" {
			b.WriteString(vs.Subtext.Render(message))
		}
		b.WriteString("\n")
	}

	stats := v.tracker.Stats()
	b.WriteString("\n")
	b.WriteString(vs.Subtext.Render(fmt.Sprintf("  %d/%d checks done", stats.Completed+stats.Failed+stats.Skipped, stats.Total)))
	b.WriteString("\n")
}

func (v *DiagnosticsView) renderReport(b *strings.Builder, vs ViewStyles, contentWidth int) {
	ok, warnings, failures := 0, 0, 0
	for _, check := range v.report.Checks {
		var mark string
		var style = vs.Success
		switch check.Status {
		case operations.StatusOk:
			mark, style = "ok  ", vs.Success
			ok++
		case operations.StatusWarning:
			mark, style = "warn", vs.Warning
			warnings++
		default:
			mark, style = "FAIL", vs.Error
			failures++
		}

		message := check.Message
		if len(message) > contentWidth-28 && contentWidth > 31 {
			message = message[:contentWidth-31] + "..."
		}

		b.WriteString("  ")
		b.WriteString(style.Render(mark))
		b.WriteString("  ")
		b.WriteString(vs.Text.Render(fmt.Sprintf("%-18s", check.Label)))
		b.WriteString(vs.Subtext.Render(message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	summary := fmt.Sprintf("  %d ok, %d warnings, %d failures", ok, warnings, failures)
	if failures > 0 {
		b.WriteString(vs.Error.Render(summary))
	} else if warnings > 0 {
		b.WriteString(vs.Warning.Render(summary))
	} else {
		b.WriteString(vs.Success.Render(summary))
	}
	b.WriteString("\n\n")

	b.WriteString(vs.Label.Render("  Version "))
	b.WriteString(vs.Info.Render(v.report.Version))
	b.WriteString("\n")
	b.WriteString(vs.Label.Render("  Platform "))
	b.WriteString(vs.Text.Render(v.report.Platform))
	b.WriteString("\n")
}

// Name implements View
func (v *DiagnosticsView) Name() string {
	return "Diagnostics"
}

// ShortHelp implements View
func (v *DiagnosticsView) ShortHelp() string {
	return "R:recheck"
}
