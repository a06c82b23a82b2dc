package pretty

// Bubble Tea based dashboard for batch document generation. It owns the
// whole terminal while running, so regular log output is intercepted and
// suppressed for the duration.

import (
	"fmt"
	"strings"
	"sync"
	"time"

	teaprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/dashcore"
)

// TeaBatchDashboard tracks one step per requested document.
type TeaBatchDashboard struct {
	mu        sync.Mutex
	program   *tea.Program
	model     *batchDashboardModel
	running   bool
	startTime time.Time
}

type batchDashboardModel struct {
	steps      []batchStep
	spinner    spinner.Model
	progress   teaprogress.Model
	styles     Styles
	width      int
	height     int
	startTime  time.Time
	quitting   bool
	success    bool
	title      string
	updateChan chan batchUpdate
}

type batchStep struct {
	name    string
	status  StepStatus
	message string
}

type batchUpdate struct {
	index   int
	status  StepStatus
	message string
}

type batchTickMsg time.Time
type batchUpdateMsg batchUpdate
type batchQuitMsg struct{ success bool }

// NewTeaBatchDashboard creates a new Bubble Tea based batch dashboard.
// Returns nil when display conditions are not met.
func NewTeaBatchDashboard(names []string) *TeaBatchDashboard {
	if !ShouldUseDashboard() {
		return nil
	}

	steps := make([]batchStep, len(names))
	for at, name := range names {
		steps[at] = batchStep{name: name, status: StepPending}
	}

	styles := NewStyles(DefaultTheme())

	dot := spinner.New()
	dot.Spinner = spinner.Dot
	dot.Style = styles.Spinner

	bar := teaprogress.New(
		teaprogress.WithDefaultGradient(),
		teaprogress.WithWidth(50),
		teaprogress.WithoutPercentage(),
	)

	model := &batchDashboardModel{
		steps:      steps,
		spinner:    dot,
		progress:   bar,
		styles:     styles,
		startTime:  time.Now(),
		title:      "SPDX Document Generation",
		updateChan: make(chan batchUpdate, 100),
	}

	return &TeaBatchDashboard{
		model:     model,
		startTime: time.Now(),
	}
}

func (d *TeaBatchDashboard) Start() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.startTime = time.Now()
	d.mu.Unlock()

	dashcore.SetDashboardActive(true)

	// The dashboard owns the screen now, swallow everything.
	common.SetLogInterceptor(func(message string) bool {
		return true
	})

	d.program = tea.NewProgram(d.model, tea.WithAltScreen())

	go func() {
		if _, err := d.program.Run(); err != nil {
			common.Error("dashboard", err)
		}
	}()

	go d.listenForUpdates()
}

func (d *TeaBatchDashboard) listenForUpdates() {
	for update := range d.model.updateChan {
		if d.program != nil {
			d.program.Send(batchUpdateMsg(update))
		}
	}
}

func (d *TeaBatchDashboard) Stop(success bool) {
	if d == nil {
		return
	}

	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	common.ClearLogInterceptor()
	dashcore.SetDashboardActive(false)

	if d.program != nil {
		d.program.Send(batchQuitMsg{success: success})
		// Give the final frame time to render before quitting.
		time.Sleep(100 * time.Millisecond)
		d.program.Quit()
	}

	close(d.model.updateChan)
}

func (d *TeaBatchDashboard) Update(state DashboardState) {
}

// SetStep updates one document's status. Updates are dropped rather than
// blocked when the channel is full.
func (d *TeaBatchDashboard) SetStep(index int, status StepStatus, message string) {
	if d == nil || d.model == nil {
		return
	}

	if index >= 0 && index < len(d.model.steps) {
		select {
		case d.model.updateChan <- batchUpdate{index: index, status: status, message: message}:
		default:
		}
	}
}

func (d *TeaBatchDashboard) AddOutput(line string) {
}

func (m *batchDashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		batchTickCmd(),
	)
}

func batchTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return batchTickMsg(t)
	})
}

func (m *batchDashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 50)

	case batchTickMsg:
		return m, batchTickCmd()

	case batchUpdateMsg:
		if msg.index >= 0 && msg.index < len(m.steps) {
			m.steps[msg.index].status = msg.status
			m.steps[msg.index].message = msg.message
		}

	case batchQuitMsg:
		m.success = msg.success
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *batchDashboardModel) View() string {
	if m.quitting {
		return m.renderFinal()
	}

	var b strings.Builder

	settled := 0
	for _, step := range m.steps {
		if step.status == StepComplete || step.status == StepFailed {
			settled++
		}
	}

	title := fmt.Sprintf("%s  %d/%d", m.title, settled, len(m.steps))
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	for at, step := range m.steps {
		b.WriteString(m.renderStep(at, step))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	progress := float64(settled) / float64(len(m.steps))
	b.WriteString(m.styles.Progress.Render(m.progress.ViewAs(progress)))

	elapsed := time.Since(m.startTime)
	if settled > 0 && settled < len(m.steps) {
		avgTime := elapsed / time.Duration(settled)
		remaining := avgTime * time.Duration(len(m.steps)-settled)
		b.WriteString(m.styles.Label.Render(fmt.Sprintf("  ETA: %s", formatDuration(remaining))))
	} else if settled == 0 {
		b.WriteString(m.styles.Label.Render("  Calculating..."))
	}

	b.WriteString("\n")

	return m.styles.Box.Render(b.String())
}

func (m *batchDashboardModel) renderStep(index int, step batchStep) string {
	style := m.styles.StepStyle(step.status)
	icon := m.styles.StepIcon(step.status, m.spinner.View())

	text := fmt.Sprintf("%s %2d. %s", icon, index+1, step.name)
	if step.message != "" {
		text += "  " + step.message
	}

	return style.Render(text)
}

func (m *batchDashboardModel) renderFinal() string {
	completed := 0
	failed := 0
	for _, step := range m.steps {
		switch step.status {
		case StepComplete:
			completed++
		case StepFailed:
			failed++
		}
	}

	elapsed := time.Since(m.startTime)

	if m.success {
		return m.styles.Success.Render(fmt.Sprintf("✓ Generated %d of %d documents in %s", completed, len(m.steps), formatDuration(elapsed)))
	}
	return m.styles.Error.Render(fmt.Sprintf("✗ Generation failed for %d of %d documents after %s", failed, len(m.steps), formatDuration(elapsed)))
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
