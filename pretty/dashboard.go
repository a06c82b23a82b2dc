package pretty

// Dashboard framework for live terminal displays.
//
// Dashboards are DISABLED by default and must be explicitly enabled via
// the --dashboard flag or the SDG_DASHBOARD=1 environment variable. Even
// then they only show when the terminal is interactive, tall enough, and
// the controller is a real user (never in CI).
//
// All dashboards register SIGINT/SIGTERM handlers that restore the
// cursor before exiting.

import (
	"fmt"
	"os"
	"time"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/dashcore"
)

// Type aliases for dashcore types
type Dashboard = dashcore.Dashboard
type StepStatus = dashcore.StepStatus
type StepState = dashcore.StepState
type DashboardState = dashcore.DashboardState

// StepStatus constants
const (
	StepPending  = dashcore.StepPending
	StepRunning  = dashcore.StepRunning
	StepComplete = dashcore.StepComplete
	StepFailed   = dashcore.StepFailed
	StepSkipped  = dashcore.StepSkipped
)

// baseDashboard is an alias to dashcore.BaseDashboard for implementations
// in this package
type baseDashboard = dashcore.BaseDashboard

// DashboardEnabled controls whether the live dashboard UI is shown.
// Set via the --dashboard flag or SDG_DASHBOARD=1 environment variable.
var DashboardEnabled bool

// ShouldUseDashboard determines if dashboards should be enabled.
func ShouldUseDashboard() bool {
	if !DashboardEnabled && os.Getenv("SDG_DASHBOARD") != "1" {
		common.Trace("Dashboard disabled: --dashboard flag not set and SDG_DASHBOARD!=1")
		return false
	}

	if !Interactive {
		common.Trace("Dashboard disabled: not in interactive mode")
		return false
	}

	// Alt-screen dashboards interfere with output capture in automation,
	// so anything but a real user controller keeps them off.
	controller := common.ControllerType
	disabledControllers := map[string]bool{
		"citests":  true,
		"cloud":    true,
		"sdg.test": true,
		"internal": true,
	}
	if disabledControllers[controller] {
		common.Trace("Dashboard disabled: running with CI controller %q", controller)
		return false
	}

	height := TerminalHeight()
	if height < 20 {
		common.Trace("Dashboard disabled: terminal height %d < 20", height)
		return false
	}

	return true
}

// NewNoopDashboard returns a no-op dashboard implementation that does
// nothing. Use this when you need a Dashboard but no visual output.
func NewNoopDashboard() Dashboard {
	return dashcore.NewNoopDashboard()
}

// NewBatchDashboard creates a dashboard for batch document generation.
// Each name becomes one tracked step. Falls back to a no-op dashboard
// when display conditions are not met.
func NewBatchDashboard(names []string) Dashboard {
	common.Trace("NewBatchDashboard called with %d entries", len(names))

	if !ShouldUseDashboard() {
		return dashcore.NewNoopDashboard()
	}

	dashboard := NewTeaBatchDashboard(names)
	if dashboard != nil {
		return dashboard
	}

	return dashcore.NewNoopDashboard()
}

// NewDownloadDashboard creates a dashboard for download operations.
// Shows a progress bar with transfer rate and estimated time.
func NewDownloadDashboard(filename string, total int64) Dashboard {
	common.Trace("NewDownloadDashboard called for %s, %d bytes", filename, total)

	if !ShouldUseDashboard() {
		return dashcore.NewNoopDashboard()
	}

	return &DownloadDashboard{
		baseDashboard: dashcore.NewBaseDashboard(),
		filename:      filename,
		total:         total,
		current:       0,
		speed:         0,
		lastUpdate:    time.Now(),
		lastBytes:     0,
		speedSamples:  make([]float64, 0, 5),
	}
}

// NewCompactProgress creates a minimal single-line progress indicator
// for simple operations.
func NewCompactProgress(message string) Dashboard {
	return &CompactProgress{
		baseDashboard: dashcore.NewBaseDashboard(),
		message:       message,
		currentStep:   0,
		totalSteps:    0,
		progress:      0.0,
		status:        StepRunning,
		spinnerIdx:    0,
	}
}

// DownloadDashboard displays download progress with transfer rate and
// estimated time.
type DownloadDashboard struct {
	baseDashboard
	filename     string
	total        int64
	current      int64
	speed        float64
	lastUpdate   time.Time
	lastBytes    int64
	speedSamples []float64
}

func (d *DownloadDashboard) Start() {
	d.Mu.Lock()
	if d.Running {
		d.Mu.Unlock()
		return
	}
	d.Running = true
	d.StartTime = time.Now()
	d.lastUpdate = time.Now()
	d.Mu.Unlock()

	dashcore.SetupDashboardSignals(func() {
		d.cleanup()
	})

	HideCursor()

	go d.StartRenderLoop(d.render)
}

func (d *DownloadDashboard) Stop(success bool) {
	d.Mu.Lock()
	if !d.Running {
		d.Mu.Unlock()
		return
	}
	d.Running = false
	d.Mu.Unlock()

	close(d.StopChan)
	<-d.DoneChan

	d.cleanup()

	mark := "[OK]"
	if dashcore.Iconic {
		mark = "✓"
	}
	if success {
		common.Stdout("%s%s%s Download complete: %s (%s)\n", Green, mark, Reset, d.filename, formatBytes(d.total))
		return
	}
	mark = "[FAIL]"
	if dashcore.Iconic {
		mark = "✗"
	}
	common.Stdout("%s%s%s Download failed: %s\n", Red, mark, Reset, d.filename)
}

func (d *DownloadDashboard) Update(state DashboardState) {
	d.Mu.Lock()
	defer d.Mu.Unlock()

	if state.Progress >= 0 && state.Progress <= 1.0 {
		d.current = int64(float64(d.total) * state.Progress)
	}

	// Rolling average over the last five samples keeps the speed
	// readout from jittering.
	now := time.Now()
	elapsed := now.Sub(d.lastUpdate).Seconds()

	if elapsed > 0.1 {
		bytesDelta := d.current - d.lastBytes
		instantSpeed := float64(bytesDelta) / elapsed

		d.speedSamples = append(d.speedSamples, instantSpeed)
		if len(d.speedSamples) > 5 {
			d.speedSamples = d.speedSamples[1:]
		}

		sum := 0.0
		for _, sample := range d.speedSamples {
			sum += sample
		}
		d.speed = sum / float64(len(d.speedSamples))

		d.lastUpdate = now
		d.lastBytes = d.current
	}
}

func (d *DownloadDashboard) SetStep(index int, status StepStatus, message string) {
}

func (d *DownloadDashboard) AddOutput(line string) {
}

func (d *DownloadDashboard) render() {
	d.Mu.Lock()
	defer d.Mu.Unlock()

	width := TerminalWidth()
	if width < 40 {
		width = 40
	}
	if width > 80 {
		width = 80
	}

	style := ActiveBoxStyle()

	boxWidth := width - 2
	boxHeight := 6

	ClearLine()
	DrawBoxWithTitle(1, 1, boxWidth, boxHeight, "Downloading: "+d.filename, style)

	percentage := 0.0
	if d.total > 0 {
		percentage = float64(d.current) / float64(d.total) * 100.0
		if percentage > 100.0 {
			percentage = 100.0
		}
	}

	progressBarWidth := boxWidth - 4
	filledWidth := int(float64(progressBarWidth) * percentage / 100.0)

	progressBar := ""
	for i := 0; i < progressBarWidth; i++ {
		if dashcore.Iconic {
			if i < filledWidth {
				progressBar += "█"
			} else {
				progressBar += "░"
			}
		} else {
			if i < filledWidth {
				progressBar += "="
			} else {
				progressBar += " "
			}
		}
	}

	MoveTo(3, 3)
	common.Stdout("[%s] %3.0f%%", progressBar, percentage)

	MoveTo(4, 3)
	common.Stdout("%s / %s", formatBytes(d.current), formatBytes(d.total))

	MoveTo(5, 3)
	common.Stdout("Speed: %s   ETA: %s", formatSpeed(d.speed), formatETA(d.calculateETA()))
}

func (d *DownloadDashboard) cleanup() {
	ClearLine()
	ShowCursor()
}

func (d *DownloadDashboard) calculateETA() int {
	if d.speed <= 0 || d.current >= d.total {
		return 0
	}

	remaining := d.total - d.current
	return int(float64(remaining) / d.speed)
}

// formatBytes formats byte count as human-readable string (KB, MB, GB)
func formatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)

	if bytes >= GB {
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	} else if bytes >= MB {
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	} else if bytes >= KB {
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	}
	return fmt.Sprintf("%d B", bytes)
}

// formatSpeed formats bytes per second as human-readable string
func formatSpeed(bytesPerSec float64) string {
	const (
		KB = 1024.0
		MB = 1024.0 * KB
		GB = 1024.0 * MB
	)

	if bytesPerSec >= GB {
		return fmt.Sprintf("%.1f GB/s", bytesPerSec/GB)
	} else if bytesPerSec >= MB {
		return fmt.Sprintf("%.1f MB/s", bytesPerSec/MB)
	} else if bytesPerSec >= KB {
		return fmt.Sprintf("%.1f KB/s", bytesPerSec/KB)
	}
	return fmt.Sprintf("%.0f B/s", bytesPerSec)
}

// formatETA formats seconds as human-readable time estimate
func formatETA(seconds int) string {
	if seconds <= 0 {
		return "0s"
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm%ds", minutes, secs)
	}
	return fmt.Sprintf("%ds", secs)
}

// CompactProgress implements a minimal single-line progress indicator,
// used as a fallback for small terminals or simple operations.
// Format: ⠋ Verifying download... (Step 3/4) [42%]
type CompactProgress struct {
	baseDashboard
	message     string
	currentStep int
	totalSteps  int
	progress    float64
	status      StepStatus
	spinnerIdx  int
}

func (c *CompactProgress) spinnerFrames() []string {
	if dashcore.Iconic {
		return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	}
	return []string{"|", "/", "-", "\\"}
}

func (c *CompactProgress) Start() {
	c.Mu.Lock()
	if c.Running {
		c.Mu.Unlock()
		return
	}
	c.Running = true
	c.StartTime = time.Now()
	c.Mu.Unlock()

	if !Interactive {
		common.Trace("CompactProgress skipped (non-interactive mode): %s", c.message)
		common.Stdout("%s\n", c.message)
		return
	}

	dashcore.SetupDashboardSignals(func() {
		c.cleanup()
	})

	HideCursor()

	go c.StartRenderLoop(c.render)
}

func (c *CompactProgress) Stop(success bool) {
	c.Mu.Lock()
	if !c.Running {
		c.Mu.Unlock()
		return
	}
	c.Running = false
	c.Mu.Unlock()

	if !Interactive {
		return
	}

	close(c.StopChan)
	<-c.DoneChan

	c.renderFinal(success)
	c.cleanup()
}

func (c *CompactProgress) Update(state DashboardState) {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	c.progress = state.Progress
	if state.Message != "" {
		c.message = state.Message
	}
	if len(state.Steps) > 0 {
		c.totalSteps = len(state.Steps)
		completed := 0
		for _, step := range state.Steps {
			if step.Status == StepComplete {
				completed++
			}
		}
		c.currentStep = completed
	}
}

func (c *CompactProgress) SetStep(index int, status StepStatus, message string) {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	c.currentStep = index + 1
	c.status = status
	if message != "" {
		c.message = message
	}
}

func (c *CompactProgress) AddOutput(line string) {
}

func (c *CompactProgress) render() {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	frames := c.spinnerFrames()
	spinner := frames[c.spinnerIdx%len(frames)]
	c.spinnerIdx++

	statusLine := spinner + " " + c.message + "..."

	if c.totalSteps > 0 {
		statusLine += fmt.Sprintf(" (Step %d/%d)", c.currentStep, c.totalSteps)
	}

	if c.progress > 0 {
		percentage := int(c.progress * 100)
		if percentage > 100 {
			percentage = 100
		}
		statusLine += fmt.Sprintf(" [%d%%]", percentage)
	}

	common.Stdout("\r%s%s", csif("0K"), statusLine)
}

func (c *CompactProgress) renderFinal(success bool) {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	var icon, color string

	if success {
		c.status = StepComplete
		icon, color = "+", Green
		if dashcore.Iconic {
			icon = "✓"
		}
	} else {
		c.status = StepFailed
		icon, color = "x", Red
		if dashcore.Iconic {
			icon = "✗"
		}
	}

	var finalMsg string
	if c.totalSteps > 0 {
		if success {
			finalMsg = fmt.Sprintf("%s%s %s (%d/%d)%s", color, icon, c.message, c.totalSteps, c.totalSteps, Reset)
		} else {
			finalMsg = fmt.Sprintf("%s%s %s at step %d%s", color, icon, c.message, c.currentStep, Reset)
		}
	} else {
		finalMsg = fmt.Sprintf("%s%s %s%s", color, icon, c.message, Reset)
	}

	common.Stdout("\r%s%s\n", csif("0K"), finalMsg)
}

func (c *CompactProgress) cleanup() {
	ShowCursor()
}
