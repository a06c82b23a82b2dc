package pretty

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spdxbridge/sdg/common"
)

// ProgressIndicator is the common contract for spinners and progress bars.
type ProgressIndicator interface {
	Start()
	Stop(success bool)
	Update(current int64, message string)
	IsRunning() bool
}

// setupSignalHandler restores cursor visibility when the user interrupts.
func setupSignalHandler(cleanup func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cleanup()
		os.Exit(1)
	}()
}

// Spinner implements ProgressIndicator with an animated spinner.
type Spinner struct {
	message  string
	frames   []string
	running  bool
	stopChan chan bool
	mu       sync.Mutex
}

func spinnerFrameset() []string {
	if Interactive && Iconic {
		return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	}
	return []string{"|", "/", "-", "\\"}
}

// NewSpinner creates a new spinner with the given message.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message:  message,
		frames:   spinnerFrameset(),
		running:  false,
		stopChan: make(chan bool, 1),
	}
}

// DelayedSpinner wraps a spinner that only appears when the operation
// takes longer than half a second, so quick operations stay quiet.
type DelayedSpinner struct {
	spinner    *Spinner
	delay      time.Duration
	started    bool
	cancelChan chan struct{}
	mu         sync.Mutex
}

// NewDelayedSpinner creates a spinner with a 500ms delay before showing.
func NewDelayedSpinner(message string) *DelayedSpinner {
	return &DelayedSpinner{
		spinner:    NewSpinner(message),
		delay:      500 * time.Millisecond,
		started:    false,
		cancelChan: make(chan struct{}),
	}
}

func (d *DelayedSpinner) Start() {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return
	}
	d.started = true
	d.mu.Unlock()

	if !Interactive {
		common.Trace("Delayed spinner skipped (non-interactive mode): %s", d.spinner.message)
		return
	}

	go func() {
		select {
		case <-time.After(d.delay):
			d.spinner.Start()
		case <-d.cancelChan:
			common.Trace("Delayed spinner cancelled (operation completed quickly): %s", d.spinner.message)
		}
	}()
}

func (d *DelayedSpinner) Stop(success bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return
	}

	select {
	case <-d.cancelChan:
	default:
		close(d.cancelChan)
	}

	if d.spinner.IsRunning() {
		d.spinner.Stop(success)
	}
}

func (d *DelayedSpinner) Update(current int64, message string) {
	d.spinner.Update(current, message)
}

func (d *DelayedSpinner) IsRunning() bool {
	return d.spinner.IsRunning()
}

func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	if !Interactive {
		common.Trace("Spinner skipped (non-interactive mode): %s", s.message)
		common.Stdout("%s\n", s.message)
		return
	}

	setupSignalHandler(func() {
		s.cleanup()
	})

	common.Stdout("%s", csif("?25l"))

	go s.animate()
}

func (s *Spinner) animate() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	frameIndex := 0
	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.mu.Lock()
			frame := s.frames[frameIndex]
			message := s.message
			s.mu.Unlock()

			common.Stdout("\r%s%s %s", csif("0K"), frame, message)

			frameIndex = (frameIndex + 1) % len(s.frames)
		}
	}
}

func (s *Spinner) Stop(success bool) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	if !Interactive {
		return
	}

	s.stopChan <- true
	s.cleanup()

	status, color := "✓", Green
	if !success {
		status, color = "✗", Red
	}
	if !Iconic {
		if success {
			status = "[OK]"
		} else {
			status = "[FAIL]"
		}
	}

	common.Stdout("\r%s%s%s %s%s\n", csif("0K"), color, status, s.message, Reset)
}

func (s *Spinner) Update(current int64, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = message
}

func (s *Spinner) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Spinner) cleanup() {
	common.Stdout("\r%s", csif("0K"))
	common.Stdout("%s", csif("?25h"))
}

// ProgressBar implements ProgressIndicator with a textual progress bar.
type ProgressBar struct {
	message string
	total   int64
	current int64
	running bool
	started time.Time
	mu      sync.Mutex
}

// NewProgressBar creates a new progress bar with the given message and total.
func NewProgressBar(message string, total int64) ProgressIndicator {
	return &ProgressBar{
		message: message,
		total:   total,
		current: 0,
		running: false,
	}
}

func (p *ProgressBar) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.started = time.Now()
	p.mu.Unlock()

	if !Interactive {
		common.Trace("Progress bar skipped (non-interactive mode): %s", p.message)
		common.Stdout("%s\n", p.message)
		return
	}

	setupSignalHandler(func() {
		p.cleanup()
	})

	common.Stdout("%s", csif("?25l"))

	p.draw()
}

func (p *ProgressBar) Stop(success bool) {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	if !Interactive {
		return
	}

	p.cleanup()

	status, color := "✓", Green
	if !success {
		status, color = "✗", Red
	}
	if !Iconic {
		if success {
			status = "[OK]"
		} else {
			status = "[FAIL]"
		}
	}

	common.Stdout("\r%s%s%s %s%s\n", csif("0K"), color, status, p.message, Reset)
}

func (p *ProgressBar) Update(current int64, message string) {
	p.mu.Lock()
	p.current = current
	if message != "" {
		p.message = message
	}
	p.mu.Unlock()

	if Interactive && p.IsRunning() {
		p.draw()
	}
}

func (p *ProgressBar) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *ProgressBar) draw() {
	p.mu.Lock()
	current := p.current
	total := p.total
	message := p.message
	elapsed := time.Since(p.started)
	p.mu.Unlock()

	percentage := 0
	if total > 0 {
		percentage = int((current * 100) / total)
		if percentage > 100 {
			percentage = 100
		}
	}

	remaining := ""
	if current > 0 && total > 0 {
		rate := float64(current) / elapsed.Seconds()
		if rate > 0 {
			remainingSeconds := float64(total-current) / rate
			remainingDuration := time.Duration(remainingSeconds) * time.Second

			minutes := int(remainingDuration.Minutes())
			seconds := int(remainingDuration.Seconds()) % 60

			if minutes > 0 {
				remaining = fmt.Sprintf(" %dm%ds remaining", minutes, seconds)
			} else {
				remaining = fmt.Sprintf(" %ds remaining", seconds)
			}
		}
	}

	termWidth := TerminalWidth()
	reservedSpace := len(message) + len(remaining) + 20
	barWidth := termWidth - reservedSpace
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 50 {
		barWidth = 50
	}

	filled := (percentage * barWidth) / 100
	if filled > barWidth {
		filled = barWidth
	}

	bar := ""
	for i := 0; i < barWidth; i++ {
		if i < filled-1 {
			bar += "="
		} else if i == filled-1 {
			bar += ">"
		} else {
			bar += " "
		}
	}

	common.Stdout("\r%s[%s] %3d%%%s %s", csif("0K"), bar, percentage, remaining, message)
}

func (p *ProgressBar) cleanup() {
	common.Stdout("\r%s", csif("0K"))
	common.Stdout("%s", csif("?25h"))
}
