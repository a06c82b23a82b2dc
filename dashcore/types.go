// Package dashcore provides shared dashboard types used by both the pretty
// and interactive packages. It exists to break the import cycle between them.
package dashcore

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// activeDashboard counts dashboards currently owning the terminal. While
// positive, plain progress output is suppressed.
var activeDashboard atomic.Int32

// IsDashboardActive returns true if any dashboard is currently rendering.
func IsDashboardActive() bool {
	return activeDashboard.Load() > 0
}

// SetDashboardActive increments or decrements the active dashboard counter.
func SetDashboardActive(active bool) {
	if active {
		activeDashboard.Add(1)
	} else {
		activeDashboard.Add(-1)
	}
}

// Dashboard is the contract for interactive terminal displays.
type Dashboard interface {
	Start()
	Stop(success bool)
	Update(state DashboardState)
	SetStep(index int, status StepStatus, message string)
	AddOutput(line string)
}

// StepStatus represents the current state of a dashboard step.
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepComplete
	StepFailed
	StepSkipped
)

// Iconic controls whether to use Unicode icons or the ASCII fallback.
// The pretty package sets this during Setup().
var Iconic = true

// String returns the visual representation of a step status.
func (s StepStatus) String() string {
	if Iconic {
		switch s {
		case StepPending:
			return "○"
		case StepRunning:
			return "⠋"
		case StepComplete:
			return "✓"
		case StepFailed:
			return "✗"
		case StepSkipped:
			return "⊘"
		default:
			return "○"
		}
	}

	switch s {
	case StepPending:
		return "o"
	case StepRunning:
		return "-"
	case StepComplete:
		return "+"
	case StepFailed:
		return "x"
	case StepSkipped:
		return "/"
	default:
		return "o"
	}
}

// StepState represents the state of a single step in a dashboard.
type StepState struct {
	Index   int
	Status  StepStatus
	Message string
}

// DashboardState holds the common state shared across dashboard types.
type DashboardState struct {
	Steps     []StepState
	Progress  float64 // 0.0 to 1.0
	Message   string
	StartTime time.Time
	Output    []string
}

// BaseDashboard provides common plumbing for dashboard implementations.
type BaseDashboard struct {
	Running   bool
	Mu        sync.Mutex
	StopChan  chan struct{}
	DoneChan  chan struct{}
	StartTime time.Time
	State     DashboardState
}

// NewBaseDashboard creates a new base dashboard with initialized channels.
func NewBaseDashboard() BaseDashboard {
	return BaseDashboard{
		Running:   false,
		StopChan:  make(chan struct{}),
		DoneChan:  make(chan struct{}),
		StartTime: time.Now(),
		State: DashboardState{
			StartTime: time.Now(),
			Steps:     []StepState{},
			Output:    []string{},
		},
	}
}

// SetupDashboardSignals registers signal handlers, so that the terminal is
// restored on Ctrl+C or termination.
func SetupDashboardSignals(cleanup func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cleanup()
		os.Exit(1)
	}()
}

// StartRenderLoop runs the dashboard render loop at 20fps (50ms cycle).
func (b *BaseDashboard) StartRenderLoop(renderFunc func()) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-b.StopChan:
			close(b.DoneChan)
			return
		case <-ticker.C:
			renderFunc()
		}
	}
}

type noopDashboard struct{}

func (n *noopDashboard) Start()                                               {}
func (n *noopDashboard) Stop(success bool)                                    {}
func (n *noopDashboard) Update(state DashboardState)                          {}
func (n *noopDashboard) SetStep(index int, status StepStatus, message string) {}
func (n *noopDashboard) AddOutput(line string)                                {}

// NewNoopDashboard returns a dashboard implementation that does nothing.
// Use this when a Dashboard is needed but no visual output is wanted.
func NewNoopDashboard() Dashboard {
	return &noopDashboard{}
}
