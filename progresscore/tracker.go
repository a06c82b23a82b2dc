// Package progresscore holds the progress tracking state shared by the
// pretty dashboards and the interactive UI. Both import it, it imports
// neither, which keeps the package graph free of cycles.
package progresscore

import (
	"sync"
	"time"

	"github.com/spdxbridge/sdg/dashcore"
)

// ProgressTracker tracks a fixed list of steps whose states only ever move
// forward. Progress shown to users never decreases.
type ProgressTracker struct {
	steps          []TrackedStep
	minProgress    float64
	startTime      time.Time
	lastUpdateTime time.Time
	mu             sync.RWMutex
	onUpdate       func()
}

// TrackedStep is one step with its timing info.
type TrackedStep struct {
	Name      string
	Status    dashcore.StepStatus
	Message   string
	StartTime time.Time
	EndTime   time.Time
}

// Duration tells how long this step took, or has been running so far.
func (s TrackedStep) Duration() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

func NewProgressTracker(stepNames []string) *ProgressTracker {
	steps := make([]TrackedStep, len(stepNames))
	for i, name := range stepNames {
		steps[i] = TrackedStep{
			Name:   name,
			Status: dashcore.StepPending,
		}
	}
	return &ProgressTracker{
		steps:       steps,
		minProgress: 0,
		startTime:   time.Now(),
	}
}

// SetOnUpdate registers a callback fired after every accepted change.
func (pt *ProgressTracker) SetOnUpdate(fn func()) {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.onUpdate = fn
}

// Allowed transitions: pending to running or skipped, running to complete
// or failed. Terminal states stay terminal.
func canTransition(from, to dashcore.StepStatus) bool {
	switch from {
	case dashcore.StepPending:
		return to == dashcore.StepRunning || to == dashcore.StepSkipped
	case dashcore.StepRunning:
		return to == dashcore.StepComplete || to == dashcore.StepFailed
	default:
		return false
	}
}

// SetStep updates a step's status. Backward transitions are rejected and
// reported with a false return, never applied.
func (pt *ProgressTracker) SetStep(index int, status dashcore.StepStatus, message string) bool {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if index < 0 || index >= len(pt.steps) {
		return false
	}
	if !canTransition(pt.steps[index].Status, status) {
		return false
	}

	pt.steps[index].Status = status
	pt.steps[index].Message = message

	now := time.Now()
	pt.lastUpdateTime = now
	if status == dashcore.StepRunning && pt.steps[index].StartTime.IsZero() {
		pt.steps[index].StartTime = now
	}
	if status == dashcore.StepComplete || status == dashcore.StepFailed || status == dashcore.StepSkipped {
		pt.steps[index].EndTime = now
	}

	newProgress := pt.calculateProgress()
	if newProgress > pt.minProgress {
		pt.minProgress = newProgress
	}

	if pt.onUpdate != nil {
		pt.onUpdate()
	}
	return true
}

func (pt *ProgressTracker) StartStep(index int, message string) bool {
	return pt.SetStep(index, dashcore.StepRunning, message)
}

func (pt *ProgressTracker) CompleteStep(index int) bool {
	return pt.SetStep(index, dashcore.StepComplete, "")
}

func (pt *ProgressTracker) FailStep(index int, reason string) bool {
	return pt.SetStep(index, dashcore.StepFailed, reason)
}

func (pt *ProgressTracker) SkipStep(index int, reason string) bool {
	return pt.SetStep(index, dashcore.StepSkipped, reason)
}

func (pt *ProgressTracker) calculateProgress() float64 {
	if len(pt.steps) == 0 {
		return 0
	}
	completed := 0
	for _, step := range pt.steps {
		if step.Status == dashcore.StepComplete || step.Status == dashcore.StepSkipped {
			completed++
		}
	}
	return float64(completed) / float64(len(pt.steps))
}

// Progress is the completion ratio, 0.0 to 1.0, forward-only.
func (pt *ProgressTracker) Progress() float64 {
	pt.mu.RLock()
	defer pt.mu.RUnlock()
	return pt.minProgress
}

// Steps returns a copy of all steps.
func (pt *ProgressTracker) Steps() []TrackedStep {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	result := make([]TrackedStep, len(pt.steps))
	copy(result, pt.steps)
	return result
}

// CurrentStep returns the index and a copy of the running step, or -1 and
// nil when nothing runs.
func (pt *ProgressTracker) CurrentStep() (int, *TrackedStep) {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	for i, step := range pt.steps {
		if step.Status == dashcore.StepRunning {
			s := step
			return i, &s
		}
	}
	return -1, nil
}

// ProgressStats is a snapshot of the whole tracker.
type ProgressStats struct {
	Total     int
	Completed int
	Failed    int
	Skipped   int
	Running   int
	Pending   int
	Progress  float64
	Elapsed   time.Duration
	ETA       time.Duration
}

func (pt *ProgressTracker) Stats() ProgressStats {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	stats := ProgressStats{
		Total:    len(pt.steps),
		Progress: pt.minProgress,
		Elapsed:  time.Since(pt.startTime),
	}

	var completedDuration time.Duration
	for _, step := range pt.steps {
		switch step.Status {
		case dashcore.StepComplete:
			stats.Completed++
			completedDuration += step.Duration()
		case dashcore.StepFailed:
			stats.Failed++
		case dashcore.StepSkipped:
			stats.Skipped++
		case dashcore.StepRunning:
			stats.Running++
		case dashcore.StepPending:
			stats.Pending++
		}
	}

	// ETA from average completed step time
	if stats.Completed > 0 && stats.Pending+stats.Running > 0 {
		avgStepTime := completedDuration / time.Duration(stats.Completed)
		stats.ETA = avgStepTime * time.Duration(stats.Pending+stats.Running)
	}
	return stats
}

// IsComplete tells whether every step reached a terminal state.
func (pt *ProgressTracker) IsComplete() bool {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	for _, step := range pt.steps {
		if step.Status == dashcore.StepPending || step.Status == dashcore.StepRunning {
			return false
		}
	}
	return true
}

// HasFailed tells whether any step failed.
func (pt *ProgressTracker) HasFailed() bool {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	for _, step := range pt.steps {
		if step.Status == dashcore.StepFailed {
			return true
		}
	}
	return false
}
