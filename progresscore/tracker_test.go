package progresscore

import (
	"testing"
	"time"

	"github.com/spdxbridge/sdg/dashcore"
)

func TestNewProgressTracker(t *testing.T) {
	names := []string{"projects/alpha", "projects/beta", "projects/gamma"}
	tracker := NewProgressTracker(names)

	if tracker == nil {
		t.Fatal("NewProgressTracker returned nil")
	}
	if len(tracker.steps) != 3 {
		t.Errorf("Expected 3 steps, got %d", len(tracker.steps))
	}
	for i, step := range tracker.steps {
		if step.Status != dashcore.StepPending {
			t.Errorf("Step %d should be pending, got %v", i, step.Status)
		}
		if step.Name != names[i] {
			t.Errorf("Step %d name mismatch: expected %s, got %s", i, names[i], step.Name)
		}
	}
}

func TestProgressTrackerForwardOnly(t *testing.T) {
	tracker := NewProgressTracker([]string{"projects/alpha", "projects/beta"})

	if !tracker.StartStep(0, "generating") {
		t.Error("Failed to start step 0")
	}
	if tracker.SetStep(0, dashcore.StepPending, "") {
		t.Error("Should not be able to set running step back to pending")
	}
	if !tracker.CompleteStep(0) {
		t.Error("Failed to complete step 0")
	}
	if tracker.SetStep(0, dashcore.StepRunning, "") {
		t.Error("Should not be able to set completed step back to running")
	}
	if progress := tracker.Progress(); progress < 0.5 {
		t.Errorf("Expected progress >= 0.5, got %f", progress)
	}
}

func TestProgressTrackerRejectsBadIndex(t *testing.T) {
	tracker := NewProgressTracker([]string{"projects/alpha"})

	if tracker.StartStep(-1, "") {
		t.Error("Negative index should be rejected")
	}
	if tracker.StartStep(1, "") {
		t.Error("Out of range index should be rejected")
	}
}

func TestProgressTrackerStats(t *testing.T) {
	tracker := NewProgressTracker([]string{"projects/alpha", "projects/beta", "projects/gamma"})

	stats := tracker.Stats()
	if stats.Total != 3 {
		t.Errorf("Expected total=3, got %d", stats.Total)
	}
	if stats.Pending != 3 {
		t.Errorf("Expected pending=3, got %d", stats.Pending)
	}

	tracker.StartStep(0, "generating")
	tracker.CompleteStep(0)

	stats = tracker.Stats()
	if stats.Completed != 1 {
		t.Errorf("Expected completed=1, got %d", stats.Completed)
	}
	if stats.Pending != 2 {
		t.Errorf("Expected pending=2, got %d", stats.Pending)
	}

	tracker.StartStep(1, "generating")
	tracker.FailStep(1, "delegate exited with 1")

	stats = tracker.Stats()
	if stats.Failed != 1 {
		t.Errorf("Expected failed=1, got %d", stats.Failed)
	}

	tracker.SkipStep(2, "not a directory")

	stats = tracker.Stats()
	if stats.Skipped != 1 {
		t.Errorf("Expected skipped=1, got %d", stats.Skipped)
	}
}

func TestProgressTrackerIsComplete(t *testing.T) {
	tracker := NewProgressTracker([]string{"projects/alpha", "projects/beta"})

	if tracker.IsComplete() {
		t.Error("Tracker should not be complete initially")
	}

	tracker.StartStep(0, "generating")
	if tracker.IsComplete() {
		t.Error("Tracker should not be complete with running step")
	}

	tracker.CompleteStep(0)
	if tracker.IsComplete() {
		t.Error("Tracker should not be complete with pending step")
	}

	tracker.SkipStep(1, "skipped")
	if !tracker.IsComplete() {
		t.Error("Tracker should be complete when all steps are terminal")
	}
}

func TestProgressTrackerHasFailed(t *testing.T) {
	tracker := NewProgressTracker([]string{"projects/alpha", "projects/beta"})

	if tracker.HasFailed() {
		t.Error("Tracker should not have failed initially")
	}

	tracker.StartStep(0, "generating")
	tracker.CompleteStep(0)
	if tracker.HasFailed() {
		t.Error("Tracker should not have failed after completing step")
	}

	tracker.StartStep(1, "generating")
	tracker.FailStep(1, "spawn failure")
	if !tracker.HasFailed() {
		t.Error("Tracker should have failed after failing a step")
	}
}

func TestProgressTrackerCurrentStep(t *testing.T) {
	tracker := NewProgressTracker([]string{"projects/alpha", "projects/beta", "projects/gamma"})

	idx, step := tracker.CurrentStep()
	if idx != -1 || step != nil {
		t.Error("Should have no current step initially")
	}

	tracker.StartStep(1, "generating")
	idx, step = tracker.CurrentStep()
	if idx != 1 {
		t.Errorf("Expected current step index 1, got %d", idx)
	}
	if step == nil || step.Name != "projects/beta" {
		t.Error("Current step should be projects/beta")
	}

	tracker.CompleteStep(1)
	idx, step = tracker.CurrentStep()
	if idx != -1 || step != nil {
		t.Error("Should have no current step after completing")
	}
}

func TestProgressTrackerNotifiesOnUpdate(t *testing.T) {
	tracker := NewProgressTracker([]string{"projects/alpha"})

	fired := 0
	tracker.SetOnUpdate(func() { fired++ })

	tracker.StartStep(0, "generating")
	tracker.CompleteStep(0)
	// rejected transition must not notify
	tracker.StartStep(0, "again")

	if fired != 2 {
		t.Errorf("Expected 2 notifications, got %d", fired)
	}
}

func TestTrackedStepDuration(t *testing.T) {
	step := TrackedStep{
		Name:   "projects/alpha",
		Status: dashcore.StepPending,
	}

	if step.Duration() != 0 {
		t.Error("Duration should be 0 for step with no start time")
	}

	step.StartTime = time.Now().Add(-time.Second)
	if step.Duration() == 0 {
		t.Error("Duration should be > 0 for running step")
	}

	step.EndTime = step.StartTime.Add(2 * time.Second)
	duration := step.Duration()
	if duration != 2*time.Second {
		t.Errorf("Duration should be exactly 2 seconds, got %v", duration)
	}
}
