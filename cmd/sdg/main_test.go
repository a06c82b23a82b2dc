package main

import (
	"testing"
)

// TestExitProtectionPassesCleanReturns ensures a panic-free call chain
// flows through the protection without side effects.
func TestExitProtectionPassesCleanReturns(t *testing.T) {
	finished := false
	func() {
		defer ExitProtection()
		finished = true
	}()
	if !finished {
		t.Error("Expected protected function body to run to completion")
	}
}

// TestExitProtectionRepanicsOnForeignPanics ensures only common.ExitCode
// panics are absorbed; anything else keeps propagating for a stack trace.
func TestExitProtectionRepanicsOnForeignPanics(t *testing.T) {
	defer func() {
		status := recover()
		if status == nil {
			t.Fatal("Expected the foreign panic to propagate")
		}
		message, ok := status.(string)
		if !ok || message != "unexpected" {
			t.Errorf("Expected original panic payload, got %v", status)
		}
	}()
	func() {
		defer ExitProtection()
		panic("unexpected")
	}()
}
