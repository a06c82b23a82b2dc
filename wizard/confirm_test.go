package wizard

import (
	"errors"
	"testing"

	"github.com/spdxbridge/sdg/pretty"
)

func TestConfirmWithForce(t *testing.T) {
	result, err := Confirm("Test question", true)
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if !result {
		t.Error("Expected true when force is set")
	}
}

func TestConfirmNonInteractiveWithoutForce(t *testing.T) {
	originalInteractive := pretty.Interactive
	defer func() { pretty.Interactive = originalInteractive }()

	pretty.Interactive = false

	result, err := Confirm("Test question", false)
	if !errors.Is(err, ErrConfirmationRequired) {
		t.Errorf("Expected ErrConfirmationRequired, got: %v", err)
	}
	if result {
		t.Error("Expected false when non-interactive without force")
	}
}

func TestErrConfirmationRequired(t *testing.T) {
	expected := "confirmation required: use --yes flag in non-interactive mode"
	if ErrConfirmationRequired.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, ErrConfirmationRequired.Error())
	}
}
