package wizard

import (
	"testing"

	"github.com/spdxbridge/sdg/settings"
	"github.com/spdxbridge/sdg/xviper"
)

func TestFirstOfTakesTheFirstArgument(t *testing.T) {
	if firstOf([]string{"alpha", "beta"}, "fallback") != "alpha" {
		t.Error("Expected first argument")
	}
	if firstOf(nil, "fallback") != "fallback" {
		t.Error("Expected fallback for missing arguments")
	}
}

func TestCommandValidationTokenizes(t *testing.T) {
	optional := commandValidation(true)
	required := commandValidation(false)

	if !optional("") {
		t.Error("Optional validator should accept empty input")
	}
	if required("") {
		t.Error("Required validator should reject empty input")
	}
	if !required("python3 /opt/generator.pyz --fast") {
		t.Error("Plain command lines should validate")
	}
	if !required(`generator --label "two words"`) {
		t.Error("Quoted command lines should validate")
	}
	if optional(`generator "unbalanced`) {
		t.Error("Unbalanced quotes should not validate")
	}
}

func TestValidateSelectionByValueAndNumber(t *testing.T) {
	validator := ValidateSelection([]string{"tag-value", "rdf"})

	for _, good := range []string{"tag-value", "rdf", "1", "2"} {
		if !validator(good) {
			t.Errorf("Expected %q to validate", good)
		}
	}
	for _, bad := range []string{"", "0", "3", "bogus"} {
		if validator(bad) {
			t.Errorf("Expected %q to be rejected", bad)
		}
	}
}

func TestDraftSettingsIsAnIndependentCopy(t *testing.T) {
	t.Setenv("SDG_HOME", t.TempDir())
	settings.Reset()
	xviper.Reset()
	t.Cleanup(settings.Reset)
	t.Cleanup(xviper.Reset)

	draft, err := draftSettings()
	if err != nil {
		t.Fatal(err)
	}
	draft.Profile.Journal = false
	draft.Generator.Command = "edited"

	if !settings.Global.JournalEnabled() {
		t.Error("Draft edits must not leak into the settings cache")
	}
	if settings.Global.GeneratorCommand() == "edited" {
		t.Error("Draft edits must not leak into the settings cache")
	}
}
