package wizard

import (
	"fmt"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/pretty"
	"github.com/spdxbridge/sdg/sbom"
	"github.com/spdxbridge/sdg/settings"
)

// Setup is the interactive settings builder behind `sdg configure wizard`.
// It asks for the handful of settings that matter day to day, previews the
// resulting YAML, and writes the settings file only after an explicit
// confirmation. An optional first argument presets the generator command
// answer.
func Setup(arguments []string) error {
	warning(!pretty.Interactive, "This wizard needs an interactive terminal.")
	if !pretty.Interactive {
		return ErrNotInteractive
	}

	draft, err := draftSettings()
	if err != nil {
		return err
	}

	command, err := ask("Generator command (empty leaves resolution to bootstrap/PATH)",
		firstOf(arguments, draft.Generator.Command), commandValidation(true))
	if err != nil {
		return err
	}

	chosen, err := askFormat(draft.Profile.Format)
	if err != nil {
		return err
	}
	warning(chosen == sbom.RDF.Name, "The rdf format is currently broken in the upstream generator; runs will fail until it is fixed there.")

	keep, err := askBool("Keep generated documents in the local library?", draft.Profile.KeepInLibrary)
	if err != nil {
		return err
	}

	journaled, err := askBool("Record generation runs in the journal?", draft.Profile.Journal)
	if err != nil {
		return err
	}

	draft.Generator.Command = command
	draft.Profile.Format = chosen
	draft.Profile.KeepInLibrary = keep
	draft.Profile.Journal = journaled

	content, err := draft.AsYaml()
	if err != nil {
		return err
	}
	common.Stdout("\n%sResulting %s:%s\n\n%s\n", pretty.Bold, common.Product.SettingsFile(), pretty.Reset, string(content))

	confirmed, err := Confirm("Write these settings?", false)
	if err != nil || !confirmed {
		return err
	}
	err = settings.SaveSettings(draft)
	if err != nil {
		return err
	}
	pretty.Highlight("Wrote %q.", common.Product.SettingsFile())
	return nil
}

// draftSettings gives an independent copy of the effective settings, so
// that a cancelled wizard never leaves edits behind in the process wide
// settings cache.
func draftSettings() (*settings.Settings, error) {
	current, err := settings.SummonSettings()
	if err != nil {
		note("Current settings did not load (%v), starting from defaults.", err)
		return settings.FromBytes(nil)
	}
	content, err := current.AsYaml()
	if err != nil {
		return nil, err
	}
	return settings.FromBytes(content)
}

func askFormat(defaults string) (string, error) {
	formats := sbom.KnownFormats()
	options := make([]string, 0, len(formats))
	displayNames := make([]string, 0, len(formats))
	for _, format := range formats {
		options = append(options, format.Name)
		displayNames = append(displayNames, fmt.Sprintf("%s (*%s, %s)", format.Name, format.Extension, format.MediaType))
	}
	chosen, err := askChoice("Default output format", options, displayNames, defaults)
	if err != nil {
		return "", err
	}
	format, err := sbom.ParseFormat(chosen)
	if err != nil {
		return "", err
	}
	return format.Name, nil
}
