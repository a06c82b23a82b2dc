package operations

import (
	"time"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/delegate"
	"github.com/spdxbridge/sdg/pretty"
	"github.com/spdxbridge/sdg/settings"
	"github.com/spdxbridge/sdg/xviper"
)

// The freshness check probes the installed generator's version at most
// every few days and nags when it falls behind the settings minimum. The
// probe result is cached in the persisted config, so ordinary commands
// never pay the probe cost twice.

const (
	probedWhenKey    = "generator.checked.when"
	probedVersionKey = "generator.checked.version"
)

func needFreshProbe() bool {
	when := xviper.GetInt64(probedWhenKey)
	if when == 0 {
		return true
	}
	return common.DayCountSince(time.Unix(when, 0)) > 2
}

func probedGeneratorVersion() string {
	if !needFreshProbe() {
		return xviper.GetString(probedVersionKey)
	}
	command, _, err := delegate.Resolve("")
	if err != nil {
		return ""
	}
	if _, found := resolvedExecutable(command); !found {
		return ""
	}
	// Stamp before probing, so a hanging generator cannot make every
	// command invocation slow for days.
	xviper.Set(probedWhenKey, time.Now().Unix())
	version, err := delegate.QueryVersion(command)
	if err != nil {
		common.Debug("Generator version probe failed, reason: %v", err)
		return xviper.GetString(probedVersionKey)
	}
	xviper.Set(probedVersionKey, version)
	return version
}

// GeneratorVersionCheck compares the installed generator against the
// settings minimum. The returned function, when not nil, prints the
// advisory note; callers defer it so the note lands after the actual
// command output.
func GeneratorVersionCheck() func() {
	minimum := settings.Global.GeneratorMinimumVersion()
	if len(minimum) == 0 {
		return nil
	}
	version := probedGeneratorVersion()
	if len(version) == 0 {
		return nil
	}
	current, _ := delegate.AsVersion(version)
	required, _ := delegate.AsVersion(minimum)
	if current == 0 || required == 0 || current >= required {
		return nil
	}
	return func() {
		pretty.Note("Installed generator is version %s, settings ask for at least %s. Run `sdg bootstrap --force` to refresh it.", version, minimum)
	}
}
