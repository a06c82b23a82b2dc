package common

import (
	"os"
	"path/filepath"
)

const (
	SDG_HOME_VARIABLE        = `SDG_HOME`
	SPDXBRIDGE_HOME_VARIABLE = `SPDXBRIDGE_HOME`
	SDG_PRODUCT_NAME         = `SDG_PRODUCT_NAME`
	SDG_NAME                 = `SDG`
)

type (
	// ProductStrategy answers where this installation keeps its state.
	// Everything under Home() is owned by sdg; nothing else is written.
	ProductStrategy interface {
		Name() string
		ForceHome(string)
		HomeVariable() string
		Home() string
		SettingsFile() string
		ConfigFile() string
		GeneratorLocation() string
		LibraryLocation() string
		JournalLocation() string
		AllowInternalMetrics() bool
	}

	sdgStrategy struct {
		forcedHome string
	}
)

var Product ProductStrategy = SdgMode()

func SdgMode() ProductStrategy {
	return &sdgStrategy{}
}

func (it *sdgStrategy) Name() string {
	if value := os.Getenv(SDG_PRODUCT_NAME); len(value) > 0 {
		return value
	}
	return SDG_NAME
}

func (it *sdgStrategy) AllowInternalMetrics() bool {
	// Telemetry stays off. The identity command explains this to users.
	return false
}

func (it *sdgStrategy) ForceHome(value string) {
	it.forcedHome = value
}

func (it *sdgStrategy) HomeVariable() string {
	return SDG_HOME_VARIABLE
}

func (it *sdgStrategy) Home() string {
	if len(it.forcedHome) > 0 {
		return ExpandPath(it.forcedHome)
	}
	home := os.Getenv(SDG_HOME_VARIABLE)
	if len(home) > 0 {
		return ExpandPath(home)
	}
	home = os.Getenv(SPDXBRIDGE_HOME_VARIABLE)
	if len(home) > 0 {
		return ExpandPath(home)
	}
	legacy := ExpandPath(defaultLegacyLocation)
	if _, err := os.Stat(legacy); err == nil {
		return legacy
	}
	return ExpandPath(defaultSdgLocation)
}

func (it *sdgStrategy) SettingsFile() string {
	return filepath.Join(it.Home(), "settings.yaml")
}

func (it *sdgStrategy) ConfigFile() string {
	return filepath.Join(it.Home(), "sdg.yaml")
}

func (it *sdgStrategy) GeneratorLocation() string {
	return filepath.Join(it.Home(), "generator")
}

func (it *sdgStrategy) LibraryLocation() string {
	return filepath.Join(it.Home(), "library")
}

func (it *sdgStrategy) JournalLocation() string {
	return filepath.Join(it.Home(), "journal")
}
