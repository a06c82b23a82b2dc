package delegate

import (
	"path/filepath"
	"strings"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/pathlib"
	"github.com/spdxbridge/sdg/settings"
	"github.com/spdxbridge/sdg/shell"
	"github.com/spdxbridge/sdg/xviper"
)

const (
	// CommandConfigKey is where `sdg configure generator` persists the
	// command line override.
	CommandConfigKey = "generator.command"

	generatorArchive  = "spdx-doc-generator.pyz"
	defaultExecutable = "spdx-doc-generator"
)

// Origin tells which layer of configuration produced the resolved command.
type Origin string

const (
	OriginFlag         Origin = "flag"
	OriginConfig       Origin = "config"
	OriginSettings     Origin = "settings"
	OriginBootstrapped Origin = "bootstrapped"
	OriginPath         Origin = "path"
)

// InstalledGenerator is the location bootstrap installs the delegate into.
func InstalledGenerator() string {
	return filepath.Join(common.Product.GeneratorLocation(), generatorArchive)
}

func HasGenerator() bool {
	return pathlib.IsFile(InstalledGenerator())
}

// Resolve picks the command line that runs the delegate generator. Most
// specific wins: the --generator flag, then persisted configuration, then
// settings.yaml, then a bootstrapped install, and as last resort the bare
// executable name left for PATH lookup. Whether the winner actually exists
// on disk is not checked here; a missing command surfaces as a spawn
// failure, and diagnostics report resolvability ahead of time.
func Resolve(override string) ([]string, Origin, error) {
	command, err := tokenize(override)
	if err != nil {
		return nil, OriginFlag, err
	}
	if len(command) > 0 {
		common.Debug("Generator from --generator flag: %q", command)
		return command, OriginFlag, nil
	}
	command, err = tokenize(xviper.GetString(CommandConfigKey))
	if err != nil {
		return nil, OriginConfig, err
	}
	if len(command) > 0 {
		common.Debug("Generator from persisted configuration: %q", command)
		return command, OriginConfig, nil
	}
	command, err = tokenize(settings.Global.GeneratorCommand())
	if err != nil {
		return nil, OriginSettings, err
	}
	if len(command) > 0 {
		common.Debug("Generator from settings.yaml: %q", command)
		return command, OriginSettings, nil
	}
	if installed := InstalledGenerator(); pathlib.IsFile(installed) {
		command = installedCommand(installed)
		common.Debug("Generator from bootstrapped install: %q", command)
		return command, OriginBootstrapped, nil
	}
	common.Debug("Generator left for PATH lookup: %q", defaultExecutable)
	return []string{defaultExecutable}, OriginPath, nil
}

func tokenize(commandline string) ([]string, error) {
	flat := strings.TrimSpace(commandline)
	if len(flat) == 0 {
		return nil, nil
	}
	return shell.Split(flat)
}
