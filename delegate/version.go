package delegate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spdxbridge/sdg/settings"
	"github.com/spdxbridge/sdg/shell"
)

// Delegates that hang on a version probe should not hang the bridge.
const versionProbeTimeout = 15 * time.Second

// AsVersion reads a loose version out of tool output: last field of the
// first line, optional "v" prefix, up to three dot separated numbers folded
// into one comparable value (major*1000000 + minor*1000 + patch). Scanning
// stops at the first part that is not a plain number, so "1.2.3rc1" orders
// as 1.2.
func AsVersion(text string) (uint64, string) {
	text = strings.TrimSpace(text)
	if first, _, found := strings.Cut(text, "\n"); found {
		text = strings.TrimSpace(first)
	}
	if fields := strings.Fields(text); len(fields) > 0 {
		text = fields[len(fields)-1]
	}
	text = strings.TrimPrefix(text, "v")
	parts := strings.SplitN(text, ".", 4)
	multipliers := []uint64{1000000, 1000, 1}
	version := uint64(0)
	for at, multiplier := range multipliers {
		if len(parts) <= at {
			break
		}
		value, err := strconv.ParseUint(parts[at], 10, 64)
		if err != nil {
			break
		}
		version += multiplier * value
	}
	return version, text
}

// QueryVersion runs the delegate's version probe and returns the version
// text it reported.
func QueryVersion(command []string) (string, error) {
	if len(command) == 0 {
		return "", errors.New("no generator command to query")
	}
	probe := strings.TrimSpace(settings.Global.GeneratorVersionCommand())
	full := make([]string, 0, len(command)+1)
	full = append(full, command...)
	if len(probe) > 0 {
		full = append(full, probe)
	}
	task := shell.New(Environment(), ".", full...).WithTimeout(versionProbeTimeout)
	output, code, err := task.CaptureOutput()
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", fmt.Errorf("version probe %q exited with %d", full, code)
	}
	_, version := AsVersion(output)
	if len(version) == 0 {
		return "", fmt.Errorf("version probe %q printed nothing useful", full)
	}
	return version, nil
}
