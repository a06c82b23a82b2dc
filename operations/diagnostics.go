package operations

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
	"time"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/delegate"
	"github.com/spdxbridge/sdg/pathlib"
	"github.com/spdxbridge/sdg/pretty"
	"github.com/spdxbridge/sdg/settings"
	"github.com/spdxbridge/sdg/xviper"
)

// Check statuses, also their JSON spellings. Warnings never change the
// exit code; failures do.
const (
	StatusOk      = "ok"
	StatusWarning = "warning"
	StatusFail    = "fail"
)

// Check is one labeled diagnostics verdict.
type Check struct {
	Label   string `json:"label"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DiagnosticsReport is everything `sdg diagnostics` finds out, as one
// JSON-able document.
type DiagnosticsReport struct {
	When     int64    `json:"when"`
	Version  string   `json:"version"`
	Platform string   `json:"platform"`
	Checks   []*Check `json:"checks"`
}

// Failures counts the checks that actually failed, ignoring warnings.
func (it *DiagnosticsReport) Failures() int {
	count := 0
	for _, check := range it.Checks {
		if check.Status == StatusFail {
			count++
		}
	}
	return count
}

type checkProbe struct {
	label string
	probe func() (string, string)
}

func diagnosticsWorkload() []checkProbe {
	return []checkProbe{
		{"product home", homeCheck},
		{"identity", identityCheck},
		{"settings", settingsCheck},
		{"generator", generatorCheck},
		{"interpreter", interpreterCheck},
		{"download source", downloadCheck},
		{"journal", journalCheck},
		{"generator version", generatorVersionCheck},
	}
}

// DiagnosticsLabels lists the checks in the order they run, for callers
// that render their own progress over an observed run.
func DiagnosticsLabels() []string {
	workload := diagnosticsWorkload()
	labels := make([]string, 0, len(workload))
	for _, item := range workload {
		labels = append(labels, item.label)
	}
	return labels
}

// ObservedDiagnostics runs every check and collects the verdicts. The
// observer is called twice per check: with a nil check just before the
// probe runs, and with the settled check right after.
func ObservedDiagnostics(observe func(at int, label string, settled *Check)) *DiagnosticsReport {
	report := &DiagnosticsReport{
		When:     time.Now().Unix(),
		Version:  common.Version,
		Platform: common.Platform(),
		Checks:   []*Check{},
	}
	for at, item := range diagnosticsWorkload() {
		observe(at, item.label, nil)
		status, message := item.probe()
		check := &Check{
			Label:   item.label,
			Status:  status,
			Message: message,
		}
		report.Checks = append(report.Checks, check)
		common.Timeline("diagnostics %s: %s", item.label, status)
		observe(at, item.label, check)
	}
	return report
}

// ProduceDiagnostics runs every check and collects the verdicts. With
// live set, a compact progress line follows the run on interactive
// terminals.
func ProduceDiagnostics(live bool) *DiagnosticsReport {
	progress := pretty.NewNoopDashboard()
	if live {
		progress = pretty.NewCompactProgress("Running diagnostics")
	}
	progress.Start()
	healthy := true
	report := ObservedDiagnostics(func(at int, label string, settled *Check) {
		if settled == nil {
			progress.SetStep(at, pretty.StepRunning, "checking "+label)
			return
		}
		if settled.Status == StatusFail {
			healthy = false
		}
	})
	progress.Stop(healthy)
	return report
}

// RunDiagnostics is the `sdg diagnostics` command body: produce, render,
// and exit nonzero when any check failed.
func RunDiagnostics(jsonForm bool) {
	report := ProduceDiagnostics(!jsonForm)
	if jsonForm {
		body, err := json.MarshalIndent(report, "", "  ")
		pretty.Guard(err == nil, 1, "Could not render diagnostics as JSON, reason: %v", err)
		common.Stdout("%s\n", body)
	} else {
		renderDiagnostics(report)
	}
	failed := report.Failures()
	pretty.Guard(failed == 0, 1, "%d diagnostics checks failed!", failed)
	if !jsonForm {
		pretty.Ok()
	}
}

func renderDiagnostics(report *DiagnosticsReport) {
	common.Log("%sDiagnostics of sdg %s on %s:%s", pretty.Bold, report.Version, report.Platform, pretty.Reset)
	for _, check := range report.Checks {
		mark, color := checkAppearance(check.Status)
		common.Log(" %s%s%s  %-18s  %s", color, mark, pretty.Reset, check.Label, check.Message)
	}
}

func checkAppearance(status string) (string, string) {
	switch status {
	case StatusOk:
		return "ok  ", pretty.Green
	case StatusWarning:
		return "warn", pretty.Yellow
	default:
		return "FAIL", pretty.Red
	}
}

func homeCheck() (string, string) {
	home := common.Product.Home()
	if _, err := pathlib.EnsureDirectory(home); err != nil {
		return StatusFail, fmt.Sprintf("cannot create %q, reason: %v", home, err)
	}
	if !pathlib.IsWritableDirectory(home) {
		return StatusFail, fmt.Sprintf("%q is not writable", home)
	}
	return StatusOk, home
}

func identityCheck() (string, string) {
	return StatusOk, fmt.Sprintf("instance %s, user home %s", xviper.TrackingIdentity(), common.UserHomeIdentity())
}

func settingsCheck() (string, string) {
	_, err := settings.SummonSettings()
	if err != nil {
		return StatusFail, fmt.Sprintf("%q did not parse, reason: %v", common.Product.SettingsFile(), err)
	}
	if pathlib.IsFile(common.Product.SettingsFile()) {
		return StatusOk, common.Product.SettingsFile()
	}
	return StatusOk, "built-in defaults (no settings file)"
}

// resolvedExecutable tells whether the first command token can actually
// be launched: paths are checked on disk, bare names through PATH.
func resolvedExecutable(command []string) (string, bool) {
	executable := command[0]
	if strings.ContainsAny(executable, `/\`) {
		return executable, pathlib.IsFile(executable)
	}
	full, err := exec.LookPath(executable)
	if err != nil {
		return executable, false
	}
	return full, true
}

func generatorCheck() (string, string) {
	command, origin, err := delegate.Resolve("")
	if err != nil {
		return StatusFail, fmt.Sprintf("cannot resolve generator command, reason: %v", err)
	}
	full, found := resolvedExecutable(command)
	if !found {
		return StatusWarning, fmt.Sprintf("%q (from %s) is not available yet, generation would report a spawn failure", full, origin)
	}
	return StatusOk, fmt.Sprintf("%q (from %s)", strings.Join(command, " "), origin)
}

func generatorNeedsInterpreter(command []string) bool {
	for _, token := range command {
		if strings.HasSuffix(token, ".pyz") {
			return true
		}
	}
	return false
}

func interpreterCheck() (string, string) {
	command, _, err := delegate.Resolve("")
	if err != nil || !generatorNeedsInterpreter(command) {
		return StatusOk, "not needed by the resolved generator"
	}
	name := delegate.InterpreterName()
	full, err := exec.LookPath(name)
	if err != nil {
		return StatusWarning, fmt.Sprintf("%q not found on PATH, the installed generator cannot run without it", name)
	}
	return StatusOk, full
}

func downloadCheck() (string, string) {
	source := settings.Global.DownloadURL()
	if len(source) == 0 {
		return StatusWarning, "no download source configured, `sdg bootstrap` will not work"
	}
	parsed, err := url.ParseRequestURI(source)
	if err != nil {
		return StatusFail, fmt.Sprintf("download source %q is not a valid URL", source)
	}
	if len(settings.Global.DownloadDigest()) == 0 {
		return StatusWarning, fmt.Sprintf("%s (no SHA-256 digest pinned, downloads go unverified)", parsed)
	}
	return StatusOk, source
}

func journalCheck() (string, string) {
	location := common.Product.JournalLocation()
	if _, err := pathlib.EnsureDirectory(location); err != nil {
		return StatusFail, fmt.Sprintf("cannot create %q, reason: %v", location, err)
	}
	if !pathlib.IsWritableDirectory(location) {
		return StatusFail, fmt.Sprintf("%q is not writable", location)
	}
	if !settings.Global.JournalEnabled() {
		return StatusWarning, "journal is disabled in settings"
	}
	return StatusOk, location
}

func generatorVersionCheck() (string, string) {
	command, _, err := delegate.Resolve("")
	if err != nil {
		return StatusWarning, "skipped, generator command did not resolve"
	}
	if _, found := resolvedExecutable(command); !found {
		return StatusWarning, "skipped, generator is not available yet"
	}
	version, err := delegate.QueryVersion(command)
	if err != nil {
		return StatusWarning, fmt.Sprintf("version probe failed, reason: %v", err)
	}
	minimum := settings.Global.GeneratorMinimumVersion()
	if len(minimum) == 0 {
		return StatusOk, version
	}
	have, _ := delegate.AsVersion(version)
	want, _ := delegate.AsVersion(minimum)
	if have < want {
		return StatusFail, fmt.Sprintf("version %s is below the required minimum %s", version, minimum)
	}
	return StatusOk, fmt.Sprintf("%s (minimum %s)", version, minimum)
}
