package operations

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/delegate"
	"github.com/spdxbridge/sdg/journal"
	"github.com/spdxbridge/sdg/library"
	"github.com/spdxbridge/sdg/pretty"
	"github.com/spdxbridge/sdg/sbom"
	"github.com/spdxbridge/sdg/settings"
	"github.com/spdxbridge/sdg/shell"
	"github.com/spdxbridge/sdg/xviper"
)

// watcherPeriod is how often the subprocess watcher samples the process
// tree below this process while a delegate runs.
const watcherPeriod = 550 * time.Millisecond

// FormatConfigKey is where `sdg configure format` persists the default
// document format override.
const FormatConfigKey = "profile.format"

// GenerateFlags carries the command line knobs of generation runs.
type GenerateFlags struct {
	Generator  string
	Timeout    time.Duration
	Keep       bool
	ShowOutput bool
}

// DefaultFormat is the format label used when no --format flag is given:
// the persisted configuration first, then the settings profile.
func DefaultFormat() string {
	if persisted := xviper.GetString(FormatConfigKey); len(persisted) > 0 {
		return persisted
	}
	return settings.Global.DefaultFormat()
}

// ResolveGenerator turns the optional --generator override into the
// delegate command line, or exits with a usage error when the override
// cannot even be tokenized.
func ResolveGenerator(override string) []string {
	command, origin, err := delegate.Resolve(override)
	pretty.Guard(err == nil, 1, "Cannot resolve the generator command, reason: %v", err)
	common.Debug("Using generator %q (from %s).", strings.Join(command, " "), origin)
	common.Timeline("generator resolved from %s", origin)
	return command
}

// RunGeneration drives one foreground generation, from delegate resolution
// to this process's own exit code. It returns normally only on success;
// every failure leaves through the exit protection with the outcome's
// command exit code.
func RunGeneration(request *sbom.Request, flags *GenerateFlags) {
	command := ResolveGenerator(flags.Generator)

	generator := sbom.NewGenerator(command...).
		WithWorkingDirectory(request.Directory).
		WithEnvironment(delegate.Environment()).
		WithTimeout(flags.Timeout).
		ShowOutput(flags.ShowOutput)

	pipe := WatchChildren(os.Getpid(), watcherPeriod)

	var outcome *sbom.Outcome
	var err error
	shell.WithInterrupt(func() {
		outcome, err = generator.Generate(request)
	})
	pretty.Guard(err == nil, 1, "%v", err)

	seen, ok := <-pipe
	suberr := SubprocessWarning(seen, ok)
	if suberr != nil {
		pretty.Warning("Problem with subprocess warnings, reason: %v", suberr)
	}

	journalOutcome("generate", request, outcome)

	if !outcome.Succeeded {
		pretty.Exit(outcome.CommandExitCode(), "Generation of %q failed [%s]:\n%s", request.OutputFile(), outcome.Kind, outcome.Diagnostic)
	}
	keepDocument(request, flags.Keep, outcome)
	pretty.Highlight("Wrote %q in %s.", filepath.Join(request.Directory, request.OutputFile()), outcome.Elapsed.Round(time.Millisecond))
	pretty.Ok()
}

// journalOutcome posts one settled outcome to the run journal. Best
// effort: a journal problem never changes the outcome being journaled.
func journalOutcome(event string, request *sbom.Request, outcome *sbom.Outcome) {
	if !settings.Global.JournalEnabled() {
		return
	}
	detail := fmt.Sprintf("%s %s --output %s --format %s", outcome.Fingerprint, request.Directory, request.OutputFile(), request.Format.Flag)
	err := journal.Post(event, detail, "%s, exit %d, took %s", outcome.Kind, outcome.ExitCode, outcome.Elapsed.Round(time.Millisecond))
	if err != nil {
		pretty.DebugNote("Journal write failed, reason: %v", err)
	}
}

// keepDocument stores a successfully generated document into the local
// library when asked to, either by the --keep flag or by settings.
func keepDocument(request *sbom.Request, keep bool, outcome *sbom.Outcome) {
	if !outcome.Succeeded {
		return
	}
	if !keep && !settings.Global.KeepInLibrary() {
		return
	}
	document := filepath.Join(request.Directory, request.OutputFile())
	entry, err := library.Store(document, request.Format.Name)
	if err != nil {
		pretty.Warning("Could not keep %q in the library, reason: %v", document, err)
		return
	}
	pretty.Lowlight("Kept in library as %s.", entry.Digest[:16])
}
