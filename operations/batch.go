package operations

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spdxbridge/sdg/anywork"
	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/dashcore"
	"github.com/spdxbridge/sdg/delegate"
	"github.com/spdxbridge/sdg/pretty"
	"github.com/spdxbridge/sdg/sbom"
	"github.com/spdxbridge/sdg/shell"
)

// BatchFlags carries the batch specific knobs on top of the shared
// generation flags.
type BatchFlags struct {
	GenerateFlags
	Suffix  string
	Workers int
}

// BatchRequests builds one generation request per target directory. The
// output name is the directory's base name plus the optional suffix, so
// directory "projects/alpha" with suffix "-sbom" asks for "alpha-sbom.spdx".
func BatchRequests(directories []string, suffix string, format sbom.Format) ([]*sbom.Request, error) {
	requests := make([]*sbom.Request, 0, len(directories))
	for _, directory := range directories {
		name := filepath.Base(filepath.Clean(directory)) + suffix
		request, err := sbom.NewRequest(directory, name, format)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, nil
}

// WorkerCount clamps the requested worker count: zero or less asks for the
// machine default, and more workers than requests is just waste.
func WorkerCount(requested, requests int) int {
	workers := requested
	if workers < 1 {
		workers = common.OptimalWorkerCount()
	}
	if workers > requests {
		workers = requests
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// RunBatch generates one document per request through a bounded worker
// pool. A failing request never stops the others; after every request has
// settled the command fails if any of them did.
func RunBatch(requests []*sbom.Request, flags *BatchFlags) {
	pretty.Guard(len(requests) > 0, 1, "Nothing to do, no target directories given.")

	command := ResolveGenerator(flags.Generator)
	environment := delegate.Environment()
	workers := WorkerCount(flags.Workers, len(requests))
	common.Debug("Batch of %d requests over %d workers.", len(requests), workers)
	common.TimelineBegin("batch of %d requests, %d workers", len(requests), workers)
	defer common.TimelineEnd()

	names := make([]string, len(requests))
	for at, request := range requests {
		names[at] = request.OutputFile()
	}
	dashboard := pretty.NewBatchDashboard(names)
	dashboard.Start()

	pipe := WatchChildren(os.Getpid(), watcherPeriod)

	outcomes := make([]*sbom.Outcome, len(requests))
	pool := anywork.NewPool(workers)
	shell.WithInterrupt(func() {
		for at, request := range requests {
			pool.Backlog(generationWork(at, request, command, environment, flags, outcomes, dashboard))
		}
		err := pool.Sync()
		if err != nil {
			pretty.Warning("%v", err)
		}
	})
	pool.Close()

	seen, ok := <-pipe
	suberr := SubprocessWarning(seen, ok)
	if suberr != nil {
		pretty.Warning("Problem with subprocess warnings, reason: %v", suberr)
	}

	good, bad := countSettled(outcomes)
	dashboard.Stop(bad == 0)
	batchSummary(requests, outcomes, good, bad)
	common.Timeline("batch done, %d ok, %d failed", good, bad)
	pretty.Guard(bad == 0, 4, "%d out of %d generations failed!", bad, len(requests))
	pretty.Ok()
}

// generationWork wraps one request into a pool work item. All failure
// modes end up as outcomes; nothing here stops the other workers.
func generationWork(at int, request *sbom.Request, command, environment []string, flags *BatchFlags, outcomes []*sbom.Outcome, dashboard pretty.Dashboard) anywork.Work {
	return func() {
		dashboard.SetStep(at, pretty.StepRunning, "generating")
		generator := sbom.NewGenerator(command...).
			WithWorkingDirectory(request.Directory).
			WithEnvironment(environment).
			WithTimeout(flags.Timeout)
		outcome, err := generator.Generate(request)
		if err != nil {
			outcome = &sbom.Outcome{Kind: sbom.KindInvalid, Diagnostic: err.Error()}
		}
		outcomes[at] = outcome
		journalOutcome("batch", request, outcome)
		keepDocument(request, flags.Keep, outcome)
		if outcome.Succeeded {
			dashboard.SetStep(at, pretty.StepComplete, "done in "+outcome.Elapsed.Round(time.Millisecond).String())
		} else {
			dashboard.SetStep(at, pretty.StepFailed, string(outcome.Kind))
		}
		reportSettled(at, request, outcome)
	}
}

// reportSettled prints the plain one liner for environments where the
// live dashboard is not rendering.
func reportSettled(at int, request *sbom.Request, outcome *sbom.Outcome) {
	if dashcore.IsDashboardActive() {
		return
	}
	if outcome.Succeeded {
		pretty.Highlight("#%d %s: ok in %s", at+1, request.OutputFile(), outcome.Elapsed.Round(time.Millisecond))
		return
	}
	pretty.Warning("#%d %s: %s (exit %d)", at+1, request.OutputFile(), outcome.Kind, outcome.ExitCode)
}

func countSettled(outcomes []*sbom.Outcome) (good, bad int) {
	for _, outcome := range outcomes {
		switch {
		case outcome == nil:
			bad++
		case outcome.Succeeded:
			good++
		default:
			bad++
		}
	}
	return good, bad
}

func batchSummary(requests []*sbom.Request, outcomes []*sbom.Outcome, good, bad int) {
	common.Log("----  batch summary  ----")
	for at, request := range requests {
		outcome := outcomes[at]
		switch {
		case outcome == nil:
			pretty.Warning("#%d %s: never settled!", at+1, request.OutputFile())
		case outcome.Succeeded:
			common.Log("#%d %s: ok in %s", at+1, request.OutputFile(), outcome.Elapsed.Round(time.Millisecond))
		default:
			pretty.Warning("#%d %s: %s (exit %d)", at+1, request.OutputFile(), outcome.Kind, outcome.ExitCode)
		}
	}
	common.Log("----  %d ok, %d failed, %d total  ----", good, bad, len(requests))
}
