package sbom

import (
	"time"
)

// OutcomeKind classifies what actually happened to one invocation. The
// two-case contract of Outcome.Succeeded is what callers branch on; the
// kind adds detail for journals, summaries, and exit codes.
type OutcomeKind string

const (
	KindSuccess         OutcomeKind = "success"
	KindInvalid         OutcomeKind = "invalid"
	KindSpawnFailure    OutcomeKind = "spawn-failure"
	KindDelegateFailure OutcomeKind = "delegate-failure"
	KindTimeout         OutcomeKind = "timeout"
)

// Outcome is the single result value of one delegate invocation. It is
// delivered exactly once per launch, always after the child process has
// settled, and is never retried automatically.
type Outcome struct {
	Succeeded   bool
	Kind        OutcomeKind
	Diagnostic  string
	ExitCode    int
	Elapsed     time.Duration
	Fingerprint string
}

// CommandExitCode maps an outcome to the exit code this process should
// report to its own shell: zero on success, the delegate's own code when
// it failed with one, and fixed codes for bridge level failures.
func (it *Outcome) CommandExitCode() int {
	switch it.Kind {
	case KindSuccess:
		return 0
	case KindInvalid:
		return 1
	case KindSpawnFailure:
		return 2
	case KindTimeout:
		return 3
	default:
		if it.ExitCode > 0 {
			return it.ExitCode
		}
		return 1
	}
}

func successOutcome(elapsed time.Duration, fingerprint string) *Outcome {
	return &Outcome{
		Succeeded:   true,
		Kind:        KindSuccess,
		Elapsed:     elapsed,
		Fingerprint: fingerprint,
	}
}

func spawnFailure(diagnostic string, elapsed time.Duration, fingerprint string) *Outcome {
	return &Outcome{
		Kind:        KindSpawnFailure,
		Diagnostic:  diagnostic,
		ExitCode:    -1,
		Elapsed:     elapsed,
		Fingerprint: fingerprint,
	}
}

func delegateFailure(code int, diagnostic string, elapsed time.Duration, fingerprint string) *Outcome {
	return &Outcome{
		Kind:        KindDelegateFailure,
		Diagnostic:  diagnostic,
		ExitCode:    code,
		Elapsed:     elapsed,
		Fingerprint: fingerprint,
	}
}

func timeoutOutcome(limit time.Duration, diagnostic string, elapsed time.Duration, fingerprint string) *Outcome {
	detail := "delegate did not finish within " + limit.String()
	if len(diagnostic) > 0 {
		detail += "\n" + diagnostic
	}
	return &Outcome{
		Kind:        KindTimeout,
		Diagnostic:  detail,
		ExitCode:    -1,
		Elapsed:     elapsed,
		Fingerprint: fingerprint,
	}
}
