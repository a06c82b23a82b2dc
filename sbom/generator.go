package sbom

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/logbuf"
)

// diagnosticTail bounds how many trailing stderr lines one outcome can
// carry. The delegate may chatter a lot; the end is what explains failures.
const diagnosticTail = 40

// Generator launches the delegate generator for one request at a time.
// One Launch call owns exactly one child process and delivers exactly one
// Outcome for it. The zero value is not usable; construct with NewGenerator
// and the resolved delegate command.
type Generator struct {
	command     []string
	directory   string
	environment []string
	timeout     time.Duration
	showOutput  bool
}

func NewGenerator(command ...string) *Generator {
	return &Generator{
		command: append([]string{}, command...),
	}
}

// WithWorkingDirectory sets where the child runs and so where the delegate
// writes the output document. Empty means the current working directory.
func (it *Generator) WithWorkingDirectory(directory string) *Generator {
	it.directory = directory
	return it
}

// WithEnvironment replaces the child environment. Nil inherits this
// process's environment unchanged.
func (it *Generator) WithEnvironment(environment []string) *Generator {
	it.environment = environment
	return it
}

// WithTimeout bounds the wait for the delegate. On expiry the child (and
// on unix, its whole process group) is killed and a timeout kind outcome
// is delivered. Zero means wait forever.
func (it *Generator) WithTimeout(timeout time.Duration) *Generator {
	it.timeout = timeout
	return it
}

// ShowOutput forwards delegate stdout to this process's stdout. Stderr is
// always mirrored (unless silenced) since that is where delegates explain
// themselves.
func (it *Generator) ShowOutput(show bool) *Generator {
	it.showOutput = show
	return it
}

// Launch spawns the delegate for the given request and returns immediately.
// The returned channel delivers exactly one Outcome, strictly after the
// child process has settled, and is closed after that single delivery.
//
// Only a malformed request (or a missing generator command) is an error
// here. Spawn failures are delivered as failed outcomes, so batch callers
// can treat every launched request uniformly.
func (it *Generator) Launch(request *Request) (<-chan *Outcome, error) {
	if len(it.command) == 0 {
		return nil, fmt.Errorf("%w: generator command is required", ErrInvalidRequest)
	}
	if request == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidRequest)
	}
	if err := request.validate(); err != nil {
		return nil, err
	}

	fingerprint := request.Fingerprint()
	watch := common.Stopwatch("Delegate run %s", fingerprint)
	outcomes := make(chan *Outcome, 1)

	argv := common.NewCommander(it.command...).More(request.Arguments()...).CLI()
	common.Debug("Delegate command for %s is %q.", fingerprint, argv)
	common.Timeline("delegate launch %s", fingerprint)

	command := exec.Command(argv[0], argv[1:]...)
	command.Dir = it.directory
	command.Env = it.environment
	command.Stdin = bytes.NewReader(nil)

	tail := logbuf.NewLogBuffer(diagnosticTail)
	var mirror io.Writer
	if !common.Silent() {
		mirror = os.Stderr
	}
	stderr := logbuf.NewLineWriter(mirror, tail, "")
	command.Stderr = stderr
	if it.showOutput || common.DebugFlag() {
		command.Stdout = os.Stdout
	}
	setProcessGroup(command)

	err := command.Start()
	if err != nil {
		common.Debug("Delegate for %s failed to start: %v", fingerprint, err)
		outcomes <- spawnFailure(err.Error(), time.Duration(watch.Elapsed()), fingerprint)
		close(outcomes)
		return outcomes, nil
	}
	common.Debug("PID #%d is the delegate for %s.", command.Process.Pid, fingerprint)

	var timedOut atomic.Bool
	var expired *time.Timer
	if it.timeout > 0 {
		limit := it.timeout
		expired = time.AfterFunc(limit, func() {
			timedOut.Store(true)
			common.Debug("PID #%d passed its %v deadline, killing it.", command.Process.Pid, limit)
			killProcess(command)
		})
	}

	go func() {
		err := command.Wait()
		if expired != nil {
			expired.Stop()
		}
		stderr.Flush()

		elapsed := time.Duration(watch.Elapsed())
		diagnostic := strings.Join(tail.Tail(diagnosticTail), "\n")

		var outcome *Outcome
		switch {
		case timedOut.Load():
			outcome = timeoutOutcome(it.timeout, diagnostic, elapsed, fingerprint)
		case err == nil:
			outcome = successOutcome(elapsed, fingerprint)
		default:
			code := -1
			if exit, ok := err.(*exec.ExitError); ok {
				code = exit.ExitCode()
			}
			if len(diagnostic) == 0 {
				diagnostic = err.Error()
			}
			outcome = delegateFailure(code, diagnostic, elapsed, fingerprint)
		}

		common.Debug("PID #%d settled: %s after %v.", command.Process.Pid, outcome.Kind, elapsed)
		common.Timeline("delegate settled %s (%s)", fingerprint, outcome.Kind)
		outcomes <- outcome
		close(outcomes)
	}()

	return outcomes, nil
}

// Generate is the synchronous form of Launch: it waits for the single
// outcome and returns it.
func (it *Generator) Generate(request *Request) (*Outcome, error) {
	outcomes, err := it.Launch(request)
	if err != nil {
		return nil, err
	}
	return <-outcomes, nil
}
