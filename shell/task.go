package shell

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"time"

	"github.com/google/shlex"
	"github.com/spdxbridge/sdg/common"
)

var (
	// Interrupted tells whether a SIGINT arrived while a task wrapped in
	// WithInterrupt was running.
	Interrupted = false
)

// Split breaks a command line string into argument tokens with shell-like
// quoting rules, without ever invoking a shell.
func Split(commandline string) ([]string, error) {
	return shlex.Split(commandline)
}

type Task struct {
	environment []string
	directory   string
	executable  string
	args        []string
	timeout     time.Duration
}

func New(environment []string, directory string, task ...string) *Task {
	executable, args := task[0], task[1:]
	return &Task{
		environment: environment,
		directory:   directory,
		executable:  executable,
		args:        args,
	}
}

// WithTimeout makes the task kill its process once the given duration has
// passed. Zero means wait forever.
func (it *Task) WithTimeout(timeout time.Duration) *Task {
	it.timeout = timeout
	return it
}

func (it *Task) execute(stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	common.Trace("Running command %q with arguments %q", it.executable, it.args)
	command := exec.Command(it.executable, it.args...)
	command.Env = it.environment
	command.Dir = it.directory
	command.Stdin = stdin
	command.Stdout = stdout
	command.Stderr = stderr
	err := command.Start()
	if err != nil {
		return -500, err
	}
	common.Debug("PID #%d is %q.", command.Process.Pid, command)
	defer func() {
		common.Debug("PID #%d finished: %v.", command.Process.Pid, command.ProcessState)
	}()
	var expired *time.Timer
	if it.timeout > 0 {
		expired = time.AfterFunc(it.timeout, func() {
			common.Debug("PID #%d passed its %v deadline, killing it.", command.Process.Pid, it.timeout)
			command.Process.Kill()
		})
	}
	err = command.Wait()
	if expired != nil {
		expired.Stop()
	}
	exit, ok := err.(*exec.ExitError)
	if ok {
		return exit.ExitCode(), err
	}
	if err != nil {
		return -500, err
	}
	return 0, nil
}

// Execute runs the task against the callers stdio. Non-interactive runs
// get an empty stdin, so tools that probe for input terminate instead of
// hanging.
func (it *Task) Execute(interactive bool) (int, error) {
	var stdin io.Reader = os.Stdin
	if !interactive {
		stdin = bytes.NewReader(nil)
	}
	return it.execute(stdin, os.Stdout, os.Stderr)
}

// Observed mirrors both output streams into the given sink in addition to
// the callers stdio.
func (it *Task) Observed(sink io.Writer, interactive bool) (int, error) {
	var stdin io.Reader = os.Stdin
	if !interactive {
		stdin = bytes.NewReader(nil)
	}
	return it.execute(stdin, io.MultiWriter(os.Stdout, sink), io.MultiWriter(os.Stderr, sink))
}

// CaptureOutput runs the task and returns what it printed to stdout.
func (it *Task) CaptureOutput() (string, int, error) {
	stdout := bytes.Buffer{}
	code, err := it.execute(bytes.NewReader(nil), &stdout, os.Stderr)
	return stdout.String(), code, err
}

// WithInterrupt runs the task while keeping the parent process alive over
// SIGINT, so that a child process receiving the same signal gets reported
// instead of this process just vanishing mid-flight.
func WithInterrupt(task func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)
	defer signal.Stop(signals)
	go func() {
		got, ok := <-signals
		if ok {
			Interrupted = true
			common.Debug("Signal %v noted, letting the child finish its exit dance.", got)
		}
	}()
	task()
}
