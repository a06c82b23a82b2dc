package shell_test

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/spdxbridge/sdg/hamlet"
	"github.com/spdxbridge/sdg/shell"
)

func TestSplitFollowsQuotingRules(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	parts, err := shell.Split(`python3 "/opt/spdx tools/generator.pyz" --fast`)
	must_be.Nil(err)
	must_be.Equal([]string{"python3", "/opt/spdx tools/generator.pyz", "--fast"}, parts)

	parts, err = shell.Split("")
	must_be.Nil(err)
	must_be.Equal(0, len(parts))

	_, err = shell.Split(`broken "quote`)
	wont_be.Nil(err)
}

func TestCaptureOutputReturnsStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a unix userland")
	}
	must_be, _ := hamlet.Specifications(t)

	task := shell.New(nil, ".", "/bin/sh", "-c", "echo hello world")
	out, code, err := task.CaptureOutput()
	must_be.Nil(err)
	must_be.Equal(0, code)
	must_be.Equal("hello world", strings.TrimSpace(out))
}

func TestExitCodesSurviveTheTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a unix userland")
	}
	must_be, wont_be := hamlet.Specifications(t)

	task := shell.New(nil, ".", "/bin/sh", "-c", "exit 3")
	code, err := task.Execute(false)
	wont_be.Nil(err)
	must_be.Equal(3, code)
}

func TestMissingExecutableIsSpawnError(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	task := shell.New(nil, ".", "/definitely/not/there")
	code, err := task.Execute(false)
	wont_be.Nil(err)
	must_be.Equal(-500, code)
}

func TestTimeoutKillsLongRunningTask(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a unix userland")
	}
	must_be, wont_be := hamlet.Specifications(t)

	mark := time.Now()
	task := shell.New(nil, ".", "/bin/sh", "-c", "sleep 30").WithTimeout(200 * time.Millisecond)
	_, err := task.Execute(false)
	wont_be.Nil(err)
	must_be.True(time.Since(mark) < 10*time.Second)
}
