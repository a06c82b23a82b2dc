package sbom_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/spdxbridge/sdg/hamlet"
	"github.com/spdxbridge/sdg/pathlib"
	"github.com/spdxbridge/sdg/sbom"
)

func mockDelegate(t *testing.T, script string) []string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("script based delegate mocks are unix only")
	}
	path := filepath.Join(t.TempDir(), "delegate.sh")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755)
	if err != nil {
		t.Fatal(err)
	}
	return []string{"/bin/sh", path}
}

func validRequest(t *testing.T) *sbom.Request {
	t.Helper()
	request, err := sbom.NewRequest("/tmp/proj", "proj-spdx", sbom.TagValue)
	if err != nil {
		t.Fatal(err)
	}
	return request
}

func TestCleanExitIsSuccess(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	command := mockDelegate(t, "exit 0")
	outcome, err := sbom.NewGenerator(command...).Generate(validRequest(t))
	must_be.Nil(err)
	must_be.True(outcome.Succeeded)
	must_be.Equal(sbom.KindSuccess, outcome.Kind)
	must_be.Equal("", outcome.Diagnostic)
	must_be.Equal(0, outcome.CommandExitCode())
	must_be.True(outcome.Elapsed > 0)
}

func TestStderrChatterDoesNotSpoilSuccess(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	command := mockDelegate(t, `echo "just a note" >&2; exit 0`)
	outcome, err := sbom.NewGenerator(command...).Generate(validRequest(t))
	must_be.Nil(err)
	must_be.True(outcome.Succeeded)
	must_be.Equal("", outcome.Diagnostic)
}

func TestFailingDelegateBecomesFailedOutcome(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	command := mockDelegate(t, `echo "error: invalid path" >&2; exit 1`)
	outcome, err := sbom.NewGenerator(command...).Generate(validRequest(t))
	must_be.Nil(err)
	wont_be.True(outcome.Succeeded)
	must_be.Equal(sbom.KindDelegateFailure, outcome.Kind)
	must_be.Contain("error: invalid path", outcome.Diagnostic)
	must_be.Equal(1, outcome.ExitCode)
	must_be.Equal(1, outcome.CommandExitCode())
}

func TestDelegateExitCodePropagates(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	command := mockDelegate(t, "exit 113")
	outcome, err := sbom.NewGenerator(command...).Generate(validRequest(t))
	must_be.Nil(err)
	wont_be.True(outcome.Succeeded)
	must_be.Equal(113, outcome.ExitCode)
	must_be.Equal(113, outcome.CommandExitCode())
}

func TestMissingExecutableIsSpawnFailureNotPanic(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	missing := filepath.Join(t.TempDir(), "no-such-delegate")
	outcome, err := sbom.NewGenerator(missing).Generate(validRequest(t))
	must_be.Nil(err)
	wont_be.Nil(outcome)
	wont_be.True(outcome.Succeeded)
	must_be.Equal(sbom.KindSpawnFailure, outcome.Kind)
	wont_be.Equal("", outcome.Diagnostic)
	must_be.Equal(2, outcome.CommandExitCode())
}

func TestValidationStopsBeforeAnySpawn(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	marker := filepath.Join(t.TempDir(), "spawned.marker")
	command := mockDelegate(t, "touch "+marker)

	broken := []*sbom.Request{
		nil,
		{Name: "proj-spdx", Format: sbom.TagValue},
		{Directory: "/tmp/proj", Format: sbom.TagValue},
		{Directory: "/tmp/proj", Name: "proj-spdx"},
	}
	for _, request := range broken {
		outcomes, err := sbom.NewGenerator(command...).Launch(request)
		wont_be.Nil(err)
		must_be.True(errors.Is(err, sbom.ErrInvalidRequest))
		must_be.Nil(outcomes)
	}
	must_be.Equal(false, pathlib.Exists(marker))
}

func TestGeneratorWithoutCommandIsRejected(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	outcomes, err := sbom.NewGenerator().Launch(validRequest(t))
	wont_be.Nil(err)
	must_be.True(errors.Is(err, sbom.ErrInvalidRequest))
	must_be.Nil(outcomes)
}

func TestArgumentVectorReachesTheDelegate(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	record := filepath.Join(t.TempDir(), "argv.txt")
	command := mockDelegate(t, `echo "$@" > `+record)
	outcome, err := sbom.NewGenerator(command...).Generate(validRequest(t))
	must_be.Nil(err)
	must_be.True(outcome.Succeeded)

	blob, err := os.ReadFile(record)
	must_be.Nil(err)
	must_be.Equal("/tmp/proj --output=proj-spdx.spdx --format=tv", strings.TrimSpace(string(blob)))
}

func TestWorkingDirectoryControlsWhereTheDocumentLands(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	where := t.TempDir()
	command := mockDelegate(t, "touch proj-spdx.spdx")
	outcome, err := sbom.NewGenerator(command...).WithWorkingDirectory(where).Generate(validRequest(t))
	must_be.Nil(err)
	must_be.True(outcome.Succeeded)
	must_be.True(pathlib.IsFile(filepath.Join(where, "proj-spdx.spdx")))
}

func TestOutcomeIsDeliveredExactlyOnce(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	command := mockDelegate(t, "exit 0")
	outcomes, err := sbom.NewGenerator(command...).Launch(validRequest(t))
	must_be.Nil(err)

	first, open := <-outcomes
	must_be.True(open)
	wont_be.Nil(first)

	second, open := <-outcomes
	must_be.Nil(second)
	must_be.Equal(false, open)
}

func TestConcurrentRunsDoNotInterfere(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	happy := mockDelegate(t, "exit 0")
	angry := mockDelegate(t, `echo "boom" >&2; exit 7`)

	left, err := sbom.NewRequest("/tmp/proj", "left", sbom.TagValue)
	must_be.Nil(err)
	right, err := sbom.NewRequest("/tmp/proj", "right", sbom.TagValue)
	must_be.Nil(err)

	leftOutcomes, err := sbom.NewGenerator(happy...).Launch(left)
	must_be.Nil(err)
	rightOutcomes, err := sbom.NewGenerator(angry...).Launch(right)
	must_be.Nil(err)

	leftOutcome := <-leftOutcomes
	rightOutcome := <-rightOutcomes

	must_be.True(leftOutcome.Succeeded)
	wont_be.True(rightOutcome.Succeeded)
	must_be.Equal(7, rightOutcome.ExitCode)
	must_be.Contain("boom", rightOutcome.Diagnostic)
	wont_be.Equal(leftOutcome.Fingerprint, rightOutcome.Fingerprint)
}

func TestTimeoutKillsSlowDelegate(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	command := mockDelegate(t, "sleep 30")
	watch := time.Now()
	outcome, err := sbom.NewGenerator(command...).WithTimeout(200 * time.Millisecond).Generate(validRequest(t))
	must_be.Nil(err)
	wont_be.True(outcome.Succeeded)
	must_be.Equal(sbom.KindTimeout, outcome.Kind)
	must_be.Equal(3, outcome.CommandExitCode())
	must_be.Contain("did not finish within", outcome.Diagnostic)
	must_be.True(time.Since(watch) < 10*time.Second)
}
