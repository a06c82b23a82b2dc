package delegate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spdxbridge/sdg/delegate"
	"github.com/spdxbridge/sdg/hamlet"
)

func TestAsVersionFoldsNumbers(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	number, text := delegate.AsVersion("1.2.3")
	must_be.Equal(uint64(1002003), number)
	must_be.Equal("1.2.3", text)

	number, _ = delegate.AsVersion("2.0")
	must_be.Equal(uint64(2000000), number)

	number, _ = delegate.AsVersion("11")
	must_be.Equal(uint64(11000000), number)
}

func TestAsVersionReadsToolBanner(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	number, text := delegate.AsVersion("spdx-doc-generator 0.8.2\nsome extra noise")
	must_be.Equal(uint64(8002), number)
	must_be.Equal("0.8.2", text)

	number, text = delegate.AsVersion("v1.4.0")
	must_be.Equal(uint64(1004000), number)
	must_be.Equal("1.4.0", text)
}

func TestAsVersionStopsAtGarbage(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	number, _ := delegate.AsVersion("1.2.3rc1")
	must_be.Equal(uint64(1002000), number)

	number, _ = delegate.AsVersion("nonsense")
	must_be.Equal(uint64(0), number)

	number, _ = delegate.AsVersion("")
	must_be.Equal(uint64(0), number)
}

func TestVersionOrderingMatchesIntuition(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	older, _ := delegate.AsVersion("0.9.11")
	newer, _ := delegate.AsVersion("0.10.2")
	must_be.True(older < newer)

	patch, _ := delegate.AsVersion("1.0.1")
	minor, _ := delegate.AsVersion("1.1.0")
	must_be.True(patch < minor)
}

func TestQueryVersionFromScript(t *testing.T) {
	if delegate.IsWindows() {
		t.Skip("Needs a POSIX shell.")
	}
	must_be, _ := hamlet.Specifications(t)

	freshHome(t)
	script := filepath.Join(t.TempDir(), "generator.sh")
	body := "#!/bin/sh\necho \"mock-generator 9.9.9\"\n"
	must_be.Nil(os.WriteFile(script, []byte(body), 0o755))

	version, err := delegate.QueryVersion([]string{"/bin/sh", script})
	must_be.Nil(err)
	must_be.Equal("9.9.9", version)
}

func TestQueryVersionRejectsAngryProbe(t *testing.T) {
	if delegate.IsWindows() {
		t.Skip("Needs a POSIX shell.")
	}
	_, wont_be := hamlet.Specifications(t)

	freshHome(t)
	script := filepath.Join(t.TempDir(), "generator.sh")
	body := "#!/bin/sh\nexit 3\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := delegate.QueryVersion([]string{"/bin/sh", script})
	wont_be.Nil(err)
}

func TestQueryVersionNeedsACommand(t *testing.T) {
	_, wont_be := hamlet.Specifications(t)

	_, err := delegate.QueryVersion(nil)
	wont_be.Nil(err)
}
