package operations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spdxbridge/sdg/hamlet"
	"github.com/spdxbridge/sdg/journal"
	"github.com/spdxbridge/sdg/library"
	"github.com/spdxbridge/sdg/pathlib"
	"github.com/spdxbridge/sdg/sbom"
	"github.com/spdxbridge/sdg/settings"
	"github.com/spdxbridge/sdg/xviper"
)

func freshHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("SDG_HOME", home)
	settings.Reset()
	xviper.Reset()
	t.Cleanup(settings.Reset)
	t.Cleanup(xviper.Reset)
	return home
}

func settledRequest(t *testing.T) (*sbom.Request, *sbom.Outcome) {
	t.Helper()
	directory := t.TempDir()
	request, err := sbom.NewRequest(directory, "proj-spdx", sbom.TagValue)
	if err != nil {
		t.Fatal(err)
	}
	document := filepath.Join(directory, request.OutputFile())
	err = os.WriteFile(document, []byte("SPDXVersion: SPDX-2.2\nDataLicense: CC0-1.0\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	outcome := &sbom.Outcome{
		Succeeded:   true,
		Kind:        sbom.KindSuccess,
		Fingerprint: request.Fingerprint(),
	}
	return request, outcome
}

func TestJournalOutcomeWritesOneEvent(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	freshHome(t)
	request, outcome := settledRequest(t)

	journalOutcome("generate", request, outcome)

	events, err := journal.Events()
	must_be.Nil(err)
	must_be.Equal(1, len(events))
	must_be.Equal("generate", events[0].Event)
	must_be.Contain(outcome.Fingerprint, events[0].Detail)
	must_be.Contain(request.Directory, events[0].Detail)
	must_be.Contain("--format tv", events[0].Detail)
	must_be.Contain("success, exit 0", events[0].Comment)
}

func TestDisabledJournalStaysEmpty(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	home := freshHome(t)
	content := []byte("profile:\n  journal: false\n")
	must_be.Nil(pathlib.WriteFile(filepath.Join(home, "settings.yaml"), content, 0o640))
	settings.Reset()

	request, outcome := settledRequest(t)
	journalOutcome("generate", request, outcome)

	events, err := journal.Events()
	must_be.Nil(err)
	must_be.Equal(0, len(events))
}

func TestKeepDocumentHonorsTheFlag(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	freshHome(t)
	request, outcome := settledRequest(t)

	keepDocument(request, false, outcome)
	entries, err := library.Entries()
	must_be.Nil(err)
	must_be.Equal(0, len(entries))

	keepDocument(request, true, outcome)
	entries, err = library.Entries()
	must_be.Nil(err)
	must_be.Equal(1, len(entries))
	must_be.Equal("proj-spdx.spdx", entries[0].Name)
	must_be.Equal("tag-value", entries[0].Format)
}

func TestKeepDocumentIgnoresFailedOutcomes(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	freshHome(t)
	request, _ := settledRequest(t)
	failed := &sbom.Outcome{Kind: sbom.KindDelegateFailure, ExitCode: 1}

	keepDocument(request, true, failed)

	entries, err := library.Entries()
	must_be.Nil(err)
	must_be.Equal(0, len(entries))
}

func TestKeepInLibrarySettingKeepsWithoutTheFlag(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	home := freshHome(t)
	content := []byte("profile:\n  keep-in-library: true\n")
	must_be.Nil(pathlib.WriteFile(filepath.Join(home, "settings.yaml"), content, 0o640))
	settings.Reset()

	request, outcome := settledRequest(t)
	keepDocument(request, false, outcome)

	entries, err := library.Entries()
	must_be.Nil(err)
	must_be.Equal(1, len(entries))
}

func TestDefaultFormatPrefersPersistedOverride(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	home := freshHome(t)
	must_be.Equal("tag-value", DefaultFormat())

	content := []byte("profile:\n  format: rdf\n")
	must_be.Nil(pathlib.WriteFile(filepath.Join(home, "settings.yaml"), content, 0o640))
	settings.Reset()
	must_be.Equal("rdf", DefaultFormat())

	xviper.Set(FormatConfigKey, "tag-value")
	must_be.Equal("tag-value", DefaultFormat())

	xviper.Set(FormatConfigKey, "")
	must_be.Equal("rdf", DefaultFormat())
}

func TestCountSettledTreatsMissingOutcomeAsFailed(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	good, bad := countSettled([]*sbom.Outcome{
		{Succeeded: true, Kind: sbom.KindSuccess},
		nil,
		{Kind: sbom.KindDelegateFailure, ExitCode: 1},
	})
	must_be.Equal(1, good)
	must_be.Equal(2, bad)
}
