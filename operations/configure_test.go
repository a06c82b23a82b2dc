package operations

import (
	"path/filepath"
	"testing"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/hamlet"
	"github.com/spdxbridge/sdg/pathlib"
	"github.com/spdxbridge/sdg/settings"
)

func TestImportSettingsInstallsLocalFile(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	freshHome(t)
	source := filepath.Join(t.TempDir(), "incoming.yaml")
	content := []byte("profile:\n  format: rdf\n  journal: false\n")
	must_be.Nil(pathlib.WriteFile(source, content, 0o640))

	must_be.Nil(ImportSettings(source))
	must_be.True(pathlib.IsFile(common.Product.SettingsFile()))
	must_be.Equal("rdf", settings.Global.DefaultFormat())
	must_be.Equal(false, settings.Global.JournalEnabled())
}

func TestImportSettingsAcceptsFileScheme(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	freshHome(t)
	source := filepath.Join(t.TempDir(), "incoming.yaml")
	content := []byte("generator:\n  command: python3 custom.pyz\n")
	must_be.Nil(pathlib.WriteFile(source, content, 0o640))

	must_be.Nil(ImportSettings("file://" + source))
	must_be.Equal("python3 custom.pyz", settings.Global.GeneratorCommand())
}

func TestImportSettingsRejectsBrokenContent(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	freshHome(t)
	source := filepath.Join(t.TempDir(), "broken.yaml")
	must_be.Nil(pathlib.WriteFile(source, []byte(":\tnot yaml at all\n"), 0o640))

	err := ImportSettings(source)
	wont_be.Nil(err)
	must_be.Equal(false, pathlib.IsFile(common.Product.SettingsFile()))
}

func TestImportSettingsRejectsMissingSource(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	freshHome(t)
	err := ImportSettings(filepath.Join(t.TempDir(), "no-such.yaml"))
	wont_be.Nil(err)
	must_be.Equal(false, pathlib.IsFile(common.Product.SettingsFile()))
}
