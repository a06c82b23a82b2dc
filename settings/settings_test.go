package settings_test

import (
	"path/filepath"
	"testing"

	"github.com/spdxbridge/sdg/hamlet"
	"github.com/spdxbridge/sdg/pathlib"
	"github.com/spdxbridge/sdg/settings"
)

func freshHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("SDG_HOME", home)
	settings.Reset()
	t.Cleanup(settings.Reset)
	return home
}

func TestThatDefaultValuesAreVisible(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	freshHome(t)

	sut, err := settings.SummonSettings()
	must_be.Nil(err)
	wont_be.Nil(sut)

	must_be.Equal("sdg", settings.Global.Name())
	must_be.Equal("tag-value", settings.Global.DefaultFormat())
	must_be.Equal("--version", settings.Global.GeneratorVersionCommand())
	must_be.True(settings.Global.JournalEnabled())
	must_be.Equal(false, settings.Global.KeepInLibrary())

	must_be.Equal("", settings.Global.GeneratorCommand())
	must_be.Equal("", settings.Global.DownloadURL())
	must_be.Equal("", settings.Global.DownloadDigest())
	must_be.Equal("", settings.Global.HttpProxy())
	must_be.Equal("", settings.Global.HttpsProxy())
	must_be.Equal("", settings.Global.NoProxy())
	must_be.Equal(0, len(settings.Global.PassthroughEnvironment()))
}

func TestCustomFileOverlaysDefaults(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	home := freshHome(t)
	content := []byte(`
generator:
  command: "python3 /opt/tools/spdx-doc-generator.pyz"
  minimum-version: "1.2.0"
profile:
  keep-in-library: true
environment:
  passthrough:
    - "SPDX_LICENSE_DIR=/opt/licenses"
`)
	must_be.Nil(pathlib.WriteFile(filepath.Join(home, "settings.yaml"), content, 0o640))
	settings.Reset()

	must_be.Equal("python3 /opt/tools/spdx-doc-generator.pyz", settings.Global.GeneratorCommand())
	must_be.Equal("1.2.0", settings.Global.GeneratorMinimumVersion())
	must_be.True(settings.Global.KeepInLibrary())
	must_be.Equal([]string{"SPDX_LICENSE_DIR=/opt/licenses"}, settings.Global.PassthroughEnvironment())

	// untouched sections still answer with defaults
	must_be.Equal("tag-value", settings.Global.DefaultFormat())
	must_be.Equal("--version", settings.Global.GeneratorVersionCommand())
	must_be.True(settings.Global.JournalEnabled())
}

func TestSettingsSurviveYamlRoundTrip(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	freshHome(t)

	original, err := settings.SummonSettings()
	must_be.Nil(err)
	original.Generator.Command = "pipx run spdx-doc-generator"
	original.Profile.Format = "rdf"

	content, err := original.AsYaml()
	must_be.Nil(err)
	wont_be.Equal(0, len(content))

	parsed, err := settings.FromBytes(content)
	must_be.Nil(err)
	must_be.Equal("pipx run spdx-doc-generator", parsed.Generator.Command)
	must_be.Equal("rdf", parsed.Profile.Format)
}

func TestSaveSettingsPersistsAndResets(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	home := freshHome(t)

	sut, err := settings.SummonSettings()
	must_be.Nil(err)
	sut.Generator.Command = "python3 generator.pyz"
	must_be.Nil(settings.SaveSettings(sut))

	must_be.True(pathlib.IsFile(filepath.Join(home, "settings.yaml")))
	must_be.Equal("python3 generator.pyz", settings.Global.GeneratorCommand())
}

func TestBrokenYamlIsAnError(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	home := freshHome(t)
	must_be.Nil(pathlib.WriteFile(filepath.Join(home, "settings.yaml"), []byte(":::"), 0o640))
	settings.Reset()

	sut, err := settings.SummonSettings()
	wont_be.Nil(err)
	must_be.Nil(sut)
}

func TestConfiguredTransportCarriesProxy(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	home := freshHome(t)
	content := []byte(`
proxies:
  https-proxy: "http://proxy.example.com:8080"
`)
	must_be.Nil(pathlib.WriteFile(filepath.Join(home, "settings.yaml"), content, 0o640))
	settings.Reset()

	transport := settings.Global.ConfiguredHttpTransport()
	wont_be.Nil(transport)
	wont_be.Nil(transport.Proxy)
	must_be.Equal("http://proxy.example.com:8080", settings.Global.HttpsProxy())
}
