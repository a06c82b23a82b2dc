package delegate_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spdxbridge/sdg/delegate"
	"github.com/spdxbridge/sdg/hamlet"
	"github.com/spdxbridge/sdg/pathlib"
	"github.com/spdxbridge/sdg/settings"
)

func hasPair(env []string, pair string) bool {
	for _, candidate := range env {
		if candidate == pair {
			return true
		}
	}
	return false
}

func hasName(env []string, name string) bool {
	for _, candidate := range env {
		if strings.HasPrefix(candidate, name+"=") {
			return true
		}
	}
	return false
}

func TestPythonNoiseIsDropped(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	freshHome(t)
	t.Setenv("PYTHONPATH", "/somewhere/noisy")
	t.Setenv("PYTHONHOME", "/somewhere/else")

	env := delegate.Environment()
	wont_be.True(hasName(env, "PYTHONPATH"))
	wont_be.True(hasName(env, "PYTHONHOME"))
	must_be.True(hasPair(env, "PYTHONUNBUFFERED=1"))
}

func TestPassthroughNameKeepsNoiseVariable(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	home := freshHome(t)
	content := []byte("environment:\n  passthrough:\n    - PYTHONPATH\n")
	must_be.Nil(pathlib.WriteFile(filepath.Join(home, "settings.yaml"), content, 0o640))
	settings.Reset()
	t.Setenv("PYTHONPATH", "/kept/on/purpose")

	env := delegate.Environment()
	must_be.True(hasPair(env, "PYTHONPATH=/kept/on/purpose"))
}

func TestPassthroughPairIsAppendedVerbatim(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	home := freshHome(t)
	content := []byte("environment:\n  passthrough:\n    - \"SPDX_LICENSE_DIR=/opt/licenses\"\n")
	must_be.Nil(pathlib.WriteFile(filepath.Join(home, "settings.yaml"), content, 0o640))
	settings.Reset()

	env := delegate.Environment()
	must_be.True(hasPair(env, "SPDX_LICENSE_DIR=/opt/licenses"))
}

func TestProxySettingsReachTheChild(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	home := freshHome(t)
	content := []byte(`
proxies:
  http-proxy: "http://proxy.example.com:3128"
  no-proxy: "localhost,127.0.0.1"
`)
	must_be.Nil(pathlib.WriteFile(filepath.Join(home, "settings.yaml"), content, 0o640))
	settings.Reset()

	env := delegate.Environment()
	must_be.True(hasPair(env, "HTTP_PROXY=http://proxy.example.com:3128"))
	must_be.True(hasPair(env, "NO_PROXY=localhost,127.0.0.1"))
}
