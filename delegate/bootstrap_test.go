package delegate_test

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/spdxbridge/sdg/delegate"
	"github.com/spdxbridge/sdg/hamlet"
	"github.com/spdxbridge/sdg/pathlib"
	"github.com/spdxbridge/sdg/settings"
)

const archiveBody = "#!/usr/bin/env python3\n# placeholder archive for download tests\n"

func archiveServer(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		fmt.Fprint(w, archiveBody)
	}))
	t.Cleanup(server.Close)
	return server
}

func downloadSettings(t *testing.T, home, url, digest string) {
	t.Helper()
	content := fmt.Sprintf("downloads:\n  generator: %q\n  sha256: %q\n", url, digest)
	if err := pathlib.WriteFile(filepath.Join(home, "settings.yaml"), []byte(content), 0o640); err != nil {
		t.Fatal(err)
	}
	settings.Reset()
}

func TestBootstrapInstallsVerifiedArchive(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	home := freshHome(t)
	var hits int64
	server := archiveServer(t, &hits)
	digest := fmt.Sprintf("%02x", sha256.Sum256([]byte(archiveBody)))
	downloadSettings(t, home, server.URL, digest)

	must_be.Nil(delegate.Bootstrap(false))
	must_be.Equal(int64(1), atomic.LoadInt64(&hits))
	must_be.True(delegate.HasGenerator())

	stat, err := os.Stat(delegate.InstalledGenerator())
	must_be.Nil(err)
	must_be.Equal(int64(len(archiveBody)), stat.Size())
}

func TestBootstrapRejectsDigestMismatch(t *testing.T) {
	_, wont_be := hamlet.Specifications(t)

	home := freshHome(t)
	var hits int64
	server := archiveServer(t, &hits)
	downloadSettings(t, home, server.URL, "00000000deadbeef00000000deadbeef00000000deadbeef00000000deadbeef")

	err := delegate.Bootstrap(false)
	wont_be.Nil(err)
	wont_be.True(delegate.HasGenerator())
}

func TestBootstrapLeavesExistingInstallAlone(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	home := freshHome(t)
	var hits int64
	server := archiveServer(t, &hits)
	digest := fmt.Sprintf("%02x", sha256.Sum256([]byte(archiveBody)))
	downloadSettings(t, home, server.URL, digest)

	installed := delegate.InstalledGenerator()
	must_be.Nil(os.MkdirAll(filepath.Dir(installed), 0o755))
	must_be.Nil(os.WriteFile(installed, []byte("already here"), 0o755))

	must_be.Nil(delegate.Bootstrap(false))
	must_be.Equal(int64(0), atomic.LoadInt64(&hits))
}

func TestBootstrapForceReinstalls(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	home := freshHome(t)
	var hits int64
	server := archiveServer(t, &hits)
	digest := fmt.Sprintf("%02x", sha256.Sum256([]byte(archiveBody)))
	downloadSettings(t, home, server.URL, digest)

	installed := delegate.InstalledGenerator()
	must_be.Nil(os.MkdirAll(filepath.Dir(installed), 0o755))
	must_be.Nil(os.WriteFile(installed, []byte("stale"), 0o755))

	must_be.Nil(delegate.Bootstrap(true))
	must_be.Equal(int64(1), atomic.LoadInt64(&hits))

	blob, err := os.ReadFile(installed)
	must_be.Nil(err)
	must_be.Equal(archiveBody, string(blob))
}

func TestBootstrapNeedsDownloadSource(t *testing.T) {
	_, wont_be := hamlet.Specifications(t)

	freshHome(t)

	err := delegate.Bootstrap(false)
	wont_be.Nil(err)
	wont_be.True(delegate.HasGenerator())
}
