package delegate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spdxbridge/sdg/cloud"
	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/fail"
	"github.com/spdxbridge/sdg/pathlib"
	"github.com/spdxbridge/sdg/pretty"
	"github.com/spdxbridge/sdg/settings"
	"github.com/spdxbridge/sdg/xviper"
)

// Bootstrap downloads the delegate generator archive, verifies it against
// the digest from settings, and installs it under the product home. The
// partial download lives in a temp file and only a verified archive gets
// renamed into place.
func Bootstrap(force bool) (err error) {
	defer fail.Around(&err)

	common.TimelineBegin("generator bootstrap")
	defer common.TimelineEnd()

	target := InstalledGenerator()
	if !force && pathlib.IsFile(target) {
		pretty.Note("Generator is already installed at %s. Use --force to reinstall.", target)
		return nil
	}

	source := settings.Global.DownloadURL()
	fail.On(len(source) == 0, "No download URL configured. Set downloads: generator: in %s.", common.Product.SettingsFile())
	pretty.Progress(1, "Download source is %q.", source)

	partfile := filepath.Join(pathlib.TempDir(), fmt.Sprintf("generator-%x.part", common.When))
	defer os.Remove(partfile)

	pretty.Progress(2, "Downloading generator archive.")
	sum, err := cloud.Download(source, partfile)
	fail.On(err != nil, "Download of %q failed, reason: %v", source, err)

	pretty.Progress(3, "Verifying archive digest.")
	expected := settings.Global.DownloadDigest()
	if len(expected) > 0 {
		fail.On(!strings.EqualFold(expected, sum), "Digest mismatch: settings expect %s, downloaded content was %s.", expected, sum)
	} else {
		pretty.Warning("No digest configured in settings, skipping verification. Downloaded SHA256 is %s.", sum)
	}

	pretty.Progress(4, "Installing generator to %q.", target)
	err = pathlib.EnsureDirectoryExists(filepath.Dir(target))
	fail.Fast(err)
	err = os.Chmod(partfile, 0o755)
	fail.Fast(err)
	err = os.Rename(partfile, target)
	if err != nil {
		// rename fails across devices when TMPDIR is its own mount
		err = pathlib.CopyFile(partfile, target, true)
		fail.Fast(err)
		err = os.Chmod(target, 0o755)
		fail.Fast(err)
	}
	recordInstallation(sum)
	common.PlatformSyncDelay()

	pretty.Progress(5, "Generator ready.")
	return nil
}

func recordInstallation(digest string) {
	xviper.Set("generator.installed.digest", digest)
	xviper.Set("generator.installed.when", common.When)
	version, err := QueryVersion(installedCommand(InstalledGenerator()))
	if err != nil {
		common.Uncritical("version probe", err)
		return
	}
	xviper.Set("generator.installed.version", version)
}
