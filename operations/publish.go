package operations

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/journal"
	"github.com/spdxbridge/sdg/oci"
	"github.com/spdxbridge/sdg/pretty"
	"github.com/spdxbridge/sdg/sbom"
	"github.com/spdxbridge/sdg/settings"
)

// PublishFlags carries the `sdg publish` knobs.
type PublishFlags struct {
	Registry string
	Username string
	Password string
	Insecure bool
}

// RunPublish pushes one generated document to an OCI registry as an
// artifact. Publishing happens after generation has settled, so failures
// here are plain command errors, not generation outcomes.
func RunPublish(document string, flags *PublishFlags) {
	blob, err := os.ReadFile(document)
	pretty.Guard(err == nil, 1, "Cannot read document %q, reason: %v", document, err)

	reference, tag, err := oci.ParseReference(flags.Registry)
	pretty.Guard(err == nil, 1, "%v", err)

	mediaType := "application/octet-stream"
	format, known := sbom.FormatByExtension(document)
	if known {
		mediaType = format.MediaType
	} else {
		pretty.Warning("Cannot tell the document format of %q, publishing it as %s.", document, mediaType)
	}

	username, password := flags.Username, flags.Password
	if len(username) == 0 && len(password) == 0 {
		username, password = oci.EnvironmentCredentials()
	}
	client := oci.NewClient(oci.Config{
		Registry: reference,
		Tag:      tag,
		Username: username,
		Password: password,
		Insecure: flags.Insecure,
	})

	title := filepath.Base(document)
	wait := pretty.NewDelayedSpinner("Pushing " + title)
	wait.Start()
	result, err := client.Push(context.Background(), blob, mediaType, title)
	wait.Stop(err == nil)
	pretty.Guard(err == nil, 2, "Could not publish %q to %q, reason: %v", document, flags.Registry, err)

	journalPublish(title, result)
	common.Log("Published %s to %s:%s", title, result.Registry, result.Tag)
	common.Log("Digest: %s", result.Digest)
	pretty.Ok()
}

func journalPublish(title string, result *oci.PushResult) {
	if !settings.Global.JournalEnabled() {
		return
	}
	detail := title + " -> " + result.Registry + ":" + result.Tag
	err := journal.Post("publish", detail, "digest %s, media type %s", result.Digest, result.MediaType)
	if err != nil {
		common.Debug("Journal write failed, reason: %v", err)
	}
}
