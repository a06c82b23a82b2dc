package operations

import (
	"github.com/spdxbridge/sdg/cloud"
	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/fail"
	"github.com/spdxbridge/sdg/settings"
)

// ImportSettings installs a settings document from a local file or URL as
// the product home settings file. The content must parse as settings
// before anything is written; a broken document changes nothing.
func ImportSettings(resource string) (err error) {
	defer fail.Around(&err)

	content, err := cloud.ReadFile(resource)
	fail.On(err != nil, "Could not read %q, reason: %v", resource, err)

	incoming, err := settings.FromBytes(content)
	fail.On(err != nil, "Content of %q does not parse as settings, reason: %v", resource, err)

	fail.Fast(settings.SaveSettings(incoming))
	common.Log("Settings from %q are now installed at %q.", resource, common.Product.SettingsFile())
	return nil
}
