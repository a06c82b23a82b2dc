package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/delegate"
	"github.com/spdxbridge/sdg/journal"
	"github.com/spdxbridge/sdg/pretty"
	"github.com/spdxbridge/sdg/settings"
	"github.com/spdxbridge/sdg/wizard"
)

var (
	bootstrapYes   bool
	bootstrapForce bool
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Download and install the delegate generator.",
	Long: `Download the delegate generator archive from the configured source,
verify it against the pinned SHA-256 digest, and install it under the
product home. Needs downloads: generator: set in settings.yaml.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		source := settings.Global.DownloadURL()
		pretty.Guard(len(source) > 0, 1, "No download URL configured. Set downloads: generator: in %s.", common.Product.SettingsFile())

		confirmed, err := wizard.Confirm("Download and install the generator from "+source+"?", bootstrapYes)
		pretty.Guard(err == nil, 1, "%v", err)
		if !confirmed {
			return
		}

		err = delegate.Bootstrap(bootstrapForce)
		pretty.Guard(err == nil, 2, "Bootstrap failed, reason: %v", err)

		if settings.Global.JournalEnabled() {
			suberr := journal.Post("bootstrap", source, "installed to %s", delegate.InstalledGenerator())
			if suberr != nil {
				common.Debug("Journal write failed, reason: %v", suberr)
			}
		}
		pretty.Ok()
	},
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
	wizard.AddYesFlag(bootstrapCmd, &bootstrapYes)
	bootstrapCmd.Flags().BoolVar(&bootstrapForce, "force", false, "reinstall even when a generator is already installed")
}
