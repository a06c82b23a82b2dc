package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/pretty"
	"github.com/spdxbridge/sdg/xviper"
)

var (
	doNotTrack     bool
	enableTracking bool
)

var identityCmd = &cobra.Command{
	Use:     "identity",
	Aliases: []string{"i", "id"},
	Short:   "Show the anonymous identity of this sdg installation.",
	Long:    "Show the anonymous identity of this sdg installation.",
	Run: func(cmd *cobra.Command, args []string) {
		common.Stdout("sdg instance identity is: %v\n", xviper.TrackingIdentity())
		// Telemetry stays off regardless of recorded consent.
		if enableTracking || doNotTrack {
			pretty.Warning("Telemetry is disabled in this tool; --enable/--do-not-track flags have no effect.")
		}
		common.Stdout("and anonymous health tracking is: disabled\n")
	},
}

func init() {
	rootCmd.AddCommand(identityCmd)
	identityCmd.Flags().BoolVarP(&doNotTrack, "do-not-track", "t", false, "Do not send application metrics. (opt-in)")
	identityCmd.Flags().BoolVarP(&enableTracking, "enable", "e", false, "Enable sending application metrics. (opt-in)")
}
