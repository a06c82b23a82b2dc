package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spdxbridge/sdg/common"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show sdg version.",
	Long:    "Show sdg version.",
	Run: func(cmd *cobra.Command, args []string) {
		common.Stdout("%v\n", common.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
