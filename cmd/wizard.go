package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spdxbridge/sdg/pretty"
	"github.com/spdxbridge/sdg/wizard"
)

var wizardCmd = &cobra.Command{
	Use:     "wizard",
	Aliases: []string{"wiz"},
	Short:   "Build the settings file interactively.",
	Long: `Build the settings file interactively: quick questions about the
generator command, default format, library, and journal, with a preview
before anything is written. An optional argument presets the generator
command answer.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := wizard.Setup(args)
		pretty.Guard(err == nil, 1, "%v", err)
	},
}

func init() {
	configureCmd.AddCommand(wizardCmd)
}
