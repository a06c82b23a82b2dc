package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spdxbridge/sdg/interactive"
	"github.com/spdxbridge/sdg/pretty"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"ui", "tui"},
	Short:   "Launch the interactive terminal UI.",
	Long: `Launch the interactive terminal user interface for sdg.
Browse past generation runs, the supported document formats, and live
environment diagnostics.

Navigation:
  1-3        Switch views (History, Formats, Diagnostics)
  j/k        Move up/down
  R          Refresh the current view
  q          Quit
  ?          Help`,
	Run: func(cmd *cobra.Command, args []string) {
		if !pretty.Interactive {
			pretty.Exit(1, "The interactive mode requires a terminal (TTY)")
		}
		err := interactive.Run()
		pretty.Guard(err == nil, 1, "UI error: %v", err)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
