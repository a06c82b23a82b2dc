package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/journal"
	"github.com/spdxbridge/sdg/pretty"
)

var journalCount int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List recent events from the run journal.",
	Long: `List recent events from the run journal, oldest first. Every
generation, bootstrap, and publish appends one event; corrupt lines are
skipped, never fatal.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		events, err := journal.Recent(journalCount)
		pretty.Guard(err == nil, 1, "Cannot read the journal, reason: %v", err)
		if len(events) == 0 {
			pretty.Note("The journal is empty.")
			return
		}
		for _, event := range events {
			when := time.Unix(event.When, 0).Format(time.RFC3339)
			common.Stdout("%s  %-10s  %-14s  %s", when, event.Event, event.Controller, event.Detail)
			if len(event.Comment) > 0 {
				common.Stdout("  (%s)", event.Comment)
			}
			common.Stdout("\n")
		}
	},
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.Flags().IntVarP(&journalCount, "count", "c", 40, "how many latest events to show, 0 shows all")
}
