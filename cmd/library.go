package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/library"
	"github.com/spdxbridge/sdg/pretty"
)

var libraryCmd = &cobra.Command{
	Use:     "library",
	Aliases: []string{"lib"},
	Short:   "Group of document library commands.",
	Long: `Group of commands around the local document library, the content
addressed store that keeps generated documents when asked to (--keep flag
or profile: keep-in-library: true in settings).`,
}

var libraryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the documents kept in the library.",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := library.Entries()
		pretty.Guard(err == nil, 1, "Cannot read the library catalog, reason: %v", err)
		if len(entries) == 0 {
			pretty.Note("The library is empty. Generate with --keep to start it.")
			return
		}
		common.Stdout("%-16s  %-9s  %9s  %8s  %s\n", "Digest", "Format", "Size", "Age", "Name")
		for _, entry := range entries {
			age := common.DayCountSince(time.Unix(entry.When, 0))
			common.Stdout("%-16s  %-9s  %9d  %7dd  %s\n", entry.Digest[:16], entry.Format, entry.Size, age, entry.Name)
		}
	},
}

var libraryExportCmd = &cobra.Command{
	Use:   "export <zipfile> [<digest-prefix> ...]",
	Short: "Export library documents into a zip archive.",
	Long: `Export documents from the library into a zip archive under their
original names. Entries are selected by unique digest prefixes; with no
prefix every entry is exported. Unknown or ambiguous prefixes are reported
but do not stop the rest of the export.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		problems, err := library.Export(args[0], args[1:])
		pretty.Guard(err == nil, 2, "Export to %q failed, reason: %v", args[0], err)
		for _, problem := range problems {
			pretty.Warning("%s", problem)
		}
		pretty.Guard(len(problems) == 0, 3, "%d of the selections could not be exported!", len(problems))
		pretty.Ok()
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryExportCmd)
}
