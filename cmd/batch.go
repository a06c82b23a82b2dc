package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spdxbridge/sdg/operations"
	"github.com/spdxbridge/sdg/pretty"
)

var (
	batchSuffix    string
	batchWorkers   int
	batchDashboard bool
)

var batchCmd = &cobra.Command{
	Use:     "batch <directory> [<directory> ...]",
	Aliases: []string{"b"},
	Short:   "Generate documents for many directories through a worker pool.",
	Long: `Generate one document per target directory. The output name is the
directory's base name plus the optional --suffix. Requests run through a
bounded worker pool; one failing directory never stops the others, and the
command fails after all have settled if any of them did.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		requests, err := operations.BatchRequests(args, batchSuffix, defaultedFormat(formatFlag))
		pretty.Guard(err == nil, 1, "%v", err)
		flags := &operations.BatchFlags{
			GenerateFlags: operations.GenerateFlags{
				Generator:  generatorFlag,
				Timeout:    timeoutFlag,
				Keep:       keepFlag,
				ShowOutput: showOutputFlag,
			},
			Suffix:  batchSuffix,
			Workers: batchWorkers,
		}
		pretty.DashboardEnabled = batchDashboard
		operations.RunBatch(requests, flags)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "document format for every directory (default from settings)")
	batchCmd.Flags().StringVarP(&generatorFlag, "generator", "g", "", "override the delegate generator command line")
	batchCmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "maximum time to wait per delegate run, 0 waits forever")
	batchCmd.Flags().BoolVarP(&keepFlag, "keep", "k", false, "keep produced documents in the local library")
	batchCmd.Flags().BoolVar(&showOutputFlag, "show-output", false, "show delegate stdout even without debug verbosity")
	batchCmd.Flags().StringVar(&batchSuffix, "suffix", "", "suffix appended to every output name")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "worker count, 0 uses the machine default")
	batchCmd.Flags().BoolVar(&batchDashboard, "dashboard", false, "show the live dashboard on interactive terminals")
}
