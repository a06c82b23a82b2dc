package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/operations"
	"github.com/spdxbridge/sdg/pretty"
	"github.com/spdxbridge/sdg/sbom"
)

var (
	debugFlag     bool
	traceFlag     bool
	silentFlag    bool
	timelineFlag  bool
	colorlessFlag bool

	formatFlag     string
	generatorFlag  string
	timeoutFlag    time.Duration
	keepFlag       bool
	showOutputFlag bool
)

// defaultedFormat resolves the --format value, falling back to the
// configured default when the flag was left empty.
func defaultedFormat(label string) sbom.Format {
	if len(label) == 0 {
		label = operations.DefaultFormat()
	}
	format, err := sbom.ParseFormat(label)
	pretty.Guard(err == nil, 1, "%v", err)
	return format
}

var rootCmd = &cobra.Command{
	Use:   "sdg <target-directory> <output-name>",
	Short: "sdg is a command line bridge to the SPDX document generator.",
	Long: `sdg is a command line bridge to the SPDX document generator.

Given a target directory and an output name, sdg builds the exact argument
vector the delegate generator expects, spawns it as a child process,
supervises the run, and reports a single settled outcome. The document
itself is produced by the delegate; sdg never writes SPDX content.

Without arguments this help is shown. See the subcommands for batch runs,
provisioning, diagnostics, and publishing.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			return
		}
		pretty.Guard(len(args) == 2, 1, "Need both a target directory and an output name, see `sdg --help`.")
		request, err := sbom.NewRequest(args[0], args[1], defaultedFormat(formatFlag))
		pretty.Guard(err == nil, 1, "%v", err)
		operations.RunGeneration(request, &operations.GenerateFlags{
			Generator:  generatorFlag,
			Timeout:    timeoutFlag,
			Keep:       keepFlag,
			ShowOutput: showOutputFlag,
		})
	},
}

// Execute runs the command tree once. Every failure path leaves through
// the exit protection in main, so deferred reporting here runs on both
// success and failure.
func Execute() {
	defer common.EndOfTimeline()
	defer common.Stopwatch("Command execution took:").Debug()
	err := rootCmd.Execute()
	pretty.Guard(err == nil, 1, "Error: [sdg %v] %v", common.Version, err)
}

func initCommands() {
	common.DefineVerbosity(silentFlag, debugFlag, traceFlag)
	common.TimelineEnabled = timelineFlag
	pretty.Colorless = pretty.Colorless || colorlessFlag
	pretty.Setup()
	common.Timeline("command %q", os.Args)
}

func init() {
	cobra.OnInitialize(initCommands)

	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "to get debug output where available")
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "to get trace output where available (implies --debug)")
	rootCmd.PersistentFlags().BoolVar(&silentFlag, "silent", false, "be less verbose on output")
	rootCmd.PersistentFlags().BoolVar(&timelineFlag, "timeline", false, "print a timing timeline at the end of the run")
	rootCmd.PersistentFlags().BoolVar(&colorlessFlag, "colorless", false, "do not use colors in CLI output")
	rootCmd.PersistentFlags().StringVar(&common.ControllerType, "controller", common.DefaultControllerType, "name of the controlling process, shows up in the journal")

	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "document format, one of: "+sbom.SupportedFormatNames()+" (default from settings)")
	rootCmd.Flags().StringVarP(&generatorFlag, "generator", "g", "", "override the delegate generator command line")
	rootCmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "maximum time to wait for the delegate, 0 waits forever")
	rootCmd.Flags().BoolVarP(&keepFlag, "keep", "k", false, "keep the produced document in the local library")
	rootCmd.Flags().BoolVar(&showOutputFlag, "show-output", false, "show delegate stdout even without debug verbosity")
}
