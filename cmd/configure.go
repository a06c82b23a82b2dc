package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/delegate"
	"github.com/spdxbridge/sdg/operations"
	"github.com/spdxbridge/sdg/pretty"
	"github.com/spdxbridge/sdg/sbom"
	"github.com/spdxbridge/sdg/settings"
	"github.com/spdxbridge/sdg/shell"
	"github.com/spdxbridge/sdg/xviper"
)

var (
	generatorCommand string
	generatorClear   bool
	formatClear      bool
)

var configureCmd = &cobra.Command{
	Use:     "configure",
	Aliases: []string{"config", "conf"},
	Short:   "Group of commands related to sdg configuration.",
	Long:    "Group of commands related to sdg configuration.",
}

var configureShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings as YAML.",
	Long: `Show the effective settings as YAML: the settings file merged over the
built-in defaults, with the persisted overrides applied on top.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		effective, err := effectiveSettings()
		pretty.Guard(err == nil, 1, "Could not load settings, reason: %v", err)
		content, err := effective.AsYaml()
		pretty.Guard(err == nil, 1, "Could not render settings, reason: %v", err)
		common.Stdout("%s", string(content))
	},
}

var configureGeneratorCmd = &cobra.Command{
	Use:   "generator",
	Short: "Show or persist the delegate generator command.",
	Long: `Show or persist the delegate generator command. Without flags, prints
the command the next generation run would use and where it came from.
With --command, persists an override that outlives settings.yaml edits;
--clear removes that override again.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		pretty.Guard(!generatorClear || len(generatorCommand) == 0, 1, "Use either --command or --clear, not both.")
		if generatorClear {
			xviper.Set(delegate.CommandConfigKey, "")
			pretty.Ok()
		}
		if len(generatorCommand) > 0 {
			_, err := shell.Split(generatorCommand)
			pretty.Guard(err == nil, 1, "Not a valid command line: %v", err)
			xviper.Set(delegate.CommandConfigKey, generatorCommand)
			pretty.Ok()
		}
		command, origin, err := delegate.Resolve("")
		pretty.Guard(err == nil, 1, "Could not resolve the generator command, reason: %v", err)
		common.Stdout("Generator command is: %q (from %s)\n", command, origin)
	},
}

var configureImportCmd = &cobra.Command{
	Use:   "import <file-or-url>",
	Short: "Install a settings file from a local file or URL.",
	Long: `Install a settings file from a local file or URL. The content is
validated as a settings document before anything is written; it then
replaces settings.yaml under the product home. Persisted overrides
(generator command, default format) stay in effect on top of it.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := operations.ImportSettings(args[0])
		pretty.Guard(err == nil, 1, "%v", err)
		pretty.Ok()
	},
}

var configureFormatCmd = &cobra.Command{
	Use:   "format [<format>]",
	Short: "Show or persist the default document format.",
	Long: `Show or persist the default document format. Without arguments, prints
the format used when generation runs are started without --format, and
where that default came from. With a format argument, persists it as an
override of the settings profile; --clear removes that override again.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pretty.Guard(!formatClear || len(args) == 0, 1, "Use either a format argument or --clear, not both.")
		if formatClear {
			xviper.Set(operations.FormatConfigKey, "")
			pretty.Ok()
		}
		if len(args) == 1 {
			format, err := sbom.ParseFormat(args[0])
			pretty.Guard(err == nil, 1, "%v", err)
			xviper.Set(operations.FormatConfigKey, format.Name)
			pretty.Ok()
		}
		if persisted := xviper.GetString(operations.FormatConfigKey); len(persisted) > 0 {
			common.Stdout("Default format is: %s (from persisted configuration)\n", persisted)
			return
		}
		common.Stdout("Default format is: %s (from settings)\n", settings.Global.DefaultFormat())
	},
}

// effectiveSettings is a private copy of the summoned settings with the
// xviper overrides folded in, safe to mutate and print.
func effectiveSettings() (*settings.Settings, error) {
	summoned, err := settings.SummonSettings()
	if err != nil {
		return nil, err
	}
	content, err := summoned.AsYaml()
	if err != nil {
		return nil, err
	}
	copied, err := settings.FromBytes(content)
	if err != nil {
		return nil, err
	}
	if override := xviper.GetString(delegate.CommandConfigKey); len(override) > 0 {
		copied.Generator.Command = override
	}
	if override := xviper.GetString(operations.FormatConfigKey); len(override) > 0 {
		copied.Profile.Format = override
	}
	return copied, nil
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.AddCommand(configureShowCmd)
	configureCmd.AddCommand(configureGeneratorCmd)
	configureCmd.AddCommand(configureFormatCmd)
	configureCmd.AddCommand(configureImportCmd)
	configureGeneratorCmd.Flags().StringVarP(&generatorCommand, "command", "c", "", "full generator command line to persist")
	configureGeneratorCmd.Flags().BoolVar(&generatorClear, "clear", false, "remove the persisted generator command")
	configureFormatCmd.Flags().BoolVar(&formatClear, "clear", false, "remove the persisted format override")
}
