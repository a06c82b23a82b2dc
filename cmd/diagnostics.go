package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spdxbridge/sdg/operations"
)

var diagnosticsJson bool

var diagnosticsCmd = &cobra.Command{
	Use:     "diagnostics",
	Aliases: []string{"diag"},
	Short:   "Run installation health checks.",
	Long: `Run the labeled health checks: product home, settings file, generator
resolution, interpreter availability, download source, journal, and the
delegate's version against the configured minimum. Warnings keep the exit
code at zero; failures make it nonzero.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		operations.RunDiagnostics(diagnosticsJson)
	},
}

func init() {
	rootCmd.AddCommand(diagnosticsCmd)
	diagnosticsCmd.Flags().BoolVarP(&diagnosticsJson, "json", "j", false, "emit the checks as a JSON document")
}
