package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spdxbridge/sdg/operations"
	"github.com/spdxbridge/sdg/pretty"
)

var publishFlags operations.PublishFlags

var publishCmd = &cobra.Command{
	Use:   "publish <document-file>",
	Short: "Push a generated document to an OCI registry.",
	Long: `Push a generated document to an OCI registry as an artifact, using
the document format's media type for the layer. Credentials come from the
--username/--password flags, or from OCI_USERNAME/OCI_PASSWORD (then
DOCKER_USERNAME/DOCKER_PASSWORD) in the environment.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pretty.Guard(len(publishFlags.Registry) > 0, 1, "The --registry flag is required, as <host>/<repository>:<tag>.")
		operations.RunPublish(args[0], &publishFlags)
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().StringVarP(&publishFlags.Registry, "registry", "r", "", "registry reference as <host>/<repository>:<tag>")
	publishCmd.Flags().StringVarP(&publishFlags.Username, "username", "u", "", "registry username for basic auth")
	publishCmd.Flags().StringVarP(&publishFlags.Password, "password", "p", "", "registry password or token for basic auth")
	publishCmd.Flags().BoolVar(&publishFlags.Insecure, "insecure", false, "use plain HTTP, for local registries only")
}
