package wizard

import (
	"errors"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/pretty"
	"github.com/spf13/cobra"
)

var (
	// ErrConfirmationRequired is returned when confirmation is needed but
	// there is no terminal to ask on.
	ErrConfirmationRequired = errors.New("confirmation required: use --yes flag in non-interactive mode")
)

// Confirm displays a yes/no confirmation prompt and returns the user's
// choice. With force set it returns true without prompting, and without an
// interactive terminal it returns ErrConfirmationRequired instead of
// hanging on a read that never answers. Enter defaults to no.
func Confirm(question string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if !pretty.Interactive {
		return false, ErrConfirmationRequired
	}

	validator := memberValidation([]string{"y", "Y", "n", "N"}, "Please answer 'y' or 'n'.")
	response, err := ask(question, "n", validator)
	if err != nil {
		return false, err
	}

	confirmed := response == "y" || response == "Y"
	if !confirmed {
		common.Stdout("%sOperation cancelled.%s\n", pretty.Grey, pretty.Reset)
	}
	return confirmed, nil
}

// AddYesFlag adds the --yes/-y flag that skips confirmation prompts.
func AddYesFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVarP(target, "yes", "y", false, "Skip confirmation prompt")
}
