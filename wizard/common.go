package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/pretty"
	"github.com/spdxbridge/sdg/shell"
)

const (
	UNIX_NEWLINE    = "\n"
	WINDOWS_NEWLINE = "\r\n"

	newline = '\n'
)

var (
	// ErrNotInteractive is returned when a wizard runs without a terminal
	// to ask questions on.
	ErrNotInteractive = errors.New("this wizard requires an interactive terminal")
)

type Validator func(string) bool

func memberValidation(members []string, erratic string) Validator {
	return func(input string) bool {
		for _, member := range members {
			if input == member {
				return true
			}
		}
		common.Stdout("%s%s%s\n\n", pretty.Red, erratic, pretty.Reset)
		return false
	}
}

// commandValidation accepts command lines that tokenize with shell quoting
// rules. With optional set, empty input also passes, so an answer can clear
// a previously configured command.
func commandValidation(optional bool) Validator {
	return func(input string) bool {
		if len(strings.TrimSpace(input)) == 0 {
			if optional {
				return true
			}
			common.Stdout("%sA command line is required.%s\n\n", pretty.Red, pretty.Reset)
			return false
		}
		if _, err := shell.Split(input); err != nil {
			common.Stdout("%sNot a valid command line: %v%s\n\n", pretty.Red, err, pretty.Reset)
			return false
		}
		return true
	}
}

func warning(condition bool, message string) {
	if condition {
		common.Stdout("%s%s%s\n\n", pretty.Yellow, message, pretty.Reset)
	}
}

func firstOf(arguments []string, missing string) string {
	if len(arguments) > 0 {
		return arguments[0]
	}
	return missing
}

func note(form string, details ...interface{}) {
	message := fmt.Sprintf(form, details...)
	common.Stdout("%s! %s%s%s\n", pretty.Red, pretty.White, message, pretty.Reset)
}

func ask(question, defaults string, validator Validator) (string, error) {
	for {
		common.Stdout("%s? %s%s %s[%s]:%s ", pretty.Green, pretty.White, question, pretty.Grey, defaults, pretty.Reset)
		source := bufio.NewReader(os.Stdin)
		reply, err := source.ReadString(newline)
		common.Stdout("\n")
		if err != nil {
			return "", err
		}
		if reply == UNIX_NEWLINE || reply == WINDOWS_NEWLINE {
			reply = defaults
		}
		reply = strings.TrimSpace(reply)
		if !validator(reply) {
			continue
		}
		return reply, nil
	}
}

func askBool(question string, defaults bool) (bool, error) {
	preset := "n"
	if defaults {
		preset = "y"
	}
	validator := memberValidation([]string{"y", "Y", "n", "N"}, "Please answer 'y' or 'n'.")
	reply, err := ask(question, preset, validator)
	if err != nil {
		return false, err
	}
	return reply == "y" || reply == "Y", nil
}

// ValidateSelection returns a validator for list selection that accepts
// either the option value or a 1-based index number. On invalid input, it
// shows all available options with their corresponding numbers.
func ValidateSelection(options []string) Validator {
	return func(input string) bool {
		for _, option := range options {
			if input == option {
				return true
			}
		}

		var index int
		if _, err := fmt.Sscanf(input, "%d", &index); err == nil {
			if index >= 1 && index <= len(options) {
				return true
			}
		}

		var optionsList strings.Builder
		for i, option := range options {
			if i > 0 {
				optionsList.WriteString(", ")
			}
			optionsList.WriteString(fmt.Sprintf("%d) %s", i+1, option))
		}

		common.Stdout("%sInvalid selection. Choose from: %s%s\n\n", pretty.Red, optionsList.String(), pretty.Reset)
		return false
	}
}

// ShowOptions displays a numbered list of options before prompting the
// user. Uses displayNames if provided, otherwise falls back to options.
func ShowOptions(options []string, displayNames []string) {
	for i, option := range options {
		display := option
		if displayNames != nil && i < len(displayNames) {
			display = displayNames[i]
		}
		common.Stdout("  %d) %s\n", i+1, display)
	}
}

// askChoice shows a numbered option list and resolves the answer, given as
// either a value or its number, back to the option value.
func askChoice(question string, options []string, displayNames []string, defaults string) (string, error) {
	ShowOptions(options, displayNames)
	common.Stdout("\n")
	reply, err := ask(question, defaults, ValidateSelection(options))
	if err != nil {
		return "", err
	}
	var index int
	if _, err := fmt.Sscanf(reply, "%d", &index); err == nil && index >= 1 && index <= len(options) {
		return options[index-1], nil
	}
	return reply, nil
}
