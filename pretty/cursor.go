package pretty

import (
	"os"

	"github.com/spdxbridge/sdg/common"
	"golang.org/x/term"
)

// Cursor control using CSI escape sequences. All functions check the
// Interactive flag before emitting anything, so piped output stays clean.

// MoveTo moves cursor to given row and column, both 1-indexed.
func MoveTo(row, col int) {
	if !Interactive {
		return
	}
	common.Stdout("%s", csif("%d;%dH", row, col))
}

// ClearLine clears the entire current line without moving the cursor.
func ClearLine() {
	if !Interactive {
		return
	}
	common.Stdout("%s", csif("2K"))
}

// HideCursor makes the cursor invisible.
func HideCursor() {
	if !Interactive {
		return
	}
	common.Stdout("%s", csif("?25l"))
}

// ShowCursor makes the cursor visible again.
func ShowCursor() {
	if !Interactive {
		return
	}
	common.Stdout("%s", csif("?25h"))
}

// TerminalHeight returns the terminal height in rows, or 24 when the
// size cannot be detected.
func TerminalHeight() int {
	_, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || height <= 0 {
		common.Trace("Failed to get terminal height, using fallback: %v", err)
		return 24
	}
	return height
}

// TerminalWidth returns the terminal width in columns, or 80 when the
// size cannot be detected.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		common.Trace("Failed to get terminal width, using fallback: %v", err)
		return 80
	}
	return width
}
