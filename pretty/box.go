package pretty

import (
	"os"
	"strings"

	"github.com/spdxbridge/sdg/common"
)

// BoxStyle defines the characters used for drawing boxes. There are
// Unicode single/double/rounded variants and an ASCII fallback.
type BoxStyle struct {
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
	Horizontal  string
	Vertical    string
	LeftT       string
	RightT      string
	TopT        string
	BottomT     string
	Cross       string
}

var (
	// BoxSingle uses single-line box drawing characters (Unicode)
	BoxSingle = BoxStyle{
		TopLeft:     "┌",
		TopRight:    "┐",
		BottomLeft:  "└",
		BottomRight: "┘",
		Horizontal:  "─",
		Vertical:    "│",
		LeftT:       "├",
		RightT:      "┤",
		TopT:        "┬",
		BottomT:     "┴",
		Cross:       "┼",
	}

	// BoxRounded uses rounded corner box drawing characters (Unicode)
	BoxRounded = BoxStyle{
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "╰",
		BottomRight: "╯",
		Horizontal:  "─",
		Vertical:    "│",
		LeftT:       "├",
		RightT:      "┤",
		TopT:        "┬",
		BottomT:     "┴",
		Cross:       "┼",
	}

	// BoxASCII uses plain ASCII characters for maximum compatibility
	BoxASCII = BoxStyle{
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
		Horizontal:  "-",
		Vertical:    "|",
		LeftT:       "+",
		RightT:      "+",
		TopT:        "+",
		BottomT:     "+",
		Cross:       "+",
	}
)

// ActiveBoxStyle returns the box style matching terminal capabilities.
func ActiveBoxStyle() BoxStyle {
	term := os.Getenv("TERM")
	if term == "dumb" || term == "" {
		return BoxASCII
	}
	if Iconic {
		return BoxRounded
	}
	return BoxASCII
}

// DrawBox draws a bordered box. Width and height are the outer
// dimensions including the border.
func DrawBox(x, y, width, height int, style BoxStyle) {
	if !Interactive || width < 2 || height < 2 {
		return
	}

	MoveTo(y, x)
	common.Stdout("%s%s%s",
		style.TopLeft,
		strings.Repeat(style.Horizontal, width-2),
		style.TopRight)

	for i := 1; i < height-1; i++ {
		MoveTo(y+i, x)
		common.Stdout("%s", style.Vertical)
		MoveTo(y+i, x+width-1)
		common.Stdout("%s", style.Vertical)
	}

	MoveTo(y+height-1, x)
	common.Stdout("%s%s%s",
		style.BottomLeft,
		strings.Repeat(style.Horizontal, width-2),
		style.BottomRight)
}

// DrawBoxWithTitle draws a box with a centered title in the top border.
// An overlong title is truncated to fit.
func DrawBoxWithTitle(x, y, width, height int, title string, style BoxStyle) {
	if !Interactive || width < 2 || height < 2 {
		return
	}

	availableWidth := width - 4
	if availableWidth < 1 {
		DrawBox(x, y, width, height, style)
		return
	}

	displayTitle := title
	if len(title) > availableWidth {
		displayTitle = title[:availableWidth]
	}

	titleLen := len(displayTitle)
	leftPad := (availableWidth - titleLen) / 2
	rightPad := availableWidth - titleLen - leftPad

	MoveTo(y, x)
	common.Stdout("%s%s %s %s%s",
		style.TopLeft,
		strings.Repeat(style.Horizontal, leftPad),
		displayTitle,
		strings.Repeat(style.Horizontal, rightPad),
		style.TopRight)

	for i := 1; i < height-1; i++ {
		MoveTo(y+i, x)
		common.Stdout("%s", style.Vertical)
		MoveTo(y+i, x+width-1)
		common.Stdout("%s", style.Vertical)
	}

	MoveTo(y+height-1, x)
	common.Stdout("%s%s%s",
		style.BottomLeft,
		strings.Repeat(style.Horizontal, width-2),
		style.BottomRight)
}
