package pretty

import (
	"os"
	"strings"
)

// Terminal color capability support. Detection respects the NO_COLOR,
// COLORTERM, and TERM environment variables, in that order.

// ColorMode represents the level of color support available in the terminal.
type ColorMode int

const (
	// ColorModeNone indicates no color support (NO_COLOR set or dumb terminal)
	ColorModeNone ColorMode = iota
	// ColorModeBasic indicates 16 basic ANSI colors
	ColorModeBasic
	// ColorMode256 indicates 256-color palette support
	ColorMode256
	// ColorModeTrueColor indicates 24-bit RGB support
	ColorModeTrueColor
)

var (
	detectedColorMode ColorMode
	colorModeDetected bool
)

// DetectColorMode checks environment variables to determine terminal color
// capabilities. The result is cached for the lifetime of the process.
func DetectColorMode() ColorMode {
	if colorModeDetected {
		return detectedColorMode
	}

	if os.Getenv("NO_COLOR") != "" {
		detectedColorMode = ColorModeNone
		colorModeDetected = true
		return detectedColorMode
	}

	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		detectedColorMode = ColorModeTrueColor
		colorModeDetected = true
		return detectedColorMode
	}

	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		detectedColorMode = ColorModeNone
		colorModeDetected = true
		return detectedColorMode
	}

	if strings.Contains(term, "256color") {
		detectedColorMode = ColorMode256
		colorModeDetected = true
		return detectedColorMode
	}

	detectedColorMode = ColorModeBasic
	colorModeDetected = true
	return detectedColorMode
}

// SeverityColor returns the ANSI color code for a log severity level.
func SeverityColor(level string) string {
	if Colorless || Disabled {
		return ""
	}

	switch strings.ToLower(level) {
	case "trace":
		return Faint
	case "debug":
		return Grey
	case "info":
		return White
	case "warning", "warn":
		return Yellow
	case "error":
		return Red
	case "critical", "fatal":
		return csif("91;1m")
	default:
		return ""
	}
}

// StatusColor returns the ANSI color code for an operation status.
func StatusColor(status string) string {
	if Colorless || Disabled {
		return ""
	}

	switch strings.ToLower(status) {
	case "pending":
		return Grey
	case "running", "in-progress", "in_progress":
		return Cyan
	case "complete", "completed", "success", "done":
		return Green
	case "failed", "failure", "error":
		return Red
	case "skipped", "skip":
		return Faint
	default:
		return ""
	}
}

// Color256 returns the escape code for 256-color foreground text, or an
// empty string when the terminal cannot show it. Valid range is 0-255.
func Color256(n int) string {
	if Colorless || Disabled {
		return ""
	}
	if DetectColorMode() < ColorMode256 {
		return ""
	}
	if n < 0 || n > 255 {
		return ""
	}
	return csif("38;5;%dm", n)
}

// BGColor256 returns the escape code for 256-color background, or an
// empty string when the terminal cannot show it. Valid range is 0-255.
func BGColor256(n int) string {
	if Colorless || Disabled {
		return ""
	}
	if DetectColorMode() < ColorMode256 {
		return ""
	}
	if n < 0 || n > 255 {
		return ""
	}
	return csif("48;5;%dm", n)
}

// RGB returns the escape code for 24-bit TrueColor foreground text, or an
// empty string when the terminal cannot show it.
func RGB(r, g, b int) string {
	if Colorless || Disabled {
		return ""
	}
	if DetectColorMode() < ColorModeTrueColor {
		return ""
	}
	if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
		return ""
	}
	return csif("38;2;%d;%d;%dm", r, g, b)
}

// BGRGB returns the escape code for 24-bit TrueColor background, or an
// empty string when the terminal cannot show it.
func BGRGB(r, g, b int) string {
	if Colorless || Disabled {
		return ""
	}
	if DetectColorMode() < ColorModeTrueColor {
		return ""
	}
	if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
		return ""
	}
	return csif("48;2;%d;%d;%dm", r, g, b)
}
