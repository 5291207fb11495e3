package internal

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	quietMode bool

	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

// InitColor enables or disables colored output globally.
func InitColor(enabled bool) {
	color.NoColor = !enabled
}

// SetQuietMode suppresses informational output.
func SetQuietMode(quiet bool) {
	quietMode = quiet
}

// IsQuietMode reports whether quiet mode is active.
func IsQuietMode() bool {
	return quietMode
}

// PrintInfo prints an informational message to stdout unless quiet.
func PrintInfo(format string, args ...interface{}) {
	if quietMode {
		return
	}
	infoColor.Printf(format, args...)
}

// PrintSuccess prints a success message to stdout unless quiet.
func PrintSuccess(format string, args ...interface{}) {
	if quietMode {
		return
	}
	successColor.Printf(format, args...)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...interface{}) {
	errorColor.Fprintf(os.Stderr, format, args...)
}

// Printf prints plain output to stdout unless quiet.
func Printf(format string, args ...interface{}) {
	if quietMode {
		return
	}
	fmt.Printf(format, args...)
}
