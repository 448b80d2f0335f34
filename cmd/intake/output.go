package main

import (
	"fmt"
	"io"
	"os"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

// noteWriter receives all human-facing notes. They go to stderr so stdout
// stays clean for the JSON records the extract command emits.
var noteWriter io.Writer = os.Stderr

func colorize(color, text string) string {
	if noColor {
		return text
	}
	return color + text + colorReset
}

// note prints one glyph-prefixed line.
func note(color, glyph, format string, args ...any) {
	fmt.Fprintln(noteWriter, colorize(color, glyph+" "+fmt.Sprintf(format, args...)))
}

func printSuccess(format string, args ...any) { note(colorGreen, "✓", format, args...) }
func printError(format string, args ...any)   { note(colorRed, "✗", format, args...) }
func printWarning(format string, args ...any) { note(colorYellow, "⚠", format, args...) }

// printStatus renders one "Label: value" row of the status report.
func printStatus(label, format string, args ...any) {
	fmt.Fprintf(noteWriter, "  %s %s\n", colorize(colorBold, label+":"), fmt.Sprintf(format, args...))
}
