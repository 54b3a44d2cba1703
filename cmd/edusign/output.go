package main

import (
	"fmt"
	"os"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

func colorize(noColor bool, color, text string) string {
	if noColor {
		return text
	}
	return color + text + colorReset
}

func printSuccess(noColor bool, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(noColor, colorGreen, "✓ "+msg))
}

func printError(noColor bool, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(noColor, colorRed, "✗ "+msg))
}

func printWarning(noColor bool, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(noColor, colorYellow, "⚠ "+msg))
}
