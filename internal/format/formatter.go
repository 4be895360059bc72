package format

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/finsec/cli/internal/config"
	"github.com/finsec/cli/internal/movement"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data interface{}) error
}

// Tabular is data that renders as rows under a header
type Tabular interface {
	Headers() []string
	Rows() [][]string
}

// Footer is an optional summary line printed under a table
type Footer interface {
	Footer() string
}

// GetFormatter returns a formatter writing to w
func GetFormatter(format string, w io.Writer) (Formatter, error) {
	useColors := config.Get().Format.Colors

	switch format {
	case "table":
		return NewTableFormatter(w, useColors), nil
	case "json":
		return NewJSONFormatter(w, true), nil
	case "json-compact":
		return NewJSONFormatter(w, false), nil
	case "yaml":
		return NewYAMLFormatter(w), nil
	case "text":
		return NewTextFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Print formats and prints data using the configured output format
func Print(data interface{}) error {
	return Fprint(os.Stdout, config.GetOutputFormat(), data)
}

// Fprint formats data to w
func Fprint(w io.Writer, format string, data interface{}) error {
	formatter, err := GetFormatter(format, w)
	if err != nil {
		return err
	}
	return formatter.Format(data)
}

// Structured reports whether the active format is meant for machines, in which case
// status lines are suppressed from stdout.
func Structured() bool {
	switch config.GetOutputFormat() {
	case "json", "json-compact", "yaml":
		return true
	}
	return false
}

func printLine(w io.Writer, attr color.Attribute, prefix, message string, args ...interface{}) {
	text := fmt.Sprintf(message, args...)
	if config.Get().Format.Colors {
		color.New(attr).Fprintln(w, text)
		return
	}
	fmt.Fprintln(w, prefix+text)
}

// PrintSuccess prints a success message
func PrintSuccess(message string, args ...interface{}) {
	if Structured() {
		return
	}
	printLine(os.Stdout, color.FgGreen, "", message, args...)
}

// PrintError prints an error message to stderr
func PrintError(message string, args ...interface{}) {
	printLine(os.Stderr, color.FgRed, "Error: ", message, args...)
}

// PrintWarning prints a warning message to stderr
func PrintWarning(message string, args ...interface{}) {
	printLine(os.Stderr, color.FgYellow, "Warning: ", message, args...)
}

// PrintInfo prints an info message
func PrintInfo(message string, args ...interface{}) {
	if Structured() {
		return
	}
	printLine(os.Stdout, color.FgBlue, "Info: ", message, args...)
}

// PrintDebug prints a debug message if debug mode is enabled
func PrintDebug(message string, args ...interface{}) {
	if config.IsDebug() {
		printLine(os.Stderr, color.FgCyan, "", "[DEBUG] "+message, args...)
	}
}

// PrintDecision reports a money-movement decision
func PrintDecision(d movement.Decision) {
	switch d.Outcome {
	case movement.Block:
		PrintError("✗ %s", joinDecision(d))
	case movement.Warn:
		PrintWarning("⚠ %s", joinDecision(d))
	default:
		PrintSuccess("✓ Checks passed")
	}
}

func joinDecision(d movement.Decision) string {
	if d.Detail == "" {
		return d.Message
	}
	return d.Message + ". " + d.Detail
}
