// Package diagnostics renders the fatal and advisory messages the
// minimizer prints to the user: misconfigured oracles, unreadable
// input, unwritable output, and the non-fatal flaky-oracle notice.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Level represents the severity of a Diagnostic.
type Level string

const (
	Fatal   Level = "error"
	Warning Level = "warning"
	Note    Level = "note"
)

// Diagnostic is a structured message with optional supporting context,
// rendered consistently regardless of which component raised it.
type Diagnostic struct {
	Level    Level
	Message  string
	Command  string   // reproducing shell command, if relevant
	Output   string   // oracle combined output, if relevant
	Notes    []string // additional context lines
	HelpText string
}

// Reporter formats Diagnostic values for a terminal.
type Reporter struct{}

// NewReporter returns a Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Format renders a single Diagnostic.
func (r *Reporter) Format(d Diagnostic) string {
	var out strings.Builder

	levelColor := levelColor(d.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	out.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Level)), bold(d.Message)))

	if d.Command != "" {
		out.WriteString(fmt.Sprintf("  %s %s\n", dim("command:"), d.Command))
	}

	if d.Output != "" {
		out.WriteString(fmt.Sprintf("  %s\n", dim("oracle output:")))
		for _, line := range strings.Split(strings.TrimRight(d.Output, "\n"), "\n") {
			out.WriteString(fmt.Sprintf("    %s\n", line))
		}
	}

	for _, note := range d.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		out.WriteString(fmt.Sprintf("  %s %s\n", noteColor("note:"), note))
	}

	if d.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		out.WriteString(fmt.Sprintf("  %s %s\n", helpColor("help:"), d.HelpText))
	}

	return out.String()
}

func levelColor(level Level) func(...interface{}) string {
	switch level {
	case Fatal:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}
