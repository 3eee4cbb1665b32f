// Package ui formats synthesizer output for the terminal: colored
// diagnostics and the drift report table.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/conduit-lang/synth/internal/checker"
	"github.com/conduit-lang/synth/internal/errors"
)

// PrintDiagnostics writes one line per diagnostic, errors first, colored by
// severity. The line shape is <severity>: <artifact-or-symbol>: <message>.
func PrintDiagnostics(w io.Writer, diags errors.List) {
	groups := []struct {
		severity errors.Severity
		c        *color.Color
	}{
		{errors.SeverityError, color.New(color.FgRed, color.Bold)},
		{errors.SeverityWarning, color.New(color.FgYellow)},
		{errors.SeverityInfo, color.New(color.FgCyan)},
	}

	for _, group := range groups {
		for _, d := range diags {
			if d.Severity != group.severity {
				continue
			}
			group.c.Fprintln(w, d.Format())
			if d.Location.File != "" && d.Location.Line > 0 {
				fmt.Fprintf(w, "  at %s\n", d.Location)
			}
			if d.Related != nil {
				fmt.Fprintf(w, "  see also %s\n", d.Related)
			}
			if d.Suggestion != "" {
				fmt.Fprintf(w, "  hint: %s\n", d.Suggestion)
			}
		}
	}
}

// PrintDriftReport renders the per-artifact status table for `synth check`
func PrintDriftReport(w io.Writer, result checker.Result) {
	statusColors := map[checker.Status]*color.Color{
		checker.StatusUnchanged:   color.New(color.FgGreen),
		checker.StatusWouldUpdate: color.New(color.FgYellow),
		checker.StatusWouldCreate: color.New(color.FgCyan),
	}

	paths := result.Paths()
	width := len("ARTIFACT")
	for _, p := range paths {
		if len(p) > width {
			width = len(p)
		}
	}

	header := color.New(color.Bold)
	header.Fprintf(w, "%s  %s\n", padRight("ARTIFACT", width), "STATUS")
	fmt.Fprintf(w, "%s  %s\n", strings.Repeat("-", width), strings.Repeat("-", len("STATUS")))

	for _, p := range paths {
		status := result[p]
		fmt.Fprintf(w, "%s  ", padRight(p, width))
		statusColors[status].Fprintln(w, string(status))
	}
}

// padRight pads a string with spaces to the target width
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
