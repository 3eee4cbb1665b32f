package errors

import (
	"fmt"
	"sort"
	"strings"
)

// FormatList returns the diagnostic-per-line form of the whole list:
// <severity>: <artifact-or-symbol>: <message>
//
// Entries are ordered errors first, then warnings, then info, preserving
// insertion order within each severity so repeated runs print identically.
func FormatList(diags List) string {
	if len(diags) == 0 {
		return "no diagnostics"
	}

	sorted := make(List, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		return severityRank(sorted[i].Severity) < severityRank(sorted[j].Severity)
	})

	var b strings.Builder
	for _, d := range sorted {
		b.WriteString(d.Format())
		b.WriteString("\n")
	}

	errs, warns, _ := diags.Counts()
	if errs > 0 || warns > 0 {
		fmt.Fprintf(&b, "\n%s\n", summaryLine(errs, warns))
	}

	return b.String()
}

// FormatVerbose returns a multi-line rendering of one diagnostic including
// location, related location, and suggestion
func FormatVerbose(d *Diagnostic) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s: %s\n", d.Code, d.Severity, d.Message)
	if d.Location.File != "" {
		fmt.Fprintf(&b, "  at %s\n", d.Location)
	}
	if d.Related != nil {
		fmt.Fprintf(&b, "  see also %s\n", d.Related)
	}
	if d.Suggestion != "" {
		fmt.Fprintf(&b, "  hint: %s\n", d.Suggestion)
	}

	return b.String()
}

func severityRank(s Severity) int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

func summaryLine(errs, warns int) string {
	parts := make([]string, 0, 2)
	if errs > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", errs))
	}
	if warns > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", warns))
	}
	return strings.Join(parts, ", ")
}
