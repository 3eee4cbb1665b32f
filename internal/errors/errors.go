// Package errors provides structured diagnostics for the synth pipeline.
// It defines diagnostic codes, categories, and formatting for both
// human-readable terminal output and machine-parseable JSON.
package errors

import (
	"encoding/json"
	"fmt"
)

// Code represents a unique diagnostic code in the synthesizer
type Code string

// Category represents the category of diagnostic
type Category string

const (
	// CategoryAnnotation represents annotation parse issues (ANN001-099)
	CategoryAnnotation Category = "annotation"
	// CategorySymbol represents symbol table issues (SYM100-199)
	CategorySymbol Category = "symbol"
	// CategoryNamespace represents namespace issues (NS200-299)
	CategoryNamespace Category = "namespace"
	// CategoryDependency represents dependency resolution issues (DEP300-399)
	CategoryDependency Category = "dependency"
	// CategoryManifest represents manifest validation issues (MAN400-499)
	CategoryManifest Category = "manifest"
)

// Severity indicates the severity level of a diagnostic
type Severity string

const (
	// SeverityError indicates an error that prevents artifact generation
	SeverityError Severity = "error"
	// SeverityWarning indicates a potential issue that never aborts a run
	SeverityWarning Severity = "warning"
	// SeverityInfo indicates informational messages
	SeverityInfo Severity = "info"
)

// Location identifies where in a source unit a diagnostic originated
type Location struct {
	// File is the source unit path, or an artifact name for manifest issues
	File string `json:"file"`
	// Line is the 1-indexed line number; 0 when the diagnostic has no line
	Line int `json:"line,omitempty"`
}

// String renders the location as file:line
func (l Location) String() string {
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return l.File
}

// Diagnostic represents a structured synthesizer diagnostic with enough
// information for terminal output and machine consumption
type Diagnostic struct {
	// Code is the unique diagnostic code (e.g. "SYM101")
	Code Code `json:"code"`
	// Category is the diagnostic category
	Category Category `json:"category"`
	// Severity is the severity level
	Severity Severity `json:"severity"`
	// Subject is the symbol, tag, or artifact the diagnostic is about
	Subject string `json:"subject"`
	// Message is the primary message
	Message string `json:"message"`
	// Location is where the diagnostic originated
	Location Location `json:"location"`
	// Related is a secondary location (e.g. the other half of a duplicate)
	Related *Location `json:"related,omitempty"`
	// Suggestion provides a hint for fixing the issue (optional)
	Suggestion string `json:"suggestion,omitempty"`
}

// Error implements the error interface
func (d *Diagnostic) Error() string {
	return d.Format()
}

// Format returns the one-line diagnostic form:
// <severity>: <artifact-or-symbol>: <message>
func (d *Diagnostic) Format() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Subject, d.Message)
}

// WithRelated sets a secondary location on the diagnostic
func (d *Diagnostic) WithRelated(loc Location) *Diagnostic {
	d.Related = &loc
	return d
}

// WithSuggestion sets a fix suggestion on the diagnostic
func (d *Diagnostic) WithSuggestion(suggestion string) *Diagnostic {
	d.Suggestion = suggestion
	return d
}

// List is a collection of diagnostics
type List []*Diagnostic

// Error implements the error interface
func (l List) Error() string {
	if len(l) == 0 {
		return "no diagnostics"
	}
	return FormatList(l)
}

// HasErrors returns true if the list contains any error-severity entries
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if the list contains any warnings
func (l List) HasWarnings() bool {
	for _, d := range l {
		if d.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Counts returns the number of diagnostics by severity
func (l List) Counts() (errors, warnings, info int) {
	for _, d := range l {
		switch d.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			info++
		}
	}
	return
}

// ToJSON returns all diagnostics as a JSON array
func (l List) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// newDiagnostic creates a Diagnostic with the given parameters
func newDiagnostic(code Code, category Category, severity Severity, subject, message string, loc Location) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Category: category,
		Severity: severity,
		Subject:  subject,
		Message:  message,
		Location: loc,
	}
}
