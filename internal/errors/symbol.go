package errors

import "fmt"

// Symbol table diagnostic codes (SYM100-199)
const (
	// CodeDuplicateSymbol indicates two declarations sharing one name; always fatal
	CodeDuplicateSymbol Code = "SYM101"
	// CodeMissingFormat indicates a dataset declared without a @format tag
	CodeMissingFormat Code = "SYM102"
)

// NewDuplicateSymbol creates a fatal diagnostic for a name declared twice.
// Both source locations are reported so either declaration can be fixed.
func NewDuplicateSymbol(name string, first, second Location) *Diagnostic {
	return newDiagnostic(
		CodeDuplicateSymbol,
		CategorySymbol,
		SeverityError,
		name,
		fmt.Sprintf("duplicate symbol '%s' (first declared at %s, redeclared at %s)", name, first, second),
		second,
	).WithRelated(first)
}

// NewMissingFormat creates a warning for a dataset without a shape description.
// Documentation remains best-effort, so this never aborts.
func NewMissingFormat(name string, loc Location) *Diagnostic {
	return newDiagnostic(
		CodeMissingFormat,
		CategorySymbol,
		SeverityWarning,
		name,
		fmt.Sprintf("dataset '%s' has no @format tag describing its shape", name),
		loc,
	).WithSuggestion("add a tag like: @format table 150x5")
}
