package errors

import "fmt"

// Namespace diagnostic codes (NS200-299)
const (
	// CodeDanglingExport indicates an export referencing a name absent from the symbol table
	CodeDanglingExport Code = "NS201"
)

// NewDanglingExport creates a diagnostic for an exported name with no backing
// symbol record. Fatal in strict mode, a warning otherwise.
func NewDanglingExport(name string, strict bool, loc Location) *Diagnostic {
	severity := SeverityWarning
	if strict {
		severity = SeverityError
	}
	return newDiagnostic(
		CodeDanglingExport,
		CategoryNamespace,
		severity,
		name,
		fmt.Sprintf("export '%s' does not correspond to any declared symbol", name),
		loc,
	)
}
