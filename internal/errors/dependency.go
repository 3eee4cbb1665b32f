package errors

import "fmt"

// Dependency diagnostic codes (DEP300-399)
const (
	// CodeUnknownPackage indicates a package reference outside the strict-mode whitelist
	CodeUnknownPackage Code = "DEP301"
)

// NewUnknownPackageReference creates a diagnostic for a package not present in
// the strict-mode whitelist. Fatal in strict mode, a warning otherwise.
func NewUnknownPackageReference(pkg string, strict bool, loc Location) *Diagnostic {
	severity := SeverityWarning
	if strict {
		severity = SeverityError
	}
	return newDiagnostic(
		CodeUnknownPackage,
		CategoryDependency,
		severity,
		pkg,
		fmt.Sprintf("reference to unknown package '%s'", pkg),
		loc,
	).WithSuggestion("add the package to the dependency whitelist or disable strict mode")
}
