package errors

import "fmt"

// Manifest diagnostic codes (MAN400-499)
const (
	// CodeInvalidManifestField indicates a manifest field failing validation
	CodeInvalidManifestField Code = "MAN401"
)

// NewInvalidManifestField creates a fatal diagnostic naming the first manifest
// field that failed validation
func NewInvalidManifestField(field, detail string) *Diagnostic {
	return newDiagnostic(
		CodeInvalidManifestField,
		CategoryManifest,
		SeverityError,
		field,
		fmt.Sprintf("invalid manifest field '%s': %s", field, detail),
		Location{File: "MANIFEST"},
	)
}

// Field returns the manifest field named by an InvalidManifestField
// diagnostic, or "" for any other diagnostic
func (d *Diagnostic) Field() string {
	if d.Code != CodeInvalidManifestField {
		return ""
	}
	return d.Subject
}
