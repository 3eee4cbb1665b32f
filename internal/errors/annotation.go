package errors

// Annotation diagnostic codes (ANN001-099)
const (
	// CodeMalformedAnnotation indicates a tag whose structured value could not be parsed
	CodeMalformedAnnotation Code = "ANN001"
	// CodeUnrecognizedTag indicates an unknown tag key, preserved but flagged
	CodeUnrecognizedTag Code = "ANN002"
	// CodeOrphanAnnotation indicates an annotation block not attached to a declaration
	CodeOrphanAnnotation Code = "ANN003"
)

// NewMalformedAnnotation creates a ParseError-class diagnostic for a tag
// whose structured sub-value cannot be parsed
func NewMalformedAnnotation(tag, detail string, loc Location) *Diagnostic {
	return newDiagnostic(
		CodeMalformedAnnotation,
		CategoryAnnotation,
		SeverityError,
		tag,
		"malformed annotation: "+detail,
		loc,
	)
}

// NewUnrecognizedTag creates a warning for an unknown tag key. The tag is
// preserved in the block; this never aborts a run.
func NewUnrecognizedTag(tag string, loc Location) *Diagnostic {
	return newDiagnostic(
		CodeUnrecognizedTag,
		CategoryAnnotation,
		SeverityWarning,
		tag,
		"unrecognized tag '@"+tag+"'",
		loc,
	).WithSuggestion("recognized tags are @export, @param, @return, @importFrom, @format, @source")
}

// NewOrphanAnnotation creates a warning for an annotation block that does not
// immediately precede a top-level declaration
func NewOrphanAnnotation(loc Location) *Diagnostic {
	return newDiagnostic(
		CodeOrphanAnnotation,
		CategoryAnnotation,
		SeverityWarning,
		loc.File,
		"annotation block is not attached to a declaration",
		loc,
	).WithSuggestion("remove the blank line between the block and its declaration")
}
