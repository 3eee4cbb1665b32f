// Package annotation parses structured comment blocks attached to top-level
// declarations in source units. A block is a run of lines carrying the
// annotation prefix immediately preceding a declaration with no blank line
// between them.
package annotation

import (
	"strings"

	"github.com/conduit-lang/synth/internal/errors"
)

// Prefix marks an annotation line in a source unit
const Prefix = "#'"

// TagKind identifies a recognized tag key
type TagKind string

const (
	TagExport     TagKind = "export"
	TagParam      TagKind = "param"
	TagReturn     TagKind = "return"
	TagImportFrom TagKind = "importFrom"
	TagFormat     TagKind = "format"
	TagSource     TagKind = "source"
	// TagUnknown marks keys outside the recognized set; preserved for
	// forward compatibility and reported as warnings
	TagUnknown TagKind = "unknown"
)

// recognizedTags maps raw keys to their kinds
var recognizedTags = map[string]TagKind{
	"export":     TagExport,
	"param":      TagParam,
	"return":     TagReturn,
	"importFrom": TagImportFrom,
	"format":     TagFormat,
	"source":     TagSource,
}

// Tag is one @key value entry inside an annotation block
type Tag struct {
	// Key is the raw key as written in the source
	Key string
	// Kind is the recognized kind, or TagUnknown
	Kind TagKind
	// Value is the trimmed free-text value, including continuation lines
	Value string
	// Line is the 1-indexed line the tag starts on
	Line int
}

// Block is an ordered sequence of tags plus any leading description text
type Block struct {
	// Description is the untagged text before the first @tag
	Description string
	// Tags preserves source order
	Tags []Tag
	// StartLine and EndLine delimit the block for diagnostics
	StartLine int
	EndLine   int
}

// Exported reports whether the block requests export: an @export tag with an
// empty value or the word "true"
func (b *Block) Exported() bool {
	for _, tag := range b.Tags {
		if tag.Kind == TagExport {
			return tag.Value == "" || tag.Value == "true"
		}
	}
	return false
}

// Params returns the @param tags in source order
func (b *Block) Params() []Tag {
	params := make([]Tag, 0)
	for _, tag := range b.Tags {
		if tag.Kind == TagParam {
			params = append(params, tag)
		}
	}
	return params
}

// First returns the first tag of the given kind, or nil
func (b *Block) First(kind TagKind) *Tag {
	for i := range b.Tags {
		if b.Tags[i].Kind == kind {
			return &b.Tags[i]
		}
	}
	return nil
}

// ImportRef is a parsed @importFrom value: an external package plus one
// selectively imported symbol
type ImportRef struct {
	Package string
	Symbol  string
	Line    int
}

// ImportRefs returns every parsed @importFrom reference in the block.
// Malformed values are skipped; the parser has already reported them.
func (b *Block) ImportRefs() []ImportRef {
	refs := make([]ImportRef, 0)
	for _, tag := range b.Tags {
		if tag.Kind != TagImportFrom {
			continue
		}
		fields := strings.Fields(tag.Value)
		if len(fields) < 2 {
			continue
		}
		refs = append(refs, ImportRef{Package: fields[0], Symbol: fields[1], Line: tag.Line})
	}
	return refs
}

// Format is a parsed @format value describing a dataset's shape
type Format struct {
	// Container names the shape kind, e.g. "table"
	Container string
	// Rows and Cols are the parsed dimensions; valid only when HasDims
	Rows    int
	Cols    int
	HasDims bool
}

// DeclKind classifies a top-level declaration
type DeclKind string

const (
	KindFunction DeclKind = "function"
	KindDataset  DeclKind = "dataset"
	KindConstant DeclKind = "constant"
)

// Declaration is one named top-level entity in a source unit together with
// its optional annotation block
type Declaration struct {
	Name string
	Kind DeclKind
	// Block is nil when the declaration carries no annotation
	Block *Block
	// Line is the 1-indexed line of the declaration itself
	Line int
	// EndLine is the last line the declaration spans (body included)
	EndLine int
}

// Location returns the declaration's position in the given unit
func (d *Declaration) Location(path string) errors.Location {
	return errors.Location{File: path, Line: d.Line}
}

// Unit is one parsed source unit: a path plus its ordered declarations.
// Units are immutable once parsed.
type Unit struct {
	Path         string
	Declarations []*Declaration
}
