package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/synth/internal/errors"
)

func TestParseFunctionWithBlock(t *testing.T) {
	source := `#' Add two numbers together.
#' @param x first operand
#' @param y second operand
#' @return the sum of x and y
#' @export
add_numbers <- function(x, y) {
  x + y
}
`
	unit, diags := New("src/math.u", source).Parse()
	require.Empty(t, diags)
	require.Len(t, unit.Declarations, 1)

	decl := unit.Declarations[0]
	assert.Equal(t, "add_numbers", decl.Name)
	assert.Equal(t, KindFunction, decl.Kind)
	assert.Equal(t, 6, decl.Line)
	assert.Equal(t, 8, decl.EndLine)

	require.NotNil(t, decl.Block)
	assert.Equal(t, "Add two numbers together.", decl.Block.Description)
	assert.True(t, decl.Block.Exported())

	params := decl.Block.Params()
	require.Len(t, params, 2)
	assert.Equal(t, "x first operand", params[0].Value)
	assert.Equal(t, "y second operand", params[1].Value)

	ret := decl.Block.First(TagReturn)
	require.NotNil(t, ret)
	assert.Equal(t, "the sum of x and y", ret.Value)
}

func TestParseDeclarationKinds(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   DeclKind
		symbol string
	}{
		{
			name:   "function",
			source: "helper <- function(a) a\n",
			kind:   KindFunction,
			symbol: "helper",
		},
		{
			name:   "dataset",
			source: "#' Sample measurements.\n#' @format table 150x5\n\"iris_sample\"\n",
			kind:   KindDataset,
			symbol: "iris_sample",
		},
		{
			name:   "constant",
			source: "max_iterations <- 100\n",
			kind:   KindConstant,
			symbol: "max_iterations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, diags := New("src/unit.u", tt.source).Parse()
			require.Empty(t, diags)
			require.Len(t, unit.Declarations, 1)
			assert.Equal(t, tt.symbol, unit.Declarations[0].Name)
			assert.Equal(t, tt.kind, unit.Declarations[0].Kind)
		})
	}
}

func TestBlankLineDetachesBlock(t *testing.T) {
	source := `#' Orphaned description.
#' @export

helper <- function(a) a
`
	unit, diags := New("src/unit.u", source).Parse()
	require.Len(t, unit.Declarations, 1)
	assert.Nil(t, unit.Declarations[0].Block)

	require.Len(t, diags, 1)
	assert.Equal(t, errors.CodeOrphanAnnotation, diags[0].Code)
	assert.Equal(t, errors.SeverityWarning, diags[0].Severity)
}

func TestContinuationLinesExtendTagValue(t *testing.T) {
	source := `#' @param x the first operand,
#' which may be negative
f <- function(x) x
`
	unit, diags := New("src/unit.u", source).Parse()
	require.Empty(t, diags)
	params := unit.Declarations[0].Block.Params()
	require.Len(t, params, 1)
	assert.Equal(t, "x the first operand, which may be negative", params[0].Value)
}

func TestUnrecognizedTagIsPreservedAndWarned(t *testing.T) {
	source := `#' @details internal notes
#' @export
f <- function(x) x
`
	unit, diags := New("src/unit.u", source).Parse()
	require.Len(t, diags, 1)
	assert.Equal(t, errors.CodeUnrecognizedTag, diags[0].Code)
	assert.Equal(t, errors.SeverityWarning, diags[0].Severity)

	block := unit.Declarations[0].Block
	require.Len(t, block.Tags, 2)
	assert.Equal(t, TagUnknown, block.Tags[0].Kind)
	assert.Equal(t, "details", block.Tags[0].Key)
	assert.Equal(t, "internal notes", block.Tags[0].Value)
	assert.True(t, block.Exported())
}

func TestMalformedAnnotations(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{
			name:   "importFrom missing symbol",
			source: "#' @importFrom pkgA\nf <- function(x) x\n",
		},
		{
			name:   "format with bad dimensions",
			source: "#' @format table 150by5\n\"iris_sample\"\n",
		},
		{
			name:   "empty param",
			source: "#' @param\nf <- function(x) x\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := New("src/unit.u", tt.source).Parse()
			require.Len(t, diags, 1)
			assert.Equal(t, errors.CodeMalformedAnnotation, diags[0].Code)
			assert.Equal(t, errors.SeverityError, diags[0].Severity)
		})
	}
}

func TestParseFormat(t *testing.T) {
	format, problem := ParseFormat("table 150x5")
	require.Empty(t, problem)
	assert.Equal(t, "table", format.Container)
	assert.True(t, format.HasDims)
	assert.Equal(t, 150, format.Rows)
	assert.Equal(t, 5, format.Cols)

	format, problem = ParseFormat("matrix")
	require.Empty(t, problem)
	assert.False(t, format.HasDims)

	_, problem = ParseFormat("")
	assert.NotEmpty(t, problem)
}

func TestImportRefs(t *testing.T) {
	source := `#' @importFrom pkgA foo
#' @importFrom pkgB bar
#' @export
f <- function(x) x
`
	unit, diags := New("src/unit.u", source).Parse()
	require.Empty(t, diags)

	refs := unit.Declarations[0].Block.ImportRefs()
	require.Len(t, refs, 2)
	assert.Equal(t, ImportRef{Package: "pkgA", Symbol: "foo", Line: 1}, refs[0])
	assert.Equal(t, ImportRef{Package: "pkgB", Symbol: "bar", Line: 2}, refs[1])
}

func TestNestedDeclarationsAreIgnored(t *testing.T) {
	source := `outer <- function(x) {
  inner <- function(y) y
  inner(x)
}
`
	unit, diags := New("src/unit.u", source).Parse()
	require.Empty(t, diags)
	require.Len(t, unit.Declarations, 1)
	assert.Equal(t, "outer", unit.Declarations[0].Name)
}

func TestMultipleDeclarationsPreserveOrder(t *testing.T) {
	source := `#' @export
first <- function() 1

second <- function() 2

third_value <- 3
`
	unit, diags := New("src/unit.u", source).Parse()
	require.Empty(t, diags)
	require.Len(t, unit.Declarations, 3)
	assert.Equal(t, "first", unit.Declarations[0].Name)
	assert.Equal(t, "second", unit.Declarations[1].Name)
	assert.Equal(t, "third_value", unit.Declarations[2].Name)
	assert.Nil(t, unit.Declarations[1].Block)
}
