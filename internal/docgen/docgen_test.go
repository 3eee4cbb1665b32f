package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/synth/internal/annotation"
	"github.com/conduit-lang/synth/internal/symbols"
)

func buildTable(t *testing.T, sources map[string]string) *symbols.Table {
	t.Helper()
	units := make([]*annotation.Unit, 0, len(sources))
	for path, source := range sources {
		unit, diags := annotation.New(path, source).Parse()
		require.False(t, diags.HasErrors())
		units = append(units, unit)
	}
	table, diags := symbols.Build(units)
	require.False(t, diags.HasErrors())
	return table
}

func TestGenerateFunctionPage(t *testing.T) {
	table := buildTable(t, map[string]string{
		"src/math.u": `#' Add two numbers together.
#' @param x first operand
#' @param y second operand
#' @return the sum of x and y
#' @export
add_numbers <- function(x, y) x + y
`,
	})

	pages := NewGenerator(table).Generate()
	page, ok := pages["man/add_numbers.md"]
	require.True(t, ok)

	assert.Contains(t, page, "# add_numbers\n")
	assert.Contains(t, page, "**Kind:** function")
	assert.Contains(t, page, "> Add two numbers together.")
	assert.Contains(t, page, "| `x` | first operand |")
	assert.Contains(t, page, "| `y` | second operand |")
	assert.Contains(t, page, "## Returns\n\nthe sum of x and y")
	assert.NotContains(t, page, "**Internal.**")
}

func TestUnexportedSymbolIsMarkedInternal(t *testing.T) {
	table := buildTable(t, map[string]string{
		"src/util.u": "helper <- function(a) a\n",
	})

	pages := NewGenerator(table).Generate()
	page, ok := pages["man/helper.md"]
	require.True(t, ok, "symbols without annotations still get internal pages")
	assert.Contains(t, page, "**Internal.**")
	assert.Contains(t, page, "No documentation block attached.")
}

func TestDatasetPageRendersFormatAndSource(t *testing.T) {
	table := buildTable(t, map[string]string{
		"src/data.u": `#' Flower measurements.
#' @format table 150x5
#' @source collected in the greenhouse
#' @export
"iris_sample"
`,
	})

	pages := NewGenerator(table).Generate()
	page := pages["man/iris_sample.md"]
	assert.Contains(t, page, "**Kind:** dataset")
	assert.Contains(t, page, "## Format\n\nA table with 150 rows and 5 columns.")
	assert.Contains(t, page, "## Source\n\ncollected in the greenhouse")
	assert.NotContains(t, page, "## Returns", "datasets have no return section")
}

func TestCrossReferencesResolveAgainstTable(t *testing.T) {
	table := buildTable(t, map[string]string{
		"src/a.u": `#' Wrapper around add_numbers for scaling.
#' @export
scale_sum <- function(x) x

#' @export
add_numbers <- function(x, y) x + y
`,
	})

	pages := NewGenerator(table).Generate()
	page := pages["man/scale_sum.md"]
	assert.Contains(t, page, "[add_numbers](add_numbers.md)")
}

func TestUnresolvedReferencesStayPlain(t *testing.T) {
	table := buildTable(t, map[string]string{
		"src/a.u": "#' Similar to missing_helper elsewhere.\n#' @export\nf <- function(x) x\n",
	})

	page := NewGenerator(table).Generate()["man/f.md"]
	assert.Contains(t, page, "missing_helper")
	assert.NotContains(t, page, "[missing_helper]")
}

func TestSelfReferencesAreNotLinked(t *testing.T) {
	table := buildTable(t, map[string]string{
		"src/a.u": "#' Calls twice itself when asked.\n#' @export\ntwice <- function(x) x\n",
	})

	page := NewGenerator(table).Generate()["man/twice.md"]
	assert.NotContains(t, page, "[twice](twice.md)")
}

func TestReferenceAtSentenceEnd(t *testing.T) {
	table := buildTable(t, map[string]string{
		"src/a.u": `#' See also add_numbers.
#' @export
g <- function(x) x

add_numbers <- function(x, y) x + y
`,
	})

	page := NewGenerator(table).Generate()["man/g.md"]
	assert.Contains(t, page, "[add_numbers](add_numbers.md).")
}

func TestGenerateIsDeterministic(t *testing.T) {
	sources := map[string]string{
		"src/a.u": "#' @export\nf <- function(x) x\n",
		"src/b.u": "g <- function(x) x\n",
	}
	first := NewGenerator(buildTable(t, sources)).Generate()
	second := NewGenerator(buildTable(t, sources)).Generate()
	assert.Equal(t, first, second)
}
