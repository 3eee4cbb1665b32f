package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/synth/internal/annotation"
	"github.com/conduit-lang/synth/internal/errors"
)

func parseUnit(t *testing.T, path, source string) *annotation.Unit {
	t.Helper()
	unit, diags := annotation.New(path, source).Parse()
	require.False(t, diags.HasErrors(), "unexpected parse errors: %v", diags)
	return unit
}

func TestBuildMergesUnits(t *testing.T) {
	units := []*annotation.Unit{
		parseUnit(t, "src/math.u", "#' Adds.\n#' @export\nadd_numbers <- function(x, y) x + y\n"),
		parseUnit(t, "src/util.u", "helper <- function(a) a\n"),
	}

	table, diags := Build(units)
	require.False(t, diags.HasErrors())
	require.NotNil(t, table)
	assert.Equal(t, 2, table.Len())

	add := table.Lookup("add_numbers")
	require.NotNil(t, add)
	assert.True(t, add.Exported)
	assert.Equal(t, "Adds.", add.Doc)
	assert.Equal(t, "src/math.u", add.Unit)

	helper := table.Lookup("helper")
	require.NotNil(t, helper)
	assert.False(t, helper.Exported, "symbols without annotations are private by default")
	assert.Nil(t, helper.Block)
}

func TestDuplicateSymbolIsFatal(t *testing.T) {
	units := []*annotation.Unit{
		parseUnit(t, "src/b.u", "#' @export\nadd_numbers <- function(x, y) x + y\n"),
		parseUnit(t, "src/a.u", "#' @export\nadd_numbers <- function(p, q) p + q\n"),
	}

	table, diags := Build(units)
	assert.Nil(t, table)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, errors.CodeDuplicateSymbol, d.Code)
	assert.Equal(t, errors.SeverityError, d.Severity)
	// Units merge in sorted path order, so a.u is the first declaration
	require.NotNil(t, d.Related)
	assert.Equal(t, "src/a.u", d.Related.File)
	assert.Equal(t, "src/b.u", d.Location.File)
}

func TestDuplicateDetectionIsDeterministic(t *testing.T) {
	forward := []*annotation.Unit{
		parseUnit(t, "src/a.u", "dup <- function() 1\n"),
		parseUnit(t, "src/b.u", "dup <- function() 2\n"),
	}
	reversed := []*annotation.Unit{forward[1], forward[0]}

	_, diagsForward := Build(forward)
	_, diagsReversed := Build(reversed)

	require.Len(t, diagsForward, 1)
	require.Len(t, diagsReversed, 1)
	assert.Equal(t, diagsForward[0].Format(), diagsReversed[0].Format())
}

func TestExportRequiresExplicitTag(t *testing.T) {
	source := `#' @export true
yes_true <- function() 1

#' @export
yes_bare <- function() 2

#' @export false
no_false <- function() 3

#' Documented but private.
no_tag <- function() 4
`
	table, diags := Build([]*annotation.Unit{parseUnit(t, "src/a.u", source)})
	require.False(t, diags.HasErrors())

	assert.True(t, table.Lookup("yes_true").Exported)
	assert.True(t, table.Lookup("yes_bare").Exported)
	assert.False(t, table.Lookup("no_false").Exported)
	assert.False(t, table.Lookup("no_tag").Exported)

	exported := table.Exported()
	require.Len(t, exported, 2)
	assert.Equal(t, "yes_bare", exported[0].Name)
	assert.Equal(t, "yes_true", exported[1].Name)
}

func TestDatasetWithoutFormatWarns(t *testing.T) {
	units := []*annotation.Unit{
		parseUnit(t, "src/data.u", "#' Sample rows.\n\"raw_sample\"\n"),
	}

	table, diags := Build(units)
	require.NotNil(t, table, "missing format is a warning, not an error")
	require.Len(t, diags, 1)
	assert.Equal(t, errors.CodeMissingFormat, diags[0].Code)
	assert.Equal(t, errors.SeverityWarning, diags[0].Severity)
}

func TestNamesAreSorted(t *testing.T) {
	source := "zeta <- function() 1\n\nalpha <- function() 2\n\nBeta <- function() 3\n"
	table, _ := Build([]*annotation.Unit{parseUnit(t, "src/a.u", source)})

	assert.Equal(t, []string{"Beta", "alpha", "zeta"}, table.Names())
}
