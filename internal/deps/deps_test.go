package deps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/synth/internal/annotation"
	"github.com/conduit-lang/synth/internal/errors"
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

func TestResolveDeduplicatesAndSorts(t *testing.T) {
	table := buildTable(t, map[string]string{
		"src/a.u": "#' @importFrom pkgB zip\n#' @importFrom pkgA foo\nf <- function() 1\n",
		"src/b.u": "#' @importFrom pkgA foo\n#' @importFrom pkgA bar\ng <- function() 2\n",
	})

	refs, diags := Resolve(table, Options{})
	require.False(t, diags.HasErrors())
	assert.Equal(t, []Ref{
		{Package: "pkgA", Symbol: "bar"},
		{Package: "pkgA", Symbol: "foo"},
		{Package: "pkgB", Symbol: "zip"},
	}, refs)
}

func TestResolveIncludesDeclaredDependencies(t *testing.T) {
	table := buildTable(t, map[string]string{
		"src/a.u": "#' @importFrom pkgB zip\nf <- function() 1\n",
	})

	refs, diags := Resolve(table, Options{Declared: []string{"pkgC", "pkgA"}})
	require.False(t, diags.HasErrors())
	assert.Equal(t, []Ref{
		{Package: "pkgA"},
		{Package: "pkgB", Symbol: "zip"},
		{Package: "pkgC"},
	}, refs)
	assert.Equal(t, []string{"pkgA", "pkgB", "pkgC"}, Packages(refs))
}

func TestStrictModeRejectsUnknownPackages(t *testing.T) {
	table := buildTable(t, map[string]string{
		"src/a.u": "#' @importFrom mystery foo\nf <- function() 1\n",
	})

	refs, diags := Resolve(table, Options{Strict: true, Whitelist: []string{"pkgA"}})
	assert.Nil(t, refs)
	require.Len(t, diags, 1)
	assert.Equal(t, errors.CodeUnknownPackage, diags[0].Code)
	assert.Equal(t, errors.SeverityError, diags[0].Severity)
	assert.Equal(t, "mystery", diags[0].Subject)
}

func TestOpenWorldAcceptsUnknownPackages(t *testing.T) {
	table := buildTable(t, map[string]string{
		"src/a.u": "#' @importFrom mystery foo\nf <- function() 1\n",
	})

	refs, diags := Resolve(table, Options{})
	require.Empty(t, diags)
	assert.Equal(t, []Ref{{Package: "mystery", Symbol: "foo"}}, refs)
}

func TestStrictModeAcceptsWhitelistedPackages(t *testing.T) {
	table := buildTable(t, map[string]string{
		"src/a.u": "#' @importFrom pkgA foo\nf <- function() 1\n",
	})

	refs, diags := Resolve(table, Options{Strict: true, Whitelist: []string{"pkgA"}})
	require.False(t, diags.HasErrors())
	assert.Len(t, refs, 1)
}

func TestSelectiveFiltersWholePackageRefs(t *testing.T) {
	refs := []Ref{
		{Package: "pkgA"},
		{Package: "pkgA", Symbol: "foo"},
		{Package: "pkgB"},
	}
	assert.Equal(t, []Ref{{Package: "pkgA", Symbol: "foo"}}, Selective(refs))
}
