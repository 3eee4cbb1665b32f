// Package deps aggregates external package references declared across all
// annotation blocks and manifest metadata into one deduplicated, sorted
// dependency list.
package deps

import (
	"sort"

	"github.com/conduit-lang/synth/internal/errors"
	"github.com/conduit-lang/synth/internal/symbols"
)

// Ref is one external dependency reference. Symbol is empty for
// whole-package dependencies declared in the manifest and non-empty for
// selective @importFrom references.
type Ref struct {
	Package string
	Symbol  string
}

// Options controls resolution behavior
type Options struct {
	// Strict rejects packages absent from Whitelist. The default is
	// open-world: unknown packages are accepted and recorded.
	Strict bool
	// Whitelist is the set of known packages consulted in strict mode,
	// typically a previously accepted dependency list
	Whitelist []string
	// Declared is the manifest-level dependency list (package names)
	Declared []string
}

// Resolve unions selective imports from every annotation block with the
// manifest-declared dependencies, dedupes by (package, symbol), and sorts
// lexicographically by package then symbol.
func Resolve(table *symbols.Table, opts Options) ([]Ref, errors.List) {
	diags := make(errors.List, 0)
	seen := make(map[Ref]bool)
	refs := make([]Ref, 0)

	known := make(map[string]bool, len(opts.Whitelist))
	for _, pkg := range opts.Whitelist {
		known[pkg] = true
	}
	flagged := make(map[string]bool)

	add := func(ref Ref, loc errors.Location) {
		if seen[ref] {
			return
		}
		seen[ref] = true
		refs = append(refs, ref)

		if opts.Strict && !known[ref.Package] && !flagged[ref.Package] {
			flagged[ref.Package] = true
			diags = append(diags, errors.NewUnknownPackageReference(ref.Package, true, loc))
		}
	}

	for _, pkg := range opts.Declared {
		add(Ref{Package: pkg}, errors.Location{File: "MANIFEST"})
	}

	for _, rec := range table.All() {
		if rec.Block == nil {
			continue
		}
		for _, imp := range rec.Block.ImportRefs() {
			add(Ref{Package: imp.Package, Symbol: imp.Symbol},
				errors.Location{File: rec.Unit, Line: imp.Line})
		}
	}

	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Package != refs[j].Package {
			return refs[i].Package < refs[j].Package
		}
		return refs[i].Symbol < refs[j].Symbol
	})

	if diags.HasErrors() {
		return nil, diags
	}
	return refs, diags
}

// Packages returns the sorted unique package names across the refs
func Packages(refs []Ref) []string {
	seen := make(map[string]bool)
	pkgs := make([]string, 0)
	for _, ref := range refs {
		if !seen[ref.Package] {
			seen[ref.Package] = true
			pkgs = append(pkgs, ref.Package)
		}
	}
	sort.Strings(pkgs)
	return pkgs
}

// Selective returns only the refs carrying a selective import symbol, in
// their existing order
func Selective(refs []Ref) []Ref {
	selective := make([]Ref, 0)
	for _, ref := range refs {
		if ref.Symbol != "" {
			selective = append(selective, ref)
		}
	}
	return selective
}
