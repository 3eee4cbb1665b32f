// Package namespace computes the canonical export/import descriptor for a
// package: which symbol names are visible externally and which external
// symbols are pulled in. The descriptor is the single source of the
// NAMESPACE artifact; editing that file by hand shows up as drift.
package namespace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conduit-lang/synth/internal/deps"
	"github.com/conduit-lang/synth/internal/errors"
	"github.com/conduit-lang/synth/internal/symbols"
)

// FileName is the on-disk name of the namespace artifact
const FileName = "NAMESPACE"

// header is written at the top of the artifact so hand edits are discouraged
const header = "# Generated by synth: do not edit by hand\n"

// Descriptor is the computed namespace: two deduplicated, sorted lists
type Descriptor struct {
	// ExportedNames are the symbol names flagged for export, sorted
	ExportedNames []string
	// ImportedRefs are the selective external imports, sorted by package
	// then symbol
	ImportedRefs []deps.Ref
}

// Synthesize derives the descriptor from the symbol table and resolved
// dependency refs. Pure derivation: no I/O, no mutation of inputs.
func Synthesize(table *symbols.Table, refs []deps.Ref) *Descriptor {
	exported := table.Exported()
	names := make([]string, 0, len(exported))
	for _, rec := range exported {
		names = append(names, rec.Name)
	}

	imported := deps.Selective(refs)
	sorted := make([]deps.Ref, len(imported))
	copy(sorted, imported)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Package != sorted[j].Package {
			return sorted[i].Package < sorted[j].Package
		}
		return sorted[i].Symbol < sorted[j].Symbol
	})

	return &Descriptor{ExportedNames: names, ImportedRefs: sorted}
}

// Validate checks that every exported name corresponds to exactly one symbol
// record. Exports are derived from the table so this can only fire when a
// descriptor is constructed out-of-band; kept as a defensive invariant.
func (d *Descriptor) Validate(table *symbols.Table, strict bool) errors.List {
	diags := make(errors.List, 0)
	for _, name := range d.ExportedNames {
		if table.Lookup(name) == nil {
			diags = append(diags, errors.NewDanglingExport(name, strict, errors.Location{File: FileName}))
		}
	}
	return diags
}

// Render returns the canonical namespace file text: one directive per line,
// exports first, then selective imports, each group sorted. Byte-identical
// across runs with unchanged input.
func (d *Descriptor) Render() string {
	var b strings.Builder
	b.WriteString(header)

	for _, name := range d.ExportedNames {
		fmt.Fprintf(&b, "export(%s)\n", name)
	}
	for _, ref := range d.ImportedRefs {
		fmt.Fprintf(&b, "importFrom(%s,%s)\n", ref.Package, ref.Symbol)
	}

	return b.String()
}
