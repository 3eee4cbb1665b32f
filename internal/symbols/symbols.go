// Package symbols builds the whole-tree symbol table from parsed source
// units. One record exists per documentable entity; names are unique across
// the entire tree and a duplicate declaration is a hard error.
package symbols

import (
	"sort"

	"github.com/conduit-lang/synth/internal/annotation"
	"github.com/conduit-lang/synth/internal/errors"
)

// Record is the derived view of one declaration plus its annotation block
type Record struct {
	// Name is the unique symbol name
	Name string
	// Kind is the declaration kind
	Kind annotation.DeclKind
	// Exported reports whether the annotation requested export
	Exported bool
	// Doc is the leading description text from the block, "" when absent
	Doc string
	// Block is the attached annotation block, nil when absent
	Block *annotation.Block
	// Unit is the path of the declaring source unit
	Unit string
	// Line is the declaration line within the unit
	Line int
	// Order is the merge position, used as a stable ordering tie-break
	Order int
}

// Location returns the record's source position for diagnostics
func (r *Record) Location() errors.Location {
	return errors.Location{File: r.Unit, Line: r.Line}
}

// Table maps symbol names to records. It is immutable after Build returns.
type Table struct {
	records map[string]*Record
	ordered []*Record
}

// Lookup returns the record for a name, or nil
func (t *Table) Lookup(name string) *Record {
	return t.records[name]
}

// Len returns the number of records
func (t *Table) Len() int {
	return len(t.ordered)
}

// All returns every record in merge order (unit path, then declaration order)
func (t *Table) All() []*Record {
	return t.ordered
}

// Names returns every symbol name sorted lexicographically (case-sensitive)
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.ordered))
	for _, rec := range t.ordered {
		names = append(names, rec.Name)
	}
	sort.Strings(names)
	return names
}

// Exported returns every exported record, sorted by name with merge order as
// the tie-break. Names are unique so the tie-break is defensive only.
func (t *Table) Exported() []*Record {
	exported := make([]*Record, 0)
	for _, rec := range t.ordered {
		if rec.Exported {
			exported = append(exported, rec)
		}
	}
	sort.SliceStable(exported, func(i, j int) bool {
		if exported[i].Name != exported[j].Name {
			return exported[i].Name < exported[j].Name
		}
		return exported[i].Order < exported[j].Order
	})
	return exported
}

// Build merges all declarations across all units into one table. Units are
// merged in sorted path order so duplicate-detection messages are
// reproducible regardless of directory walk order.
//
// Duplicate names are fatal: every collision is reported, with both
// locations, and no table is returned.
func Build(units []*annotation.Unit) (*Table, errors.List) {
	sorted := make([]*annotation.Unit, len(units))
	copy(sorted, units)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	table := &Table{
		records: make(map[string]*Record),
		ordered: make([]*Record, 0),
	}
	diags := make(errors.List, 0)

	order := 0
	for _, unit := range sorted {
		for _, decl := range unit.Declarations {
			if existing, ok := table.records[decl.Name]; ok {
				diags = append(diags, errors.NewDuplicateSymbol(
					decl.Name, existing.Location(), decl.Location(unit.Path)))
				continue
			}

			rec := &Record{
				Name:  decl.Name,
				Kind:  decl.Kind,
				Unit:  unit.Path,
				Line:  decl.Line,
				Order: order,
			}
			order++

			if decl.Block != nil {
				rec.Block = decl.Block
				rec.Doc = decl.Block.Description
				rec.Exported = decl.Block.Exported()
			}

			if decl.Kind == annotation.KindDataset {
				if rec.Block == nil || rec.Block.First(annotation.TagFormat) == nil {
					diags = append(diags, errors.NewMissingFormat(decl.Name, decl.Location(unit.Path)))
				}
			}

			table.records[decl.Name] = rec
			table.ordered = append(table.ordered, rec)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return table, diags
}
