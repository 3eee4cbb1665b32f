// Package docgen renders one markdown documentation page per documentable
// symbol, resolving cross-references against the full symbol table.
// Generation is independent of export status: unexported symbols get pages
// too, marked internal, since an author may want internal notes.
package docgen

import (
	"fmt"
	"path"
	"strings"

	"github.com/conduit-lang/synth/internal/annotation"
	"github.com/conduit-lang/synth/internal/symbols"
)

// DocsDir is the default directory artifacts are generated under, relative
// to the package root
const DocsDir = "man"

// Generator renders documentation pages from the symbol table
type Generator struct {
	table *symbols.Table
	dir   string
}

// NewGenerator creates a documentation generator over the given table
func NewGenerator(table *symbols.Table) *Generator {
	return &Generator{table: table, dir: DocsDir}
}

// WithDir overrides the docs directory. An empty dir keeps the default.
func (g *Generator) WithDir(dir string) *Generator {
	if dir != "" {
		g.dir = dir
	}
	return g
}

// Generate renders every symbol's page and returns a map from artifact path
// (relative to the package root) to canonical content. Pure function of the
// table; the caller owns all writes.
func (g *Generator) Generate() map[string]string {
	pages := make(map[string]string, g.table.Len())
	for _, rec := range g.table.All() {
		pages[g.pagePath(rec.Name)] = g.renderSymbol(rec)
	}
	return pages
}

// pagePath returns the artifact path for a symbol name
func (g *Generator) pagePath(name string) string {
	return path.Join(g.dir, name+".md")
}

// renderSymbol renders one documentation page
func (g *Generator) renderSymbol(rec *symbols.Record) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "# %s\n\n", rec.Name)

	if !rec.Exported {
		buf.WriteString("**Internal.** This symbol is not part of the exported namespace.\n\n")
	}

	fmt.Fprintf(&buf, "**Kind:** %s\n\n", rec.Kind)

	if rec.Doc != "" {
		fmt.Fprintf(&buf, "> %s\n\n", g.linkify(rec.Doc, rec.Name))
	}

	if rec.Block == nil {
		buf.WriteString("No documentation block attached.\n")
		return buf.String()
	}

	g.writeParams(&buf, rec)
	g.writeReturn(&buf, rec)
	g.writeFormat(&buf, rec)
	g.writeSource(&buf, rec)

	return buf.String()
}

// writeParams renders the parameter table in source order
func (g *Generator) writeParams(buf *strings.Builder, rec *symbols.Record) {
	params := rec.Block.Params()
	if len(params) == 0 {
		return
	}

	buf.WriteString("## Parameters\n\n")
	buf.WriteString("| Name | Description |\n")
	buf.WriteString("|------|-------------|\n")
	for _, param := range params {
		name, desc := splitParam(param.Value)
		if desc == "" {
			desc = "-"
		}
		fmt.Fprintf(buf, "| `%s` | %s |\n", name, g.linkify(desc, rec.Name))
	}
	buf.WriteString("\n")
}

// writeReturn renders the return description; functions only
func (g *Generator) writeReturn(buf *strings.Builder, rec *symbols.Record) {
	if rec.Kind != annotation.KindFunction {
		return
	}
	ret := rec.Block.First(annotation.TagReturn)
	if ret == nil || ret.Value == "" {
		return
	}
	buf.WriteString("## Returns\n\n")
	fmt.Fprintf(buf, "%s\n\n", g.linkify(ret.Value, rec.Name))
}

// writeFormat renders the shape description; datasets only
func (g *Generator) writeFormat(buf *strings.Builder, rec *symbols.Record) {
	if rec.Kind != annotation.KindDataset {
		return
	}
	tag := rec.Block.First(annotation.TagFormat)
	if tag == nil {
		return
	}
	format, problem := annotation.ParseFormat(tag.Value)
	if problem != "" {
		return
	}

	buf.WriteString("## Format\n\n")
	if format.HasDims {
		fmt.Fprintf(buf, "A %s with %d rows and %d columns.\n\n", format.Container, format.Rows, format.Cols)
	} else {
		fmt.Fprintf(buf, "A %s.\n\n", format.Container)
	}
}

// writeSource renders the provenance line when present
func (g *Generator) writeSource(buf *strings.Builder, rec *symbols.Record) {
	src := rec.Block.First(annotation.TagSource)
	if src == nil || src.Value == "" {
		return
	}
	buf.WriteString("## Source\n\n")
	fmt.Fprintf(buf, "%s\n", src.Value)
}

// linkify replaces whole-word occurrences of other known symbol names with
// markdown links to their pages. Apparent references that resolve to nothing
// are left as plain text; linkification never fails a build.
func (g *Generator) linkify(text, self string) string {
	var b strings.Builder
	i := 0
	for i < len(text) {
		c := text[i]
		if !isWordStart(c) {
			b.WriteByte(c)
			i++
			continue
		}

		j := i + 1
		for j < len(text) && isWordByte(text[j]) {
			j++
		}
		word := text[i:j]
		// Sentence punctuation is not part of a reference
		for len(word) > 0 && word[len(word)-1] == '.' {
			word = word[:len(word)-1]
			j--
		}

		if word != self && g.table.Lookup(word) != nil {
			fmt.Fprintf(&b, "[%s](%s.md)", word, word)
		} else {
			b.WriteString(word)
		}
		i = j
	}
	return b.String()
}

// splitParam splits a @param value into the parameter name and description
func splitParam(value string) (string, string) {
	idx := strings.IndexAny(value, " \t")
	if idx < 0 {
		return value, ""
	}
	return value[:idx], strings.TrimSpace(value[idx+1:])
}

func isWordStart(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_'
}

func isWordByte(c byte) bool {
	return isWordStart(c) || c >= '0' && c <= '9' || c == '.'
}
