// Package pipeline orchestrates a full synthesis run: scan source units,
// build the symbol table, resolve dependencies, synthesize the namespace,
// compose the manifest, and render documentation. Each run is an explicit,
// immutable context object; no process-wide state survives between runs.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/conduit-lang/synth/internal/annotation"
	"github.com/conduit-lang/synth/internal/checker"
	"github.com/conduit-lang/synth/internal/deps"
	"github.com/conduit-lang/synth/internal/docgen"
	"github.com/conduit-lang/synth/internal/errors"
	"github.com/conduit-lang/synth/internal/manifest"
	"github.com/conduit-lang/synth/internal/namespace"
	"github.com/conduit-lang/synth/internal/symbols"
)

// Options configures one synthesis run
type Options struct {
	// Root is the package root directory; its base name is the identifier
	// the manifest must match
	Root string
	// SourceDir is the source tree relative to Root (default "src")
	SourceDir string
	// Extension identifies source units (default ".u")
	Extension string
	// OutDir is where artifacts land, relative to Root (default ".")
	OutDir string
	// DocsDir is the documentation directory relative to OutDir (default "man")
	DocsDir string
	// Strict turns dangling exports and unknown package references into
	// hard errors
	Strict bool
	// Whitelist is the strict-mode package whitelist; when empty the
	// prior manifest's dependency list is used
	Whitelist []string
	// Logger receives debug-level progress; nil means no logging
	Logger *zap.Logger
}

// SourceDirPath returns the absolute-or-relative path of the source tree
func (o Options) SourceDirPath() string {
	dir := o.SourceDir
	if dir == "" {
		dir = "src"
	}
	return filepath.Join(o.Root, dir)
}

// outputRoot returns the directory artifact paths are relative to
func (o Options) outputRoot() string {
	out := o.OutDir
	if out == "" {
		out = "."
	}
	return filepath.Join(o.Root, out)
}

// Run is the immutable per-run context threaded through every stage
type Run struct {
	opts Options
	log  *zap.Logger
}

// Artifacts is the complete computed state of one run
type Artifacts struct {
	Table     *symbols.Table
	Refs      []deps.Ref
	Namespace *namespace.Descriptor
	Manifest  *manifest.Record
	// Files maps artifact paths (relative to Root) to canonical content
	Files map[string]string
	// Warnings collects every non-fatal diagnostic from all stages
	Warnings errors.List
}

// New creates a run context for the given options
func New(opts Options) *Run {
	if opts.SourceDir == "" {
		opts.SourceDir = "src"
	}
	if opts.Extension == "" {
		opts.Extension = ".u"
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Run{opts: opts, log: log}
}

// Synthesize computes the full artifact set in memory. Nothing is written.
// The returned diagnostics are fatal when non-nil: parse errors are
// collected per unit and surfaced together, structural errors abort the run.
func (r *Run) Synthesize(ctx context.Context) (*Artifacts, errors.List) {
	warnings := make(errors.List, 0)

	paths, err := r.findSourceUnits()
	if err != nil {
		return nil, errors.List{ioDiagnostic(err)}
	}
	r.log.Debug("discovered source units", zap.Int("count", len(paths)))

	units, diags := r.parseUnits(ctx, paths)
	if diags.HasErrors() {
		return nil, diags
	}
	warnings = append(warnings, diags...)

	table, diags := symbols.Build(units)
	if diags.HasErrors() {
		return nil, diags
	}
	warnings = append(warnings, diags...)
	r.log.Debug("symbol table built", zap.Int("symbols", table.Len()))

	prior := r.readPriorManifest()

	whitelist := r.opts.Whitelist
	if r.opts.Strict && len(whitelist) == 0 && prior != nil {
		whitelist = prior.DeclaredPackages()
	}
	var declared []string
	if prior != nil {
		declared = prior.DeclaredPackages()
	}

	refs, diags := deps.Resolve(table, deps.Options{
		Strict:    r.opts.Strict,
		Whitelist: whitelist,
		Declared:  declared,
	})
	if diags.HasErrors() {
		return nil, diags
	}
	warnings = append(warnings, diags...)
	r.log.Debug("dependencies resolved", zap.Int("refs", len(refs)))

	desc := namespace.Synthesize(table, refs)
	nsDiags := desc.Validate(table, r.opts.Strict)
	if nsDiags.HasErrors() {
		return nil, nsDiags
	}
	warnings = append(warnings, nsDiags...)

	record, diags := manifest.Compose(prior, filepath.Base(absRoot(r.opts.Root)), refs)
	if diags.HasErrors() {
		return nil, diags
	}

	files := docgen.NewGenerator(table).WithDir(r.opts.DocsDir).Generate()
	files[manifest.FileName] = record.Render()
	files[namespace.FileName] = desc.Render()

	return &Artifacts{
		Table:     table,
		Refs:      refs,
		Namespace: desc,
		Manifest:  record,
		Files:     files,
		Warnings:  warnings,
	}, nil
}

// Check recomputes everything in memory and diffs it against disk. Read-only.
func (r *Run) Check(ctx context.Context) (checker.Result, *Artifacts, errors.List) {
	artifacts, diags := r.Synthesize(ctx)
	if diags.HasErrors() {
		return nil, nil, diags
	}

	result, err := checker.Check(r.opts.outputRoot(), artifacts.Files)
	if err != nil {
		return nil, nil, errors.List{ioDiagnostic(err)}
	}
	return result, artifacts, nil
}

// findSourceUnits walks the source tree and returns matching paths relative
// to Root, sorted so every later stage sees a fixed order
func (r *Run) findSourceUnits() ([]string, error) {
	srcRoot := filepath.Join(r.opts.Root, r.opts.SourceDir)
	paths := make([]string, 0)

	err := filepath.WalkDir(srcRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != srcRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != r.opts.Extension {
			return nil
		}
		rel, err := filepath.Rel(r.opts.Root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("source directory %s does not exist", srcRoot)
		}
		return nil, fmt.Errorf("failed to scan source tree: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}

// parseUnits parses every unit concurrently. Results land in a slice indexed
// by discovery position, so unit order is deterministic regardless of which
// goroutine finishes first. Parse diagnostics from all units are combined
// and surfaced together.
func (r *Run) parseUnits(ctx context.Context, paths []string) ([]*annotation.Unit, errors.List) {
	units := make([]*annotation.Unit, len(paths))
	unitDiags := make([]errors.List, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, rel := range paths {
		i, rel := i, rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(filepath.Join(r.opts.Root, filepath.FromSlash(rel)))
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", rel, err)
			}
			units[i], unitDiags[i] = annotation.New(rel, string(content)).Parse()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.List{ioDiagnostic(err)}
	}

	combined := make(errors.List, 0)
	for _, diags := range unitDiags {
		combined = append(combined, diags...)
	}
	return units, combined
}

// readPriorManifest loads the MANIFEST from the output root when present,
// nil otherwise
func (r *Run) readPriorManifest() *manifest.Record {
	content, err := os.ReadFile(filepath.Join(r.opts.outputRoot(), manifest.FileName))
	if err != nil {
		return nil
	}
	return manifest.Parse(string(content))
}

// absRoot resolves the root so its base name is meaningful even for "."
func absRoot(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return root
	}
	return abs
}

// ioDiagnostic wraps a filesystem error as a diagnostic so callers handle
// one failure type
func ioDiagnostic(err error) *errors.Diagnostic {
	return &errors.Diagnostic{
		Code:     "IO001",
		Category: "io",
		Severity: errors.SeverityError,
		Subject:  "filesystem",
		Message:  err.Error(),
	}
}
