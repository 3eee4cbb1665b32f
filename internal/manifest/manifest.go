// Package manifest composes and validates the canonical package manifest:
// user-supplied identity metadata merged with the computed dependency list.
// The composer is the only writer of the MANIFEST artifact; hand edits are
// surfaced as drift by the consistency checker.
package manifest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/conduit-lang/synth/internal/deps"
	"github.com/conduit-lang/synth/internal/errors"
)

// FileName is the on-disk name of the manifest artifact
const FileName = "MANIFEST"

var (
	identifierRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._-]*$`)
	versionRe    = regexp.MustCompile(`^\d+\.\d+\.\d+(\.\d+)?$`)
)

// Record is the canonical manifest: required identity fields plus the
// computed dependency list. Recomputed wholesale on every run.
type Record struct {
	Identifier string
	Version    string
	Title      string
	License    string
	// Dependencies is the full computed ref list; the rendered Imports
	// field carries the deduplicated package names
	Dependencies []deps.Ref
}

// Defaults returns the starting record used when no prior manifest exists
func Defaults(rootName string) *Record {
	return &Record{
		Identifier: rootName,
		Version:    "0.1.0",
		Title:      rootName,
		License:    "Unlicensed",
	}
}

// Parse reads a prior manifest in Key: value form. Unknown keys are ignored
// so older tools can add fields without breaking newer runs.
func Parse(text string) *Record {
	rec := &Record{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "Identifier":
			rec.Identifier = value
		case "Version":
			rec.Version = value
		case "Title":
			rec.Title = value
		case "License":
			rec.License = value
		case "Imports":
			for _, pkg := range strings.Split(value, ",") {
				pkg = strings.TrimSpace(pkg)
				if pkg != "" {
					rec.Dependencies = append(rec.Dependencies, deps.Ref{Package: pkg})
				}
			}
		}
	}
	return rec
}

// DeclaredPackages returns the whole-package dependency names already
// recorded in the manifest, for feeding back into dependency resolution
func (r *Record) DeclaredPackages() []string {
	pkgs := make([]string, 0, len(r.Dependencies))
	for _, ref := range r.Dependencies {
		if ref.Symbol == "" {
			pkgs = append(pkgs, ref.Package)
		}
	}
	return pkgs
}

// Compose merges prior user metadata (or defaults when prior is nil) with the
// computed dependency refs and validates the result. The returned list holds
// at most one diagnostic: validation short-circuits at the first failing
// field category so error reporting stays deterministic.
func Compose(prior *Record, rootName string, refs []deps.Ref) (*Record, errors.List) {
	rec := Defaults(rootName)
	if prior != nil {
		if prior.Identifier != "" {
			rec.Identifier = prior.Identifier
		}
		if prior.Version != "" {
			rec.Version = prior.Version
		}
		if prior.Title != "" {
			rec.Title = prior.Title
		}
		if prior.License != "" {
			rec.License = prior.License
		}
	}
	rec.Dependencies = refs

	if diag := rec.validate(rootName); diag != nil {
		return nil, errors.List{diag}
	}
	return rec, nil
}

// validate checks field categories in order: identifier, version, license,
// dependency list. Exhaustive within a category, short-circuits across them.
func (r *Record) validate(rootName string) *errors.Diagnostic {
	if !identifierRe.MatchString(r.Identifier) {
		return errors.NewInvalidManifestField("identifier",
			fmt.Sprintf("'%s' is not a valid package identifier", r.Identifier))
	}
	if r.Identifier != rootName {
		return errors.NewInvalidManifestField("identifier",
			fmt.Sprintf("'%s' does not match the package directory name '%s'", r.Identifier, rootName))
	}

	if !versionRe.MatchString(r.Version) {
		return errors.NewInvalidManifestField("version",
			fmt.Sprintf("'%s' must have three or four numeric components like 1.2.3", r.Version))
	}

	if strings.TrimSpace(r.License) == "" {
		return errors.NewInvalidManifestField("license", "must not be empty")
	}

	for _, ref := range r.Dependencies {
		if !identifierRe.MatchString(ref.Package) {
			return errors.NewInvalidManifestField("imports",
				fmt.Sprintf("'%s' is not a valid package name", ref.Package))
		}
	}

	return nil
}

// Render returns the canonical manifest text with a stable field order, so
// repeated runs with unchanged input produce byte-identical output
func (r *Record) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Identifier: %s\n", r.Identifier)
	fmt.Fprintf(&b, "Version: %s\n", r.Version)
	fmt.Fprintf(&b, "Title: %s\n", r.Title)
	fmt.Fprintf(&b, "License: %s\n", r.License)

	pkgs := deps.Packages(r.Dependencies)
	sort.Strings(pkgs)
	if len(pkgs) > 0 {
		fmt.Fprintf(&b, "Imports: %s\n", strings.Join(pkgs, ", "))
	}

	return b.String()
}
