package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/conduit-lang/synth/internal/errors"
)

// Generate runs the full pipeline and writes every artifact atomically. All
// content is staged into a temporary directory first and renamed into place
// only after every stage has succeeded, so a failing run never leaves the
// on-disk state inconsistent.
func (r *Run) Generate(ctx context.Context) (*Artifacts, errors.List) {
	artifacts, diags := r.Synthesize(ctx)
	if diags.HasErrors() {
		return nil, diags
	}

	if err := r.writeArtifacts(artifacts.Files); err != nil {
		return nil, errors.List{ioDiagnostic(err)}
	}

	r.log.Debug("artifacts written", zap.Int("count", len(artifacts.Files)))
	return artifacts, nil
}

// writeArtifacts stages every file under a run-scoped temp directory and
// then renames each into its final location. The temp directory lives on
// the same filesystem as the destination so renames stay atomic.
func (r *Run) writeArtifacts(files map[string]string) error {
	outRoot := r.opts.outputRoot()
	stageDir := filepath.Join(outRoot, ".synth-stage-"+uuid.NewString())
	if err := os.MkdirAll(stageDir, 0755); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stageDir)

	// Stage everything first; any failure aborts before a single
	// destination file is touched
	for rel, content := range files {
		staged := filepath.Join(stageDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(staged), 0755); err != nil {
			return fmt.Errorf("failed to stage %s: %w", rel, err)
		}
		if err := os.WriteFile(staged, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to stage %s: %w", rel, err)
		}
	}

	for rel := range files {
		staged := filepath.Join(stageDir, filepath.FromSlash(rel))
		final := filepath.Join(outRoot, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(final), 0755); err != nil {
			return fmt.Errorf("failed to place %s: %w", rel, err)
		}
		if err := os.Rename(staged, final); err != nil {
			return fmt.Errorf("failed to place %s: %w", rel, err)
		}
	}

	return nil
}
