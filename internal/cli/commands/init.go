package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/synth/internal/cli/ui"
	"github.com/conduit-lang/synth/internal/manifest"
)

var (
	initDefaults bool
	initForce    bool
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Scaffold a new package manifest and source tree",
		Long: `Create a starter MANIFEST and src/ directory for a new package.

Prompts interactively for the package metadata; --defaults skips the prompts
and uses the directory name with stock values.

Examples:
  synth init
  synth init ./mypkg
  synth init --defaults`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}

	cmd.Flags().BoolVar(&initDefaults, "defaults", false, "Skip prompts and use default metadata")
	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing MANIFEST")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	rootName := filepath.Base(abs)

	manifestPath := filepath.Join(root, manifest.FileName)
	if _, err := os.Stat(manifestPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", manifestPath)
	}

	rec := manifest.Defaults(rootName)
	if !initDefaults {
		if err := promptMetadata(rec); err != nil {
			return err
		}
	}

	// Validate the same way generate will, so a bad identifier fails now
	// rather than on the first run
	composed, diags := manifest.Compose(rec, rootName, nil)
	if diags.HasErrors() {
		ui.PrintDiagnostics(cmd.ErrOrStderr(), diags)
		return &exitStatus{exitError}
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(root, "src"), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, []byte(composed.Render()), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgCyan)
	successColor.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", manifestPath)
	infoColor.Fprintln(cmd.OutOrStdout(), "Add annotated source units under src/ and run 'synth generate'")
	return nil
}

// promptMetadata fills the record interactively
func promptMetadata(rec *manifest.Record) error {
	identifier := &survey.Input{
		Message: "Package identifier:",
		Default: rec.Identifier,
		Help:    "Must match the package directory name",
	}
	if err := survey.AskOne(identifier, &rec.Identifier, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	version := &survey.Input{
		Message: "Version:",
		Default: rec.Version,
		Help:    "Three or four numeric components, like 1.2.3",
	}
	if err := survey.AskOne(version, &rec.Version, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	title := &survey.Input{
		Message: "Title:",
		Default: rec.Title,
	}
	if err := survey.AskOne(title, &rec.Title); err != nil {
		return err
	}

	license := &survey.Select{
		Message: "License:",
		Options: []string{"MIT", "Apache-2.0", "GPL-3.0", "BSD-3-Clause", "Unlicensed"},
		Default: "MIT",
	}
	if err := survey.AskOne(license, &rec.License); err != nil {
		return err
	}

	return nil
}
