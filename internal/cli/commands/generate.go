package commands

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/synth/internal/cli/config"
	"github.com/conduit-lang/synth/internal/cli/ui"
	"github.com/conduit-lang/synth/internal/pipeline"
	"github.com/conduit-lang/synth/internal/watch"
)

var (
	generateSrcDir  string
	generateExt     string
	generateOut     string
	generateStrict  bool
	generateVerbose bool
	generateWatch   bool
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [path]",
		Short: "Synthesize and write all package artifacts",
		Long: `Scan the source tree, compute the manifest, namespace, and documentation
set, and write every artifact atomically.

Nothing is written unless every stage succeeds: a validation failure leaves
the on-disk artifacts exactly as they were.

Exit codes:
  0  artifacts written
  2  validation or hard error (diagnostics on standard error)

Examples:
  synth generate
  synth generate ./mypkg
  synth generate --strict
  synth generate --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().StringVar(&generateSrcDir, "src", "", "Source directory relative to the package root (default from synth.yml)")
	cmd.Flags().StringVar(&generateExt, "ext", "", "Source unit extension (default from synth.yml)")
	cmd.Flags().StringVar(&generateOut, "out", "", "Output directory relative to the package root (default from synth.yml)")
	cmd.Flags().BoolVar(&generateStrict, "strict", false, "Treat unknown packages and dangling exports as errors")
	cmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Watch for changes and regenerate")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd, args, generateSrcDir, generateExt, generateOut, generateStrict, generateVerbose)
	if err != nil {
		return err
	}
	run := pipeline.New(opts)

	if err := generateOnce(cmd, run); err != nil {
		return err
	}

	if generateWatch {
		return watchAndRegenerate(cmd, run, opts)
	}
	return nil
}

// generateOnce runs one full generation pass and reports the outcome
func generateOnce(cmd *cobra.Command, run *pipeline.Run) error {
	successColor := color.New(color.FgGreen, color.Bold)

	startTime := time.Now()
	artifacts, diags := run.Generate(cmd.Context())
	if diags.HasErrors() {
		ui.PrintDiagnostics(cmd.ErrOrStderr(), diags)
		return &exitStatus{exitError}
	}

	if artifacts.Warnings.HasWarnings() {
		ui.PrintDiagnostics(cmd.ErrOrStderr(), artifacts.Warnings)
	}

	successColor.Fprintf(cmd.OutOrStdout(), "✓ Generated %d artifacts in %v\n",
		len(artifacts.Files), time.Since(startTime).Round(time.Millisecond))
	return nil
}

// watchAndRegenerate blocks, regenerating after every settled change burst
func watchAndRegenerate(cmd *cobra.Command, run *pipeline.Run, opts pipeline.Options) error {
	infoColor := color.New(color.FgCyan)
	errorColor := color.New(color.FgRed, color.Bold)

	watcher, err := watch.NewSourceWatcher(
		opts.SourceDirPath(),
		opts.Extension,
		opts.Logger,
		func(files []string) error {
			infoColor.Fprintf(cmd.OutOrStdout(), "Change detected: %d files\n", len(files))
			if err := generateOnce(cmd, run); err != nil {
				errorColor.Fprintln(cmd.ErrOrStderr(), "Regeneration failed")
			}
			return nil
		},
	)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		return err
	}

	infoColor.Fprintln(cmd.OutOrStdout(), "Watching for changes...")
	<-cmd.Context().Done()
	return nil
}

// buildOptions loads synth.yml for the package root and applies flag
// overrides on top
func buildOptions(cmd *cobra.Command, args []string, srcDir, ext, out string, strict, verbose bool) (pipeline.Options, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := config.Load(root)
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Root:      root,
		SourceDir: cfg.Source.Dir,
		Extension: cfg.Source.Ext,
		OutDir:    cfg.Output.Dir,
		DocsDir:   cfg.Output.DocsDir,
		Strict:    cfg.Strict.Enabled || strict,
		Whitelist: cfg.Strict.Whitelist,
	}
	if srcDir != "" {
		opts.SourceDir = srcDir
	}
	if ext != "" {
		opts.Extension = ext
	}
	if out != "" {
		opts.OutDir = out
	}
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Logger = logger
	}

	return opts, nil
}
