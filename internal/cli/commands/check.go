package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/synth/internal/cli/ui"
	"github.com/conduit-lang/synth/internal/pipeline"
)

var (
	checkSrcDir  string
	checkExt     string
	checkOut     string
	checkStrict  bool
	checkVerbose bool
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Report drift between computed and on-disk artifacts",
		Long: `Recompute the full artifact set in memory and compare it byte-for-byte
against the files on disk. Nothing is ever written.

Exit codes:
  0  all artifacts up to date
  1  drift detected (an artifact would be created or updated)
  2  hard error (diagnostics on standard error)

Examples:
  synth check
  synth check ./mypkg --strict`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}

	cmd.Flags().StringVar(&checkSrcDir, "src", "", "Source directory relative to the package root (default from synth.yml)")
	cmd.Flags().StringVar(&checkExt, "ext", "", "Source unit extension (default from synth.yml)")
	cmd.Flags().StringVar(&checkOut, "out", "", "Output directory relative to the package root (default from synth.yml)")
	cmd.Flags().BoolVar(&checkStrict, "strict", false, "Treat unknown packages and dangling exports as errors")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd, args, checkSrcDir, checkExt, checkOut, checkStrict, checkVerbose)
	if err != nil {
		return err
	}

	result, artifacts, diags := pipeline.New(opts).Check(cmd.Context())
	if diags.HasErrors() {
		ui.PrintDiagnostics(cmd.ErrOrStderr(), diags)
		return &exitStatus{exitError}
	}

	if artifacts.Warnings.HasWarnings() {
		ui.PrintDiagnostics(cmd.ErrOrStderr(), artifacts.Warnings)
	}

	ui.PrintDriftReport(cmd.OutOrStdout(), result)

	if result.Drift() {
		color.New(color.FgYellow, color.Bold).
			Fprintln(cmd.OutOrStdout(), "Drift detected: run 'synth generate' to refresh artifacts")
		return &exitStatus{exitDrift}
	}

	color.New(color.FgGreen, color.Bold).
		Fprintln(cmd.OutOrStdout(), "✓ All artifacts up to date")
	return nil
}
