package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"guardc/internal/diagfmt"
	"guardc/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.gd>",
	Short: "Show overload groups and guard classification of a file",
	Long: `Parse prints every overload group of a .gd file with the classification of each
overload (base, analyzable with its atoms, unknown) and the derived interval.
With --tokens it dumps the token stream instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Bool("tokens", false, "print tokens instead of overload groups")
	parseCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runParse(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	tokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	opts := driver.DiagnoseOptions{MaxDiagnostics: maxDiagnostics}
	if tokens {
		opts.Stage = driver.DiagnoseStageTokenize
	}
	result, err := driver.DiagnoseFile(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	// Диагностику выводим в stderr, вывод команды остаётся в stdout
	if result.Bag.Len() > 0 {
		colored, colorErr := useColor(cmd, os.Stderr)
		if colorErr != nil {
			return colorErr
		}
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:    colored,
			Context:  2,
			PathMode: pathMode,
		})
	}

	out := cmd.OutOrStdout()
	switch {
	case tokens && format == "json":
		return diagfmt.FormatTokensJSON(out, result.Tokens)
	case tokens:
		return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case format == "json":
		return diagfmt.FormatGroupsJSON(out, result.Groups, result.FileSet, pathMode)
	default:
		return diagfmt.FormatGroupsPretty(out, result.Groups, result.FileSet, pathMode)
	}
}
