package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"guardc/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a guard.toml manifest",
	Long: `Initialize a guardc project by writing guard.toml with the default check settings.
If [path] is omitted, initializes the current directory; a missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	manifestPath, err := project.WriteDefault(target)
	if err != nil {
		return err
	}

	dir := filepath.Dir(manifestPath)
	if wd, err := os.Getwd(); err == nil {
		if rel, relErr := filepath.Rel(wd, dir); relErr == nil {
			dir = rel
		}
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized guardc project in %s\n", dir)
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", project.ManifestName)
	}
	return nil
}
