package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"guardc/internal/driver"
	"guardc/internal/source"
	"guardc/internal/ui"
)

type checkOutcome struct {
	fs      *source.FileSet
	results []driver.FileResult
	err     error
}

// runCheckWithUI checks dir in the background while a Bubble Tea model renders
// the progress events on stderr.
func runCheckWithUI(cmd *cobra.Command, dir string, opts driver.DiagnoseOptions) (*source.FileSet, []driver.FileResult, error) {
	files, err := driver.ListFiles(dir, opts.Exclude)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	display := make([]string, len(files))
	for i, path := range files {
		display[i] = path
		if rel, relErr := filepath.Rel(dir, path); relErr == nil {
			display[i] = filepath.ToSlash(rel)
		}
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)
	go func() {
		reqOpts := opts
		reqOpts.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.DiagnoseDir(cmd.Context(), dir, reqOpts)
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("guardc check "+dir, display, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// модель могла выйти раньше (Ctrl+C): дочитываем события, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
