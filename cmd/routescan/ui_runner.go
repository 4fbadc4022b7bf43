package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"routescan/internal/driver"
	"routescan/internal/ui"
)

type scanOutcome struct {
	batch *driver.Batch
	err   error
}

// runScanWithUI runs the project scan while a Bubble Tea view renders the
// progress events on stderr.
func runScanWithUI(ctx context.Context, title string, project driver.Project, opts driver.Options) (*driver.Batch, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		batch, _, err := driver.ScanProject(ctx, project, opts)
		outcomeCh <- scanOutcome{batch: batch, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()

	// the view is gone; an interrupted scan is cancelled and its remaining
	// events drained so workers never block on the channel
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if outcome.err != nil {
		return nil, outcome.err
	}
	return outcome.batch, uiErr
}
