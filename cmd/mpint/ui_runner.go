package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"mpint/internal/check"
	"mpint/internal/ui"
)

type checkOutcome struct {
	report check.Report
	err    error
}

func runCheckWithUI(ctx context.Context, title string, opts check.Options) (check.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan check.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		report, err := check.Run(ctx, opts, check.ChannelSink{Ch: events})
		outcomeCh <- checkOutcome{report: report, err: err}
		close(events)
	}()

	props := opts.Properties
	if len(props) == 0 {
		props = check.AllProperties()
	}
	model := ui.NewProgressModel(title, props, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	final, uiErr := program.Run()
	if uiErr != nil || ui.Interrupted(final) {
		cancel()
	}
	// Keep the runner from blocking on a model that stopped reading.
	go func() {
		for range events {
		}
	}()

	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.report, uiErr
	}
	if ui.Interrupted(final) && outcome.err == nil {
		outcome.err = context.Canceled
	}
	return outcome.report, outcome.err
}
