package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"codesniff/internal/driver"
	"codesniff/internal/ui"
)

// wantProgress resolves --ui; auto draws only when stderr is a terminal,
// so the report on stdout stays clean.
func wantProgress(flag string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return isTerminal(os.Stderr), nil
	}
	return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", flag)
}

type runOutcome struct {
	results []driver.FileResult
	err     error
}

// runWithUI runs the files while a Bubble Tea program renders progress on
// stderr. The run itself is not cancelled when the UI quits early.
func runWithUI(ctx context.Context, title string, files []string, opts driver.Options) ([]driver.FileResult, error) {
	events := make(chan ui.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = func(r driver.FileResult) {
			events <- progressEvent(&r)
		}
		_, results, err := driver.RunFiles(ctx, files, optsCopy)
		outcomeCh <- runOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// программа могла выйти раньше (Ctrl+C): события больше никто не читает
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

func progressEvent(r *driver.FileResult) ui.Event {
	ev := ui.Event{Path: r.Path, Findings: r.Findings()}
	switch {
	case r.Err != nil:
		ev.Status = ui.StatusError
	case r.Unstable():
		ev.Status = ui.StatusUnstable
	case r.Fixed() != "":
		ev.Status = ui.StatusFixed
	case ev.Findings > 0:
		ev.Status = ui.StatusFindings
	default:
		ev.Status = ui.StatusClean
	}
	return ev
}
