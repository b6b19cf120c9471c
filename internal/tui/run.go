package tui

import (
	"context"

	"glance/internal/config"
	"glance/internal/coordinator"
	"glance/internal/errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Options tune how the program talks to the terminal
type Options struct {
	// InputTTY reads keys from the controlling terminal instead of stdin,
	// which is needed when stdin is itself a path source
	InputTTY bool
	// AltScreen draws on the alternate screen buffer
	AltScreen bool
}

// Run blocks until every source has closed, the user quits or ctx is
// cancelled
func Run(ctx context.Context, coord *coordinator.Coordinator, cfg *config.Config, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.InputTTY {
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(New(coord, cfg), progOpts...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return errors.Wrap(err, "error running TUI")
	}
	return nil
}
