package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"glance/internal/render"
	"glance/pkg/types"

	"golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// RunPlain is the headless host: it prints every newly installed preview
// to stdout. It returns once all sources have closed, or right after the
// initial preview when there are no sources.
func (a *App) RunPlain(ctx context.Context) error {
	size := func() types.Size { return terminalSize(a.stdout) }
	idle := a.cfg.IdleInterval()

	for {
		out := a.coord.Tick(size)
		if out.Changed() {
			block := render.Layout(a.coord.Current(), size())
			if _, err := fmt.Fprint(a.stdout, block.Text()); err != nil {
				return err
			}
		}
		if out.Quit {
			return nil
		}
		if a.coord.LiveSources() == 0 && a.coord.Pending() == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}
		a.coord.Wait(idle)
	}
}

// terminalSize measures w when it is a terminal, falling back to 80x24.
// The first line of the area is taken by the heading.
func terminalSize(w io.Writer) types.Size {
	width, height := fallbackWidth, fallbackHeight
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			width, height = tw, th
		}
	}
	return types.NewSize(width, height-1)
}
