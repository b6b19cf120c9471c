//go:build !nogui

package gui

import (
	"context"

	"glance/internal/config"
	"glance/internal/coordinator"

	"fyne.io/fyne/v2/app"
)

const appID = "io.github.glance"

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}

// Run opens the preview window and blocks until it closes
func Run(ctx context.Context, coord *coordinator.Coordinator, cfg *config.Config) error {
	w := NewWindow(app.NewWithID(appID), coord, cfg)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			w.Close()
		case <-done:
		}
	}()

	w.Run()
	return nil
}
