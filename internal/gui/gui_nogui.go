//go:build nogui

package gui

import (
	"context"

	"glance/internal/config"
	"glance/internal/coordinator"
	"glance/internal/errors"
)

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}

// Run is a stub for builds with the GUI disabled
func Run(ctx context.Context, coord *coordinator.Coordinator, cfg *config.Config) error {
	return errors.New("GUI not available in this build; use --ui tui or --ui plain")
}
