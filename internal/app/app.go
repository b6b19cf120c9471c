// Package app wires sources, the coordinator and a host together.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"glance/internal/config"
	"glance/internal/coordinator"
	"glance/internal/event"
	"glance/internal/gui"
	"glance/internal/log"
	"glance/internal/preview"
	"glance/internal/source"
	"glance/internal/tui"
)

// initialSource is the event source id of the startup path
const initialSource = "initial"

// App owns the event queue, the coordinator and every started worker
type App struct {
	cfg     *config.Config
	queue   *event.Queue
	coord   *coordinator.Coordinator
	filter  *source.Filter
	workers []*source.Worker
	stdin   io.Reader
	stdout  io.Writer
	logger  log.Logging

	usesStdin bool
}

// Option configures an App
type Option func(*App)

// WithStdin replaces os.Stdin for "-" sources
func WithStdin(r io.Reader) Option {
	return func(a *App) {
		a.stdin = r
	}
}

// WithStdout replaces os.Stdout for the plain host
func WithStdout(w io.Writer) Option {
	return func(a *App) {
		a.stdout = w
	}
}

// WithLogger sets the logger handed to every component
func WithLogger(l log.Logging) Option {
	return func(a *App) {
		a.logger = l
	}
}

// New builds an App from cfg. No source is started yet.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{
		cfg:    cfg,
		queue:  event.NewQueue(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	filter, err := source.NewFilter(cfg.Sources.Ignore)
	if err != nil {
		return nil, err
	}
	a.filter = filter

	resolver := preview.NewResolver(
		preview.WithExif(cfg.Preview.Exif),
		preview.WithLogger(a.logger),
	)
	a.coord = coordinator.New(a.queue, resolver, coordinator.WithLogger(a.logger))
	return a, nil
}

// WithPreview queues path as the first request. It does not count as a
// source, so it never keeps the process alive on its own.
func (a *App) WithPreview(path string) *App {
	if path != "" {
		a.queue.Send(event.PathRequested{Source: initialSource, Path: path})
	}
	return a
}

// WithSource starts a worker for spec and registers it with the
// coordinator. An error means the source could not be opened and was not
// registered.
func (a *App) WithSource(spec source.Spec) error {
	w, err := source.Start(spec, a.queue,
		source.WithStdin(a.stdin),
		source.WithFilter(a.filter),
		source.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}
	a.workers = append(a.workers, w)
	a.coord.AddSource()
	if spec.Kind == source.Stdin {
		a.usesStdin = true
	}
	return nil
}

// WithSources starts every spec, stopping at the first that fails
func (a *App) WithSources(specs []source.Spec) error {
	for _, spec := range specs {
		if err := a.WithSource(spec); err != nil {
			return err
		}
	}
	return nil
}

// Coordinator exposes the coordinator to hosts and tests
func (a *App) Coordinator() *coordinator.Coordinator {
	return a.coord
}

// Workers returns the started workers
func (a *App) Workers() []*source.Worker {
	return a.workers
}

// Run hands the pipeline to the configured host and blocks until it
// returns
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.logger.With(
		log.F("renderer", a.cfg.Preview.Renderer),
		log.F("sources", len(a.workers)),
	).Info("Starting previewer")

	switch a.cfg.Preview.Renderer {
	case config.RendererPlain:
		return a.RunPlain(ctx)
	case config.RendererGUI:
		return gui.Run(ctx, a.coord, a.cfg)
	case config.RendererTUI:
		return tui.Run(ctx, a.coord, a.cfg, tui.Options{InputTTY: a.usesStdin})
	default:
		return fmt.Errorf("unknown renderer %q", a.cfg.Preview.Renderer)
	}
}

// Close stops every worker that can be stopped. Stdin is left alone.
func (a *App) Close() error {
	var firstErr error
	for _, w := range a.workers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
