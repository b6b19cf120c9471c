package source

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"glance/internal/errors"
	"glance/internal/event"
	"glance/internal/log"

	"github.com/google/uuid"
)

// maxConsecutiveFailures bounds how long a worker keeps retrying a
// stream that fails on every read before it gives up and closes.
const maxConsecutiveFailures = 16

// Worker forwards one source's path requests to a sink. It shares nothing
// with the consumer except the sink.
type Worker struct {
	id     string
	spec   Spec
	sink   event.Sink
	filter *Filter
	logger log.Logging
	stdin  io.Reader

	mu      sync.Mutex
	file    *os.File
	watcher *dirWatcher

	closeOnce sync.Once
	done      chan struct{}
}

// Option configures a Worker
type Option func(*Worker)

// WithStdin replaces os.Stdin for Stdin sources
func WithStdin(r io.Reader) Option {
	return func(w *Worker) {
		w.stdin = r
	}
}

// WithFilter drops requests matching the filter's patterns
func WithFilter(f *Filter) Option {
	return func(w *Worker) {
		w.filter = f
	}
}

// WithLogger sets the worker's logger
func WithLogger(l log.Logging) Option {
	return func(w *Worker) {
		w.logger = l
	}
}

// Start validates spec, opens what can be opened without blocking and
// runs the worker in its own goroutine. A returned error means the source
// never started and will send no events.
//
// FIFOs are opened inside the goroutine because opening one blocks until
// a writer appears; a failure there is reported as SourceFailed followed
// by SourceClosed.
func Start(spec Spec, sink event.Sink, opts ...Option) (*Worker, error) {
	w := &Worker{
		id:     uuid.NewString(),
		spec:   spec,
		sink:   sink,
		stdin:  os.Stdin,
		logger: log.Default(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With(log.F("source", spec.String()), log.F("source_id", w.id))

	switch spec.Kind {
	case Stdin:
		go w.run(func() (io.Reader, error) { return w.stdin, nil })
	case Stream:
		info, err := os.Stat(spec.Location)
		if err != nil {
			return nil, errors.NewSourceError("cannot open source", spec.String(), errors.SourceOpenFailed, err)
		}
		if info.IsDir() {
			return nil, errors.NewSourceError("source is a directory", spec.String(), errors.SourceOpenFailed, nil)
		}
		if info.Mode()&os.ModeNamedPipe == 0 {
			f, err := os.Open(spec.Location)
			if err != nil {
				return nil, errors.NewSourceError("cannot open source", spec.String(), errors.SourceOpenFailed, err)
			}
			w.setFile(f)
			go w.run(func() (io.Reader, error) { return f, nil })
		} else {
			go w.run(w.openFIFO)
		}
	case Watch:
		dw, err := newDirWatcher(spec.Location)
		if err != nil {
			return nil, errors.NewSourceError("cannot watch directory", spec.String(), errors.SourceOpenFailed, err)
		}
		w.watcher = dw
		go w.runWatch()
	default:
		return nil, errors.NewSourceError("unsupported source kind", spec.String(), errors.SourceOpenFailed, nil)
	}

	w.logger.Info("Source started")
	return w, nil
}

// ID returns the worker's unique id, used as event.Source
func (w *Worker) ID() string {
	return w.id
}

// Spec returns the source specification
func (w *Worker) Spec() Spec {
	return w.spec
}

// Done is closed after the worker has sent SourceClosed
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Close stops stream and watch workers early; they still send their
// SourceClosed. Stdin is not owned by the worker and is left open.
func (w *Worker) Close() error {
	var err error
	w.closeOnce.Do(func() {
		if w.watcher != nil {
			err = w.watcher.Close()
		}
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.file != nil {
			if cerr := w.file.Close(); cerr != nil && err == nil {
				err = cerr
			}
			w.file = nil
		}
	})
	return err
}

func (w *Worker) openFIFO() (io.Reader, error) {
	f, err := os.Open(w.spec.Location)
	if err != nil {
		return nil, err
	}
	w.setFile(f)
	return f, nil
}

func (w *Worker) setFile(f *os.File) {
	w.mu.Lock()
	w.file = f
	w.mu.Unlock()
}

func (w *Worker) run(open func() (io.Reader, error)) {
	defer w.finish()

	r, err := open()
	if err != nil {
		w.fail(errors.NewSourceError("cannot open source", w.spec.String(), errors.SourceOpenFailed, err))
		return
	}
	w.readLines(r)
}

// readLines forwards every line until end of stream. Read errors are
// reported and reading continues; only a run of maxConsecutiveFailures
// errors ends the source early.
func (w *Worker) readLines(r io.Reader) {
	br := bufio.NewReader(r)
	failures := 0
	for {
		line, err := br.ReadString('\n')
		switch {
		case err == nil || err == io.EOF:
			if line != "" {
				w.forward(line)
			}
			if err == io.EOF {
				w.logger.Debug("Source reached end of stream")
				return
			}
			failures = 0
		case errors.Is(err, os.ErrClosed):
			w.logger.Debug("Source closed while reading")
			return
		default:
			w.fail(errors.NewSourceError("read failed", w.spec.String(), errors.SourceReadFailed, err))
			failures++
			if failures >= maxConsecutiveFailures {
				w.logger.With(log.F("failures", failures)).Error("Giving up on failing source")
				return
			}
		}
	}
}

func (w *Worker) forward(line string) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if !utf8.ValidString(line) {
		w.fail(errors.NewSourceError("path request is not valid UTF-8", w.spec.String(), errors.SourceReadFailed, nil))
		return
	}
	w.request(line)
}

func (w *Worker) request(path string) {
	if w.filter.Ignored(path) {
		w.logger.With(log.F("path", path)).Debug("Ignoring path request")
		return
	}
	w.sink.Send(event.PathRequested{Source: w.id, Path: path})
}

func (w *Worker) fail(err error) {
	w.logger.With(log.ErrorFields(err)...).Warn("Source failure")
	w.sink.Send(event.SourceFailed{Source: w.id, Err: err})
}

// finish sends the one SourceClosed every worker owes the coordinator
func (w *Worker) finish() {
	w.mu.Lock()
	if w.file != nil {
		_ = w.file.Close()
		w.file = nil
	}
	w.mu.Unlock()
	w.sink.Send(event.SourceClosed{Source: w.id})
	w.logger.Info("Source closed")
	close(w.done)
}
