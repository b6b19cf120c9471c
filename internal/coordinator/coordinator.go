// Package coordinator owns the current preview request. Once per tick it
// drains the event queue, decides whether a reload is due and counts
// closing sources down to termination.
package coordinator

import (
	"time"

	"glance/internal/event"
	"glance/internal/log"
	"glance/internal/preview"
	"glance/pkg/types"
)

// Resolver loads a path into a preview. It must always return a preview,
// folding failures into Error content.
type Resolver interface {
	Resolve(path string, size types.Size) *preview.Preview
}

// Outcome describes what one tick did
type Outcome struct {
	// Reloaded is set when a path request installed a new preview
	Reloaded bool
	// Failed is set when a source failure installed an Error preview
	Failed bool
	// Closed is set when the drain stopped at a SourceClosed
	Closed bool
	// Quit is set once the last live source has closed
	Quit bool
}

// Changed reports whether the current preview was replaced
func (o Outcome) Changed() bool {
	return o.Reloaded || o.Failed
}

// Coordinator is driven by a single host loop and is not safe for
// concurrent use. Only its queue is shared with the source workers.
type Coordinator struct {
	queue    *event.Queue
	resolver Resolver
	slots    preview.Slots
	live     int
	done     bool
	logger   log.Logging
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithLogger sets the coordinator's logger
func WithLogger(l log.Logging) Option {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// New creates a coordinator draining queue
func New(queue *event.Queue, resolver Resolver, opts ...Option) *Coordinator {
	c := &Coordinator{
		queue:    queue,
		resolver: resolver,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddSource registers one more live source. Call it for every worker that
// started, before the first tick that could observe its SourceClosed.
func (c *Coordinator) AddSource() {
	c.live++
}

// LiveSources returns the number of sources that have not closed yet
func (c *Coordinator) LiveSources() int {
	return c.live
}

// Done reports whether every registered source has closed
func (c *Coordinator) Done() bool {
	return c.done
}

// Current returns the preview to draw, or nil before the first load
func (c *Coordinator) Current() *preview.Preview {
	return c.slots.Current()
}

// Previous returns the preview that Current replaced
func (c *Coordinator) Previous() *preview.Preview {
	return c.slots.Previous()
}

// Pending returns the number of events waiting for the next tick
func (c *Coordinator) Pending() int {
	return c.queue.Len()
}

// Tick drains the queue and applies the result. size is only called when
// a reload is actually needed.
//
// Only the latest path request or failure drained in this pass is acted
// on. Draining stops at the first SourceClosed; events queued behind it
// wait for the next tick. A request seen before the closure is still
// applied before the live count drops.
func (c *Coordinator) Tick(size func() types.Size) Outcome {
	var out Outcome
	if c.done {
		out.Quit = true
		return out
	}

	var latest event.Event
	drained := 0
drain:
	for {
		ev, ok := c.queue.TryRecv()
		if !ok {
			break
		}
		drained++
		switch ev.(type) {
		case event.PathRequested, event.SourceFailed:
			latest = ev
		case event.SourceClosed:
			out.Closed = true
			break drain
		}
	}
	if drained == 0 {
		return out
	}

	switch ev := latest.(type) {
	case event.PathRequested:
		out.Reloaded = c.request(ev.Path, size)
	case event.SourceFailed:
		c.logger.With(log.F("source_id", ev.Source)).Debug("Showing source failure")
		c.slots.Install(preview.NewError(ev.Err))
		out.Failed = true
	}

	if out.Closed {
		c.live--
		c.logger.With(log.F("live_sources", c.live)).Debug("Source closed")
		if c.live <= 0 {
			c.live = 0
			c.done = true
			out.Quit = true
			c.logger.Info("All sources closed")
		}
	}
	return out
}

func (c *Coordinator) request(path string, size func() types.Size) bool {
	if current, ok := c.slots.CurrentPath(); ok && current == path {
		return false
	}
	var sz types.Size
	if size != nil {
		sz = size()
	}
	c.logger.With(log.F("path", path), log.F("size", sz.String())).Debug("Reloading preview")
	c.slots.Install(c.resolver.Resolve(path, sz))
	return true
}

// Wait blocks until an event is queued or idle elapses, whichever comes
// first. Hosts call it between ticks instead of spinning.
func (c *Coordinator) Wait(idle time.Duration) {
	if c.queue.Len() > 0 {
		return
	}
	timer := time.NewTimer(idle)
	defer timer.Stop()
	select {
	case <-c.queue.Ready():
	case <-timer.C:
	}
}
