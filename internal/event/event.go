// Package event defines the messages Source Workers send to the
// coordinator and the queue that carries them.
package event

import "fmt"

// Event is one of PathRequested, SourceFailed or SourceClosed.
// The set is closed: only this package can add variants.
type Event interface {
	// SourceID identifies the worker that produced the event
	SourceID() string
	isEvent()
}

// PathRequested asks for Path to become the current preview
type PathRequested struct {
	Source string
	Path   string
}

// SourceFailed reports a read failure; the source keeps running
type SourceFailed struct {
	Source string
	Err    error
}

// SourceClosed is sent exactly once when a source's stream ends
type SourceClosed struct {
	Source string
}

func (e PathRequested) SourceID() string { return e.Source }
func (e SourceFailed) SourceID() string  { return e.Source }
func (e SourceClosed) SourceID() string  { return e.Source }

func (PathRequested) isEvent() {}
func (SourceFailed) isEvent()  {}
func (SourceClosed) isEvent()  {}

func (e PathRequested) String() string {
	return fmt.Sprintf("PathRequested(%q)", e.Path)
}

func (e SourceFailed) String() string {
	return fmt.Sprintf("SourceFailed(%v)", e.Err)
}

func (e SourceClosed) String() string {
	return "SourceClosed"
}
