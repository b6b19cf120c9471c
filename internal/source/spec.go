// Package source runs the input workers that turn line-oriented streams
// and directory activity into path-request events.
package source

import (
	"fmt"
	"strings"

	"glance/internal/errors"
)

// Kind is the type of an input source
type Kind int

const (
	// Stdin reads the process's standard input
	Stdin Kind = iota
	// Stream reads a named long-lived stream such as a FIFO
	Stream
	// Watch reports files created or written in a directory
	Watch
)

const watchPrefix = "watch:"

func (k Kind) String() string {
	switch k {
	case Stdin:
		return "stdin"
	case Stream:
		return "stream"
	case Watch:
		return "watch"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Spec identifies one input source
type Spec struct {
	Kind     Kind
	Location string
}

// ParseSpec parses the command-line form of a source: "-" for stdin,
// "watch:DIR" for a directory watch and anything else as a stream path.
func ParseSpec(s string) (Spec, error) {
	switch {
	case s == "":
		return Spec{}, errors.NewSourceError("empty source specification", "", errors.InvalidPath, nil)
	case s == "-":
		return Spec{Kind: Stdin}, nil
	case strings.HasPrefix(s, watchPrefix):
		dir := strings.TrimPrefix(s, watchPrefix)
		if dir == "" {
			return Spec{}, errors.NewSourceError("watch source needs a directory", s, errors.InvalidPath, nil)
		}
		return Spec{Kind: Watch, Location: dir}, nil
	default:
		return Spec{Kind: Stream, Location: s}, nil
	}
}

// ParseSpecs parses every entry, stopping at the first invalid one
func ParseSpecs(raw []string) ([]Spec, error) {
	specs := make([]Spec, 0, len(raw))
	for _, s := range raw {
		spec, err := ParseSpec(s)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// String returns the command-line form of the spec
func (s Spec) String() string {
	switch s.Kind {
	case Stdin:
		return "-"
	case Watch:
		return watchPrefix + s.Location
	default:
		return s.Location
	}
}
