package types

import "fmt"

// Size is the drawing area a host can offer a preview, in the host's own
// units: terminal cells for the TUI, device independent pixels for the
// GUI. Height doubles as the line cap for text-like previews. The zero
// Size means "no size supplied".
type Size struct {
	Width  int
	Height int
}

// NewSize returns a Size, clamping negative dimensions to zero
func NewSize(width, height int) Size {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Size{Width: width, Height: height}
}

// IsZero reports whether no usable size was supplied
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// LineCap returns the number of lines a text-like preview may hold.
// Zero means unbounded.
func (s Size) LineCap() int {
	if s.Height <= 0 {
		return 0
	}
	return s.Height
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
