package preview

import (
	"image"
	"io/fs"
	"time"
)

// Kind classifies what a path turned out to contain
type Kind int

const (
	KindUnknown Kind = iota
	KindDirectory
	KindText
	KindImage
	KindBinary
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindBinary:
		return "binary"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Content is the loaded payload of a preview. The variants below are the
// complete set; each has exactly one loader.
type Content interface {
	Kind() Kind
	isContent()
}

// Releaser is implemented by contents that hold large buffers. The slot
// manager calls Release when a preview leaves the previous slot.
type Releaser interface {
	Release()
}

// Directory lists entry names in name order, capped to the line budget.
// Sub-directories carry a trailing slash.
type Directory struct {
	Entries []string
	Total   int
}

// Text holds the first lines of a file in file order
type Text struct {
	Lines     []string
	Truncated bool
}

// Image holds a decoded or rasterized pixel buffer
type Image struct {
	Pixels image.Image
	Format string
	Vector bool
	Meta   []string
}

// Binary is a metadata-only summary of a file that is not text
type Binary struct {
	Size     int64
	ReadOnly bool
	Mode     fs.FileMode
	ModTime  time.Time
	MIME     string
}

// Unknown is a file whose guessed type has no loader
type Unknown struct {
	MIME string
}

// Error carries a load or source failure
type Error struct {
	Err error
}

func (*Directory) Kind() Kind { return KindDirectory }
func (*Text) Kind() Kind      { return KindText }
func (*Image) Kind() Kind     { return KindImage }
func (*Binary) Kind() Kind    { return KindBinary }
func (*Unknown) Kind() Kind   { return KindUnknown }
func (*Error) Kind() Kind     { return KindError }

func (*Directory) isContent() {}
func (*Text) isContent()      {}
func (*Image) isContent()     {}
func (*Binary) isContent()    {}
func (*Unknown) isContent()   {}
func (*Error) isContent()     {}

// Release drops the pixel buffer
func (i *Image) Release() {
	i.Pixels = nil
}

// Bounds returns the pixel dimensions, or the zero rectangle once released
func (i *Image) Bounds() image.Rectangle {
	if i.Pixels == nil {
		return image.Rectangle{}
	}
	return i.Pixels.Bounds()
}
