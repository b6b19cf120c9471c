// Package render lays a preview out as a heading, label lines and an
// optional image. Every host draws the same Block in its own toolkit.
package render

import (
	"fmt"
	"image"
	"strings"

	"glance/internal/preview"
	"glance/pkg/types"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// Block is what a host draws for one preview
type Block struct {
	Heading string
	Kind    preview.Kind
	Lines   []string
	Image   image.Image
}

// Empty reports whether there is nothing to draw
func (b Block) Empty() bool {
	return b.Heading == "" && len(b.Lines) == 0 && b.Image == nil
}

// Layout converts the borrowed preview into a Block for the given area.
// The returned Block shares no mutable state with p except the image,
// which must not be retained past the current draw.
func Layout(p *preview.Preview, size types.Size) Block {
	if p == nil || p.Content == nil {
		return Block{}
	}
	b := Block{Heading: p.Path, Kind: p.Kind()}

	switch c := p.Content.(type) {
	case *preview.Directory:
		b.Lines = append(b.Lines, c.Entries...)
		if hidden := c.Total - len(c.Entries); hidden > 0 {
			b.Lines = append(b.Lines, fmt.Sprintf("… %d more", hidden))
		}
		if len(c.Entries) == 0 {
			b.Lines = append(b.Lines, "(empty directory)")
		}
	case *preview.Text:
		b.Lines = c.Lines
	case *preview.Image:
		b.Image = c.Pixels
		bounds := c.Bounds()
		info := fmt.Sprintf("%s %dx%d", c.Format, bounds.Dx(), bounds.Dy())
		if c.Vector {
			info += " (rasterized)"
		}
		b.Lines = append([]string{info}, c.Meta...)
	case *preview.Binary:
		b.Lines = BinarySummary(c)
	case *preview.Unknown:
		b.Lines = []string{"Unsupported content type: " + c.MIME}
	case *preview.Error:
		b.Lines = ErrorLines(c.Err, size)
	}
	return b
}

// BinarySummary returns the label lines for a binary file
func BinarySummary(c *preview.Binary) []string {
	readOnly := "no"
	if c.ReadOnly {
		readOnly = "yes"
	}
	lines := []string{
		fmt.Sprintf("Size: %s (%d bytes)", humanize.IBytes(uint64(c.Size)), c.Size),
		"Read-only: " + readOnly,
		"Mode: " + c.Mode.String(),
	}
	if !c.ModTime.IsZero() {
		lines = append(lines, fmt.Sprintf("Modified: %s (%s)", c.ModTime.Format("2006-01-02 15:04:05"), humanize.Time(c.ModTime)))
	}
	if c.MIME != "" {
		lines = append(lines, "Type: "+c.MIME)
	}
	return lines
}

// ErrorLines wraps the error text to the available width and caps it to
// the available height
func ErrorLines(err error, size types.Size) []string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	var lines []string
	for _, l := range strings.Split(msg, "\n") {
		if size.Width > 0 {
			l = runewidth.Wrap(l, size.Width)
		}
		lines = append(lines, strings.Split(l, "\n")...)
	}
	if limit := size.LineCap(); limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return lines
}

// Text joins heading and lines the way the plain host prints them
func (b Block) Text() string {
	if b.Empty() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("== " + b.Heading + " ==\n")
	for _, l := range b.Lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}
