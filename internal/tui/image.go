package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
)

const upperHalfBlock = "▀"

// halfBlocks draws img into at most cols x rows cells. Every cell shows
// two vertically stacked pixels: the upper one as foreground, the lower
// one as background. Images are shrunk to fit but never enlarged.
func halfBlocks(img image.Image, cols, rows int) []string {
	if img == nil || cols <= 0 || rows <= 0 {
		return nil
	}
	b := img.Bounds()
	if b.Empty() {
		return nil
	}

	scaled := img
	if b.Dx() > cols || b.Dy() > rows*2 {
		scaled = resize.Thumbnail(uint(cols), uint(rows*2), img, resize.Bilinear)
	}
	sb := scaled.Bounds()

	lines := make([]string, 0, (sb.Dy()+1)/2)
	for y := sb.Min.Y; y < sb.Max.Y; y += 2 {
		var line strings.Builder
		for x := sb.Min.X; x < sb.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(scaled.At(x, y)))
			if y+1 < sb.Max.Y {
				style = style.Background(hexColor(scaled.At(x, y+1)))
			}
			line.WriteString(style.Render(upperHalfBlock))
		}
		lines = append(lines, line.String())
	}
	return lines
}

// hexColor flattens c onto black
func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
