package preview

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"
	"strings"

	"glance/internal/errors"
	"glance/internal/log"
	"glance/pkg/types"

	"github.com/klauspost/compress/gzip"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// defaultVectorSize is used when an SVG has no usable viewBox
	defaultVectorSize = 256
	// maxVectorSide bounds rasterization so a bogus viewBox cannot
	// allocate an enormous buffer
	maxVectorSide = 8192
	// maxVectorBytes caps the inflated size of a compressed SVG
	maxVectorBytes = 32 << 20
)

var gzipMagic = []byte{0x1f, 0x8b}

func init() {
	exif.RegisterParsers(mknote.All...)
}

func (r *Resolver) loadImage(path, subtype string, size types.Size) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FromOS(err, "cannot read image", path)
	}

	if strings.HasPrefix(subtype, "svg") {
		if bytes.HasPrefix(data, gzipMagic) {
			if data, err = inflate(data); err != nil {
				return nil, errors.NewFileError("cannot inflate svgz", path, errors.DecodeFailed, err)
			}
		}
		pixels, err := rasterizeSVG(data, size)
		if err != nil {
			return nil, errors.NewFileError("cannot render svg", path, errors.DecodeFailed, err)
		}
		return &Image{Pixels: pixels, Format: "svg", Vector: true}, nil
	}

	pixels, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewFileError("cannot decode image", path, errors.DecodeFailed, err)
	}
	img := &Image{Pixels: pixels, Format: format}
	if r.exif && (format == "jpeg" || format == "tiff") {
		img.Meta = readExif(data, r.logger.With(log.F("path", path)))
	}
	return img, nil
}

// rasterizeSVG renders at the largest size that fits the available area
// while keeping the aspect ratio, or at the intrinsic viewBox size when
// no area is supplied.
func rasterizeSVG(data []byte, size types.Size) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, err
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		vw, vh = defaultVectorSize, defaultVectorSize
	}
	w, h := vw, vh
	if !size.IsZero() {
		scale := math.Min(float64(size.Width)/vw, float64(size.Height)/vh)
		w, h = vw*scale, vh*scale
	}
	width := clampSide(w)
	height := clampSide(h)

	icon.SetTarget(0, 0, float64(width), float64(height))
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

// inflate unpacks an svgz document
func inflate(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, maxVectorBytes+1))
	if err != nil {
		return nil, err
	}
	if len(out) > maxVectorBytes {
		return nil, fmt.Errorf("inflated svg exceeds %d bytes", maxVectorBytes)
	}
	return out, nil
}

func clampSide(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	if n > maxVectorSide {
		return maxVectorSide
	}
	return n
}

var exifFields = []struct {
	label string
	name  exif.FieldName
}{
	{"Camera", exif.Model},
	{"Make", exif.Make},
	{"Taken", exif.DateTimeOriginal},
}

func readExif(data []byte, logger log.Logging) []string {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Debugf("No EXIF data: %v", err)
		return nil
	}
	var meta []string
	for _, field := range exifFields {
		tag, err := x.Get(field.name)
		if err != nil {
			continue
		}
		if v, err := tag.StringVal(); err == nil && v != "" {
			meta = append(meta, field.label+": "+strings.TrimSpace(v))
		}
	}
	return meta
}
