package preview

import (
	"os"
	"time"

	"glance/internal/errors"
	"glance/internal/log"
	"glance/pkg/types"
)

// Resolver classifies paths and loads their content
type Resolver struct {
	exif   bool
	logger log.Logging
}

// Option configures a Resolver
type Option func(*Resolver)

// WithExif toggles EXIF extraction for JPEG and TIFF images
func WithExif(enabled bool) Option {
	return func(r *Resolver) {
		r.exif = enabled
	}
}

// WithLogger sets the logger used for load diagnostics
func WithLogger(logger log.Logging) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		exif:   true,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve loads path within size. It always returns a Preview; failures
// become Error content keyed to path.
func (r *Resolver) Resolve(path string, size types.Size) *Preview {
	start := time.Now()
	content, err := r.Load(path, size)
	if err != nil {
		r.logger.With(append([]log.Field{log.F("path", path)}, log.ErrorFields(err)...)...).Warn("Preview load failed")
		content = &Error{Err: err}
	}
	r.logger.With(
		log.F("path", path),
		log.F("kind", content.Kind().String()),
		log.F("size", size.String()),
		log.F("duration", time.Since(start).String()),
	).Debug("Resolved preview")
	return New(path, content)
}

// Load classifies path and runs the matching loader:
// directories, then image/*, text/*, the octet-stream fallback (text if
// it decodes as UTF-8, binary otherwise), and Unknown for everything else.
func (r *Resolver) Load(path string, size types.Size) (Content, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.FromOS(err, "cannot access path", path)
	}
	if info.IsDir() {
		return loadDirectory(path, size)
	}

	typ, sub := GuessType(path)
	switch {
	case typ == "image":
		return r.loadImage(path, sub, size)
	case typ == "text":
		return loadText(path, size)
	case typ == "application" && sub == "octet-stream":
		ok, err := isUTF8File(path)
		if err != nil {
			return nil, err
		}
		if ok {
			return loadText(path, size)
		}
		return loadBinary(path)
	default:
		return &Unknown{MIME: typ + "/" + sub}, nil
	}
}
