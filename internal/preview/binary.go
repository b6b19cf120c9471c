package preview

import (
	"os"

	"glance/internal/errors"

	"github.com/gabriel-vasile/mimetype"
)

// loadBinary summarises file metadata. The sniffed MIME type is best
// effort and left empty when detection fails.
func loadBinary(path string) (*Binary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.FromOS(err, "cannot stat file", path)
	}

	b := &Binary{
		Size:     info.Size(),
		ReadOnly: info.Mode().Perm()&0222 == 0,
		Mode:     info.Mode(),
		ModTime:  info.ModTime(),
	}
	if m, err := mimetype.DetectFile(path); err == nil {
		b.MIME = m.String()
	}
	return b, nil
}
