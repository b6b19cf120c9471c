package preview

import (
	"os"

	"glance/internal/errors"
	"glance/pkg/types"
)

func loadDirectory(path string, size types.Size) (*Directory, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.FromOS(err, "cannot read directory", path)
	}

	limit := size.LineCap()
	if limit == 0 || limit > len(entries) {
		limit = len(entries)
	}
	names := make([]string, 0, limit)
	for _, entry := range entries[:limit] {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return &Directory{Entries: names, Total: len(entries)}, nil
}
