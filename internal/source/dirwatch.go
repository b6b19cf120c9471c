package source

import (
	"fmt"
	"os"
	"path/filepath"

	"glance/internal/errors"
	"glance/internal/log"

	"github.com/fsnotify/fsnotify"
)

// dirWatcher wraps an fsnotify watcher on a single directory
type dirWatcher struct {
	dir       string
	fsWatcher *fsnotify.Watcher
}

func newDirWatcher(dir string) (*dirWatcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	return &dirWatcher{dir: filepath.Clean(dir), fsWatcher: fsWatcher}, nil
}

func (d *dirWatcher) Close() error {
	return d.fsWatcher.Close()
}

// runWatch turns file creations and writes into path requests. The
// source ends when the watcher is closed or the directory goes away.
func (w *Worker) runWatch() {
	defer w.finish()
	d := w.watcher

	for {
		select {
		case ev, ok := <-d.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) == d.dir && (ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename)) {
				w.logger.Info("Watched directory went away")
				d.Close()
				return
			}
			if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
				continue
			}
			info, err := os.Stat(ev.Name)
			if err != nil {
				// Deleted again before we looked
				if !os.IsNotExist(err) {
					w.logger.With(log.F("file", ev.Name), log.F("error", err)).Debug("Error stating file")
				}
				continue
			}
			if info.IsDir() {
				continue
			}
			w.request(ev.Name)

		case err, ok := <-d.fsWatcher.Errors:
			if !ok {
				return
			}
			w.fail(errors.NewSourceError("watch failed", w.spec.String(), errors.SourceReadFailed, err))
		}
	}
}
