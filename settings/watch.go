package settings

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the settings file whenever it changes and delivers each
// successful reload to onChange. Malformed intermediate writes are logged
// and skipped. Watch returns after installing the watcher; it stops when the
// context is cancelled.
//
// The brain snapshots settings at construction, so a reload affects the
// next brain built from them, not clients already running.
func Watch(ctx context.Context, path string, onChange func(*Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory rather than the file: editors replace files on
	// save, which would otherwise drop the watch.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	base := filepath.Base(path)

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				reloaded, err := Load(path)
				if err != nil {
					slog.Warn("settings reload failed",
						slog.String("path", path),
						slog.Any("error", err))
					continue
				}
				slog.Debug("settings reloaded", slog.String("path", path))
				onChange(reloaded)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("settings watcher error", slog.Any("error", err))
			}
		}
	}()

	return nil
}
