package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the file at path each time it is written or replaced, and hands the
// result to fn from the watcher goroutine. fn receives the Load error when the new
// content is invalid. Watching stops when ctx is done.
func Watch(ctx context.Context, path string, fn func(File, error)) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watch %s: %w", path, err)
	}

	// editors often replace the file, watching the directory survives renames
	if err = watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("config: watch %s: %w", path, err)
	}

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
				if filepath.Clean(event.Name) != path || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
					continue
				}
				fn(Load(path))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("config watcher error: " + err.Error())
			}
		}
	}()

	return nil
}
