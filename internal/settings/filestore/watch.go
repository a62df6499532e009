package filestore

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/domaintint/internal/config"
	"github.com/jmylchreest/domaintint/internal/settings"
)

// watchDebounce coalesces the burst of events produced by one atomic save.
const watchDebounce = 50 * time.Millisecond

// Watch calls fn with a freshly loaded snapshot every time the settings file
// is written, replaced or removed, until ctx is cancelled. The parent
// directory is watched so atomic renames are seen. Load failures are logged
// and skipped.
func (s *Store) Watch(ctx context.Context, fn func(*settings.Settings)) error {
	if err := config.EnsureDir(s.path); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	s.logger.Debug("watching settings", "path", s.path)

	target := filepath.Clean(s.path)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			s.logger.Trace("settings event", "op", ev.Op.String())
			timer.Reset(watchDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch error", "error", err)

		case <-timer.C:
			snap, err := s.Load(ctx)
			if err != nil {
				s.logger.Warn("failed to reload settings", "path", s.path, "error", err)
				continue
			}
			fn(snap)
		}
	}
}
