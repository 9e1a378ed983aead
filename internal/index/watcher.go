package index

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/therapynotes/internal/storage"
	"github.com/starford/therapynotes/internal/store"
)

// ChangeCallback is called once per changed collection key after the
// index has been brought up to date.
type ChangeCallback func(key string)

// Watch starts an fsnotify watcher on the data directory and processes
// collection-file changes until ctx is cancelled. Changes are debounced
// so that a burst of writes triggers one pass. When the clients
// collection changed, the session index is resynced before cb fires.
// Edits made by another process (or a restored backup) show up here.
func Watch(ctx context.Context, db *DB, p storage.Provider, dataDir string, logger *slog.Logger, cb ChangeCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dataDir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("dir", dataDir))

	pending := make(map[string]struct{})
	var flushTimer *time.Timer
	var flushCh <-chan time.Time

	scheduleFlush := func() {
		if flushTimer == nil {
			flushTimer = time.NewTimer(200 * time.Millisecond)
			flushCh = flushTimer.C
		} else {
			flushTimer.Reset(200 * time.Millisecond)
		}
	}

	flush := func() {
		if _, ok := pending[store.KeyClients]; ok {
			if err := Sync(db, p, logger); err != nil {
				logger.Warn("watcher: resync failed", slog.String("error", err.Error()))
			}
		}
		for key := range pending {
			logger.Debug("watcher: collection changed", slog.String("key", key))
			if cb != nil {
				cb(key)
			}
			delete(pending, key)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if flushTimer != nil {
				flushTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-flushCh:
			flush()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			// Atomic writes land as a rename onto the key file; temp
			// files never map to a key.
			key, ok := storage.KeyFromFile(ev.Name)
			if !ok {
				continue
			}
			pending[key] = struct{}{}
			scheduleFlush()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
