package presets

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDelay = 100 * time.Millisecond

// Watch loads dir into reg and reloads it whenever a presets document in dir
// changes, until ctx is cancelled. A document that fails to load is logged
// and the previous presets stay active.
func Watch(ctx context.Context, dir string, reg *Registry, logger *zap.Logger) error {
	if reg == nil {
		return fmt.Errorf("presets: watch requires a registry")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := LoadFS(os.DirFS(dir))
	if err != nil {
		return err
	}
	reg.Replace(store)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("presets: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("presets: watch %s: %w", dir, err)
	}

	reload := time.NewTimer(reloadDelay)
	if !reload.Stop() {
		<-reload.C
	}
	defer reload.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isPresetFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			reload.Reset(reloadDelay)

		case <-reload.C:
			store, err := LoadFS(os.DirFS(dir))
			if err != nil {
				logger.Error("presets reload failed", zap.String("dir", dir), zap.Error(err))
				continue
			}
			reg.Replace(store)
			logger.Info("presets reloaded", zap.String("dir", dir), zap.Int("count", store.Len()))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("presets watcher error", zap.Error(err))
		}
	}
}
