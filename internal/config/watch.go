package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/regenrek/peakydock/internal/userpath"
)

const DefaultWatchDebounce = 150 * time.Millisecond

// Watch calls fn with the reloaded config whenever path changes, until ctx is
// done. The parent directory is watched so editors that replace the file on
// save are seen too. Bursts of events within debounce collapse into one
// reload. Reload errors are passed to fn with the zero Config.
func Watch(ctx context.Context, path string, debounce time.Duration, fn func(Config, error)) error {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watch: %w", err)
	}
	path = filepath.Clean(userpath.ExpandUser(path))
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("config: watch %q: %w", filepath.Dir(path), err)
	}
	go watchLoop(ctx, watcher, path, debounce, fn)
	return nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, debounce time.Duration, fn func(Config, error)) {
	defer func() { _ = watcher.Close() }()
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config: watch error", slog.Any("err", err))
		case <-timer.C:
			cfg, err := Load(path)
			if err != nil {
				slog.Warn("config: reload failed", slog.String("path", path), slog.Any("err", err))
				fn(Config{}, err)
				continue
			}
			slog.Info("config: reloaded", slog.String("path", path))
			fn(cfg, nil)
		}
	}
}
