//go:build !windows

package logging

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"syscall"
)

var logDirWarnOnce sync.Once

// ensureLogDir creates dir as 0700 when missing. An existing default dir
// that others can read is tightened when we own it; an explicit override is
// only warned about.
func ensureLogDir(dir string, isOverride bool) error {
	if dir == "" || dir == "." {
		return nil
	}
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("logging: create log dir: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("logging: stat log dir: %w", err)
	case !info.IsDir():
		return fmt.Errorf("logging: log dir %q is not a directory", dir)
	}
	perm := info.Mode().Perm()
	if perm&0o077 == 0 {
		return nil
	}
	if !isOverride && ownedByCurrentUser(info) {
		if err := os.Chmod(dir, 0o700); err != nil {
			return fmt.Errorf("logging: chmod log dir: %w", err)
		}
		return nil
	}
	logDirWarnOnce.Do(func() {
		slog.Warn("log dir is group/world accessible; permissions unchanged", slog.String("path", dir), slog.String("mode", perm.String()))
	})
	return nil
}

func ownedByCurrentUser(info os.FileInfo) bool {
	stat, ok := info.Sys().(*syscall.Stat_t)
	return ok && stat.Uid == uint32(os.Getuid())
}
