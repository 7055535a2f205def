package logging

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// everyLimiter remembers when each key last logged. It forgets the oldest
// keys once it holds more than maxKeys.
type everyLimiter struct {
	mu      sync.Mutex
	last    map[string]time.Time
	maxKeys int
}

var limiter = &everyLimiter{last: map[string]time.Time{}, maxKeys: 1024}

// LogEvery emits a log entry at most once per interval for a key. Hot paths
// such as pointer motion use it to stay quiet.
func LogEvery(ctx context.Context, key string, interval time.Duration, level slog.Level, msg string, attrs ...slog.Attr) {
	if !slog.Default().Enabled(ctx, level) {
		return
	}
	if key != "" && interval > 0 && !limiter.allow(key, interval, time.Now()) {
		return
	}
	slog.LogAttrs(ctx, level, msg, attrs...)
}

func (l *everyLimiter) allow(key string, interval time.Duration, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if last, ok := l.last[key]; ok && now.Sub(last) < interval {
		return false
	}
	l.last[key] = now
	if len(l.last) > l.maxKeys {
		l.prune()
	}
	return true
}

func (l *everyLimiter) prune() {
	keys := make([]string, 0, len(l.last))
	for key := range l.last {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return l.last[a].Compare(l.last[b])
	})
	for _, key := range keys[:len(keys)-l.maxKeys] {
		delete(l.last, key)
	}
}
