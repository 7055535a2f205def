package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/regenrek/peakydock/internal/appdirs"
	"github.com/regenrek/peakydock/internal/identity"
)

type InitOptions struct {
	App     string
	Version string
	Mode    Mode
}

// Init installs the default slog logger. cfg overrides the mode defaults and
// PEAKYDOCK_LOG_* overrides both. The returned func closes the sink.
func Init(ctx context.Context, cfg Config, opts InitOptions) (func() error, error) {
	if opts.App == "" {
		opts.App = identity.AppSlug
	}
	if opts.Mode == 0 {
		opts.Mode = ModeCLI
	}
	normalized, err := DefaultConfig(opts.Mode).Merge(cfg).WithEnv().Normalize()
	if err != nil {
		return nil, err
	}
	logger, closeFn, err := NewLogger(normalized, opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	logger.DebugContext(ctx, "logging initialised", slog.String("sink", deref(normalized.Sink, string(SinkStderr))))
	return closeFn, nil
}

// NewLogger builds a logger for an already normalized config.
func NewLogger(cfg Config, opts InitOptions) (*slog.Logger, func() error, error) {
	writer, closeFn, err := openSink(cfg, Sink(deref(cfg.Sink, string(SinkStderr))))
	if err != nil {
		return nil, nil, err
	}
	handlerOpts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource != nil && *cfg.AddSource,
	}
	var handler slog.Handler = slog.NewTextHandler(writer, handlerOpts)
	if Format(deref(cfg.Format, string(FormatText))) == FormatJSON {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	}
	logger := slog.New(handler).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
		slog.String("mode", opts.Mode.String()),
	)
	return logger, closeFn, nil
}

func parseLevel(value *string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(deref(value, ""))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openSink(cfg Config, sink Sink) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch sink {
	case SinkNone:
		return io.Discard, noop, nil
	case SinkStderr:
		return os.Stderr, noop, nil
	case SinkFile:
		path := strings.TrimSpace(deref(cfg.File, ""))
		override := path != ""
		if !override {
			var err error
			if path, err = appdirs.LogFile(); err != nil {
				return nil, nil, fmt.Errorf("logging: %w", err)
			}
		}
		if err := ensureLogDir(filepath.Dir(path), override); err != nil {
			return nil, nil, err
		}
		rot := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    deref(cfg.MaxSizeMB, 10),
			MaxBackups: deref(cfg.MaxBackups, 3),
			MaxAge:     deref(cfg.MaxAgeDays, 14),
			Compress:   deref(cfg.Compress, true),
		}
		return rot, rot.Close, nil
	default:
		return nil, nil, fmt.Errorf("logging: unknown sink %q", sink)
	}
}

func deref[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
