// Package entry is the process entry point shared by cmd/peakydock.
package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/peakydock/internal/cli/app"
	"github.com/regenrek/peakydock/internal/cli/root"
	"github.com/regenrek/peakydock/internal/config"
	"github.com/regenrek/peakydock/internal/identity"
	"github.com/regenrek/peakydock/internal/logging"
)

// Run starts the CLI and returns the process exit code. Logging is set up
// from the default config file before the command line is parsed, so a
// broken --config file is reported by the command itself.
func Run(args []string, version string) int {
	mode := logging.ModeFromArgs(args)
	logCfg := logging.Config{}
	if path, err := config.DefaultPath(); err == nil {
		if cfg, err := config.Load(path); err == nil {
			logCfg = cfg.Logging
		} else {
			fmt.Fprintf(os.Stderr, "%s: %v\n", identity.CLIName, err)
		}
	}
	closeLogger, err := logging.Init(context.Background(), logCfg, logging.InitOptions{
		App:     identity.CLIName,
		Version: version,
		Mode:    mode,
	})
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		slog.Error("init logging failed; using stderr fallback", "err", err)
	} else if closeLogger != nil {
		defer func() { _ = closeLogger() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := root.DefaultDependencies(version)
	runner, err := app.NewRunner(deps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", identity.CLIName, err)
		return 1
	}
	if err := runner.Run(ctx, args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", identity.CLIName, err)
		return 1
	}
	return 0
}
