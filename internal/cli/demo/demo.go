// Package demo runs the interactive dock in the terminal.
package demo

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/regenrek/peakydock/internal/cli/root"
	"github.com/regenrek/peakydock/internal/runenv"
	"github.com/regenrek/peakydock/internal/tui/dockview"
)

func Register(reg *root.Registry) {
	reg.Register("demo", runDemo)
}

func runDemo(ctx root.CommandContext) error {
	if ctx.Deps.RunProgram == nil {
		return errors.New("demo: no terminal program runner")
	}
	cfg, path, err := ctx.LoadConfig()
	if err != nil {
		return err
	}
	if threshold := ctx.Cmd.Int("threshold"); threshold >= 0 {
		cfg.Dock.DragThreshold = threshold
	}
	store, err := ctx.OpenStore(cfg)
	if err != nil {
		return err
	}
	watchPath := path
	if ctx.Cmd.Bool("no-watch") || runenv.FreshConfigEnabled() {
		watchPath = ""
	}
	model, err := dockview.New(dockview.Options{
		Config:     cfg,
		ConfigPath: watchPath,
		Store:      store,
		Layout:     strings.TrimSpace(ctx.Cmd.String("layout")),
	})
	if err != nil {
		return err
	}
	slog.Info("demo: starting",
		slog.String("config", path),
		slog.String("store", store.Dir()),
		slog.Int("drag_threshold", cfg.Dock.DragThreshold))
	return ctx.Deps.RunProgram(ctx.Context, model)
}
