// Package configcmd implements the config subcommands.
package configcmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/regenrek/peakydock/internal/atomicfile"
	"github.com/regenrek/peakydock/internal/cli/output"
	"github.com/regenrek/peakydock/internal/cli/root"
	"github.com/regenrek/peakydock/internal/config"
	"github.com/regenrek/peakydock/internal/runenv"
	"github.com/regenrek/peakydock/internal/userpath"
)

func Register(reg *root.Registry) {
	reg.Register("config.show", runShow)
	reg.Register("config.path", runPath)
	reg.Register("config.init", runInit)
}

func runShow(ctx root.CommandContext) error {
	start := time.Now()
	cfg, path, err := ctx.LoadConfig()
	if err != nil {
		return err
	}
	if ctx.JSON {
		meta := output.WithDuration(output.NewMeta("config.show", ctx.Deps.Version), start)
		return output.WriteSuccess(ctx.Out, meta, output.ConfigView{
			Path:   path,
			Exists: fileExists(path),
			Fresh:  runenv.FreshConfigEnabled(),
			Config: cfg,
		})
	}
	data, err := config.Marshal(cfg, config.Format(ctx.Cmd.String("format")))
	if err != nil {
		return err
	}
	_, err = ctx.Out.Write(data)
	return err
}

func runPath(ctx root.CommandContext) error {
	path, err := ctx.ConfigPath()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.Out, userpath.ShortenUser(path))
	return err
}

// runInit writes the defaults in the format the path's extension implies.
func runInit(ctx root.CommandContext) error {
	path, err := ctx.ConfigPath()
	if err != nil {
		return err
	}
	path = userpath.ExpandUser(path)
	if fileExists(path) && !ctx.Cmd.Bool("force") {
		return fmt.Errorf("config %s: %w (use --force to overwrite)", path, output.ErrConflict)
	}
	data, err := config.Marshal(config.Defaults(), config.FormatFor(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := atomicfile.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	_, err = fmt.Fprintf(ctx.Out, "Wrote %s\n", userpath.ShortenUser(path))
	return err
}

func fileExists(path string) bool {
	_, err := os.Stat(userpath.ExpandUser(path))
	return err == nil || !errors.Is(err, os.ErrNotExist)
}
