package root

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/peakydock/internal/cli/spec"
	"github.com/regenrek/peakydock/internal/config"
	"github.com/regenrek/peakydock/internal/layoutstore"
)

// CommandContext wraps a command invocation.
type CommandContext struct {
	Context context.Context
	Args    []string
	Spec    spec.Command
	Cmd     *cli.Command
	Deps    Dependencies
	JSON    bool
	Out     io.Writer
	ErrOut  io.Writer
	Stdin   io.Reader
}

// ConfigPath is --config, or the default config file.
func (c CommandContext) ConfigPath() (string, error) {
	if c.Cmd != nil {
		if path := strings.TrimSpace(c.Cmd.String("config")); path != "" {
			return path, nil
		}
	}
	return config.DefaultPath()
}

// LoadConfig loads the config file the command should use. It returns the
// path even when loading fails so callers can report it.
func (c CommandContext) LoadConfig() (config.Config, string, error) {
	path, err := c.ConfigPath()
	if err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.Load(path)
	return cfg, path, err
}

// OpenStore opens and indexes the layout store. --store wins over
// store.dir from the config.
func (c CommandContext) OpenStore(cfg config.Config) (*layoutstore.Store, error) {
	dir := cfg.Store.Dir
	if c.Cmd != nil {
		if flagDir := strings.TrimSpace(c.Cmd.String("store")); flagDir != "" {
			dir = flagDir
		}
	}
	store, err := layoutstore.NewStore(layoutstore.Config{Dir: dir})
	if err != nil {
		return nil, err
	}
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("open layout store: %w", err)
	}
	return store, nil
}
