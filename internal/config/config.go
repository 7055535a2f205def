// Package config loads the peakydock config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/regenrek/peakydock/internal/dock"
	"github.com/regenrek/peakydock/internal/logging"
)

const (
	DefaultDragThreshold = 1
	DefaultTabMaxWidth   = 24
	MinTabMaxWidth       = 4
)

// Config mirrors config.yml. Missing keys keep their defaults.
type Config struct {
	Dock    DockConfig     `yaml:"dock" toml:"dock"`
	Store   StoreConfig    `yaml:"store" toml:"store"`
	Logging logging.Config `yaml:"logging,omitempty" toml:"logging,omitempty"`
}

type DockConfig struct {
	DragThreshold int        `yaml:"drag_threshold" toml:"drag_threshold"`
	TabMaxWidth   int        `yaml:"tab_max_width" toml:"tab_max_width"`
	Snap          SnapConfig `yaml:"snap" toml:"snap"`
}

// SnapConfig controls ratio snapping while resizing splits. Threshold and
// Hysteresis are in thousandths of the split's extent; Ratios are percents.
type SnapConfig struct {
	Threshold  int   `yaml:"threshold" toml:"threshold"`
	Hysteresis int   `yaml:"hysteresis" toml:"hysteresis"`
	Ratios     []int `yaml:"ratios" toml:"ratios"`
}

type StoreConfig struct {
	// Dir holds saved layouts; empty means <config dir>/layouts.
	Dir string `yaml:"dir,omitempty" toml:"dir,omitempty"`
}

func Defaults() Config {
	snap := dock.DefaultSnapConfig()
	return Config{
		Dock: DockConfig{
			DragThreshold: DefaultDragThreshold,
			TabMaxWidth:   DefaultTabMaxWidth,
			Snap: SnapConfig{
				Threshold:  snap.Threshold,
				Hysteresis: snap.Hysteresis,
				Ratios:     append([]int(nil), snap.Ratios...),
			},
		},
	}
}

// DockSnap converts the snap section for dock.Tree.ResizeSplit.
func (c SnapConfig) DockSnap() dock.SnapConfig {
	return dock.SnapConfig{
		Threshold:  c.Threshold,
		Hysteresis: c.Hysteresis,
		Ratios:     append([]int(nil), c.Ratios...),
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Dock.DragThreshold < 0 {
		errs = append(errs, fmt.Errorf("dock.drag_threshold: must be >= 0, got %d", c.Dock.DragThreshold))
	}
	if c.Dock.TabMaxWidth < MinTabMaxWidth {
		errs = append(errs, fmt.Errorf("dock.tab_max_width: must be >= %d, got %d", MinTabMaxWidth, c.Dock.TabMaxWidth))
	}
	if c.Dock.Snap.Threshold < 0 {
		errs = append(errs, fmt.Errorf("dock.snap.threshold: must be >= 0, got %d", c.Dock.Snap.Threshold))
	}
	if c.Dock.Snap.Hysteresis < 0 {
		errs = append(errs, fmt.Errorf("dock.snap.hysteresis: must be >= 0, got %d", c.Dock.Snap.Hysteresis))
	}
	for i, ratio := range c.Dock.Snap.Ratios {
		if ratio < 10 || ratio > 90 {
			errs = append(errs, fmt.Errorf("dock.snap.ratios[%d]: must be within 10..90, got %d", i, ratio))
		}
	}
	if _, err := c.Logging.Normalize(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Store.Dir = strings.TrimSpace(c.Store.Dir)
	if c.Dock.Snap.Ratios == nil {
		c.Dock.Snap.Ratios = Defaults().Dock.Snap.Ratios
	}
}
