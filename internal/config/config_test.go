package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/regenrek/peakydock/internal/runenv"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Dock.DragThreshold != DefaultDragThreshold || cfg.Dock.TabMaxWidth != DefaultTabMaxWidth {
		t.Fatalf("defaults = %#v", cfg.Dock)
	}
	if !slices.Equal(cfg.Dock.Snap.Ratios, []int{50, 33, 67, 25, 75}) {
		t.Fatalf("ratios = %v", cfg.Dock.Snap.Ratios)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	writeFile(t, path, `
dock:
  drag_threshold: 4
  snap:
    ratios: [50, 20]
store:
  dir: "  ~/layouts  "
logging:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Dock.DragThreshold != 4 {
		t.Fatalf("drag threshold = %d", cfg.Dock.DragThreshold)
	}
	if cfg.Dock.TabMaxWidth != DefaultTabMaxWidth {
		t.Fatalf("unset tab width should keep default, got %d", cfg.Dock.TabMaxWidth)
	}
	if got := cfg.Dock.Snap.DockSnap(); !slices.Equal(got.Ratios, []int{50, 20}) || got.Threshold != 30 {
		t.Fatalf("snap = %#v", got)
	}
	if cfg.Store.Dir != "~/layouts" {
		t.Fatalf("store dir = %q", cfg.Store.Dir)
	}
	if cfg.Logging.Level == nil || *cfg.Logging.Level != "debug" {
		t.Fatalf("logging level = %v", cfg.Logging.Level)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[dock]
tab_max_width = 12

[dock.snap]
threshold = 10
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Dock.TabMaxWidth != 12 || cfg.Dock.Snap.Threshold != 10 || cfg.Dock.DragThreshold != DefaultDragThreshold {
		t.Fatalf("dock = %#v", cfg.Dock)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	writeFile(t, path, `
dock:
  drag_threshold: -1
  tab_max_width: 2
  snap:
    ratios: [5]
logging:
  sink: printer
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, field := range []string{"dock.drag_threshold", "dock.tab_max_width", "dock.snap.ratios[0]", "logging.sink"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("error %q does not mention %s", err, field)
		}
	}
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	writeFile(t, path, "dock: [unterminated")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadFreshConfigIgnoresFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	writeFile(t, path, "dock:\n  drag_threshold: 9\n")
	t.Setenv(runenv.FreshConfigEnv, "1")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Dock.DragThreshold != DefaultDragThreshold {
		t.Fatalf("fresh config should ignore file, got %d", cfg.Dock.DragThreshold)
	}
}

func TestDefaultPathPrefersExistingFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(runenv.ConfigDirEnv, dir)
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error: %v", err)
	}
	if path != filepath.Join(dir, "config.yml") {
		t.Fatalf("DefaultPath() = %q", path)
	}
	writeFile(t, filepath.Join(dir, "config.toml"), "")
	if path, _ = DefaultPath(); path != filepath.Join(dir, "config.toml") {
		t.Fatalf("DefaultPath() = %q, want config.toml", path)
	}
}

func watchForThreshold(t *testing.T, watchPath, filePath string, want int) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Config, 4)
	err := Watch(ctx, watchPath, 20*time.Millisecond, func(cfg Config, err error) {
		if err == nil {
			got <- cfg
		}
	})
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	writeFile(t, filePath, fmt.Sprintf("dock:\n  drag_threshold: %d\n", want))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-got:
			if cfg.Dock.DragThreshold == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for reload")
		}
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	writeFile(t, path, "dock:\n  drag_threshold: 1\n")
	watchForThreshold(t, path, path, 7)
}

func TestWatchExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "peakydock.yml")
	writeFile(t, path, "dock:\n  drag_threshold: 1\n")
	watchForThreshold(t, "~/peakydock.yml", path, 5)
}

func TestMarshalRoundTripsThroughParse(t *testing.T) {
	cfg := Defaults()
	cfg.Dock.DragThreshold = 3
	for _, format := range []Format{FormatYAML, FormatTOML} {
		data, err := Marshal(cfg, format)
		if err != nil {
			t.Fatalf("Marshal(%s) error: %v", format, err)
		}
		got, err := Parse(data, format)
		if err != nil {
			t.Fatalf("Parse(%s) error: %v\n%s", format, err, data)
		}
		if got.Dock.DragThreshold != 3 || len(got.Dock.Snap.Ratios) != len(cfg.Dock.Snap.Ratios) {
			t.Fatalf("%s round trip = %+v", format, got.Dock)
		}
	}
}
