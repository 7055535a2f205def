// Package appdirs resolves where peakydock keeps its files. Nothing here
// creates directories; writers create what they need.
package appdirs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/regenrek/peakydock/internal/identity"
	"github.com/regenrek/peakydock/internal/runenv"
)

// ConfigDir returns $PEAKYDOCK_CONFIG_DIR or <UserConfigDir>/peakydock.
func ConfigDir() (string, error) {
	if override := runenv.ConfigDir(); override != "" {
		return override, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, identity.AppSlug), nil
}

// StateDir returns $PEAKYDOCK_STATE_DIR or <UserCacheDir>/peakydock. Logs
// live here.
func StateDir() (string, error) {
	if override := runenv.StateDir(); override != "" {
		return override, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve state dir: %w", err)
	}
	return filepath.Join(dir, identity.AppSlug), nil
}

// LayoutsDir is the default home of saved layouts, next to the config file.
func LayoutsDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, identity.GlobalLayoutsDir), nil
}

// LogFile is the default log file for the file sink.
func LogFile() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, identity.LogFileName), nil
}
