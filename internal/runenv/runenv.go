package runenv

import (
	"os"
	"strings"
)

const (
	ConfigDirEnv   = "PEAKYDOCK_CONFIG_DIR"
	StateDirEnv    = "PEAKYDOCK_STATE_DIR"
	FreshConfigEnv = "PEAKYDOCK_FRESH_CONFIG"
)

// ConfigDir returns the config directory override, if any.
func ConfigDir() string {
	return strings.TrimSpace(os.Getenv(ConfigDirEnv))
}

// StateDir returns the override for logs and saved layouts, if any.
func StateDir() string {
	return strings.TrimSpace(os.Getenv(StateDirEnv))
}

// FreshConfigEnabled reports whether the config file on disk should be
// ignored in favour of built-in defaults.
func FreshConfigEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(FreshConfigEnv))) {
	case "", "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
