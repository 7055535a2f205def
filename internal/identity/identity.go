// Package identity names the application and the files it owns.
package identity

import (
	"path/filepath"
	"strings"
)

const (
	// AppSlug names the config and state directories and the log file.
	AppSlug = "peakydock"
	CLIName = "peakydock"

	GlobalConfigFile = "config.yml"
	GlobalLayoutsDir = "layouts"
	LogFileName      = AppSlug + ".log"
)

var (
	// ConfigFileNames are accepted in the config dir, preferred first.
	ConfigFileNames = []string{GlobalConfigFile, "config.yaml", "config.toml"}

	InputAliases = []string{"pdock"}
)

func IsCLICommandToken(token string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(token))
	if trimmed == "" {
		return false
	}
	if trimmed == CLIName {
		return true
	}
	for _, alias := range InputAliases {
		if trimmed == alias {
			return true
		}
	}
	return false
}

// NormalizeCLIName maps a binary name to the name shown in help output.
// Unknown names fall back to CLIName.
func NormalizeCLIName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSuffix(name, ".exe")
	if IsCLICommandToken(name) {
		return name
	}
	return CLIName
}

// ResolveBinaryName normalizes the basename of args[0].
func ResolveBinaryName(args []string) string {
	if len(args) == 0 {
		return CLIName
	}
	return NormalizeCLIName(filepath.Base(strings.TrimSpace(args[0])))
}
