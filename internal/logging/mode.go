package logging

import "strings"

type Mode uint8

const (
	ModeCLI Mode = iota + 1
	ModeTUI
)

// globalValueFlags are the root flags that consume the following argument.
var globalValueFlags = map[string]bool{
	"--config": true,
	"-c":       true,
	"--store":  true,
}

// ModeFromArgs picks the mode for a command line from its first command
// word. The interactive demo owns the terminal, so it must not log to
// stderr.
func ModeFromArgs(args []string) Mode {
	if len(args) < 2 {
		return ModeCLI
	}
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := strings.TrimSpace(rest[i])
		if strings.HasPrefix(arg, "-") {
			if globalValueFlags[arg] {
				i++
			}
			continue
		}
		if strings.EqualFold(arg, "demo") {
			return ModeTUI
		}
		return ModeCLI
	}
	return ModeCLI
}

func (m Mode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	default:
		return "cli"
	}
}
