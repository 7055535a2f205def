package root

import (
	"fmt"
	"os"

	"github.com/regenrek/peakydock/internal/runenv"
)

type runEnvOptions struct {
	freshConfig bool
}

type envSnapshot struct {
	key   string
	value string
	ok    bool
}

// applyRunEnv exports the environment the global flags imply for the rest
// of the run. The returned func restores the previous values.
func applyRunEnv(opts runEnvOptions) (func(), error) {
	if !opts.freshConfig {
		return func() {}, nil
	}
	original := captureEnv(runenv.FreshConfigEnv)
	if err := os.Setenv(runenv.FreshConfigEnv, "1"); err != nil {
		restoreEnv(original)
		return nil, fmt.Errorf("set fresh config: %w", err)
	}
	return func() { restoreEnv(original) }, nil
}

func captureEnv(keys ...string) []envSnapshot {
	snaps := make([]envSnapshot, 0, len(keys))
	for _, key := range keys {
		value, ok := os.LookupEnv(key)
		snaps = append(snaps, envSnapshot{key: key, value: value, ok: ok})
	}
	return snaps
}

func restoreEnv(snaps []envSnapshot) {
	for _, snap := range snaps {
		if snap.ok {
			_ = os.Setenv(snap.key, snap.value)
		} else {
			_ = os.Unsetenv(snap.key)
		}
	}
}
