package app

import (
	"github.com/regenrek/peakydock/internal/cli/configcmd"
	"github.com/regenrek/peakydock/internal/cli/demo"
	"github.com/regenrek/peakydock/internal/cli/layouts"
	"github.com/regenrek/peakydock/internal/cli/root"
	"github.com/regenrek/peakydock/internal/cli/version"
)

func registerAll(reg *root.Registry) {
	if reg == nil {
		return
	}
	demo.Register(reg)
	layouts.Register(reg)
	configcmd.Register(reg)
	version.Register(reg)
}
