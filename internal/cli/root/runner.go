package root

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/peakydock/internal/cli/spec"
	"github.com/regenrek/peakydock/internal/identity"
)

// Runner executes the CLI from the command spec and registry.
type Runner struct {
	specDoc *spec.Spec
	app     *cli.Command
}

func NewRunner(specDoc *spec.Spec, deps Dependencies, reg *Registry) (*Runner, error) {
	app, err := BuildApp(specDoc, deps, reg)
	if err != nil {
		return nil, err
	}
	return &Runner{specDoc: specDoc, app: app}, nil
}

// Run executes the CLI. args[0] names the binary in help output.
func (r *Runner) Run(ctx context.Context, args []string) error {
	if r == nil || r.app == nil {
		return fmt.Errorf("runner is not initialized")
	}
	r.app.Name = identity.ResolveBinaryName(args)
	return r.app.Run(ctx, args)
}
