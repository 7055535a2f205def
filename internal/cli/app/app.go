// Package app assembles the peakydock CLI from the embedded command spec
// and the handler packages.
package app

import (
	"github.com/regenrek/peakydock/internal/cli/root"
	"github.com/regenrek/peakydock/internal/cli/spec"
)

func NewRunner(deps root.Dependencies) (*root.Runner, error) {
	specDoc, err := spec.LoadDefault()
	if err != nil {
		return nil, err
	}
	reg := root.NewRegistry()
	registerAll(reg)
	return root.NewRunner(specDoc, deps, reg)
}
