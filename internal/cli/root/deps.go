package root

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/regenrek/peakydock/internal/identity"
)

// Dependencies provides the process streams and the terminal program runner
// to handlers. Tests swap in buffers and a fake runner.
type Dependencies struct {
	Version string
	AppName string

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	RunProgram func(ctx context.Context, model tea.Model) error
}

func DefaultDependencies(version string) Dependencies {
	return Dependencies{
		Version:    version,
		AppName:    identity.CLIName,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		RunProgram: runProgram,
	}
}

// runProgram owns the terminal until the model quits: alternate screen and
// cell motion mouse reporting, which tab drags need.
func runProgram(ctx context.Context, model tea.Model) error {
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := program.Run()
	return err
}
