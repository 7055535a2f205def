package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/peakydock/internal/cli/output"
	"github.com/regenrek/peakydock/internal/cli/spec"
)

// BuildApp constructs the urfave command tree from the command spec and binds each
// leaf to its registered handler.
func BuildApp(specDoc *spec.Spec, deps Dependencies, reg *Registry) (*cli.Command, error) {
	if specDoc == nil {
		return nil, fmt.Errorf("spec is nil")
	}
	if reg == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	if err := reg.EnsureHandlers(specDoc); err != nil {
		return nil, err
	}
	app := &cli.Command{
		Name:      specDoc.App.Name,
		Usage:     specDoc.App.Summary,
		Writer:    deps.Stdout,
		ErrWriter: deps.Stderr,
	}
	var restoreEnv func()
	app.Before = func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cmd.Bool("version") {
			out := deps.Stdout
			if out == nil {
				out = io.Discard
			}
			_, _ = fmt.Fprintf(out, "%s %s\n", cmd.Name, deps.Version)
			return ctx, cli.Exit("", 0)
		}
		restore, err := applyRunEnv(runEnvOptions{freshConfig: cmd.Bool("fresh-config")})
		if err != nil {
			return ctx, err
		}
		restoreEnv = restore
		return ctx, nil
	}
	app.After = func(context.Context, *cli.Command) error {
		if restoreEnv != nil {
			restoreEnv()
			restoreEnv = nil
		}
		return nil
	}
	globalFlags, err := buildFlags(specDoc.GlobalFlags)
	if err != nil {
		return nil, err
	}
	app.Flags = globalFlags
	for _, cmdSpec := range specDoc.Commands {
		cmd, err := buildCommand(cmdSpec, deps, reg)
		if err != nil {
			return nil, err
		}
		app.Commands = append(app.Commands, cmd)
	}
	app.Action = func(ctx context.Context, cmd *cli.Command) error {
		return runDefaultCommand(ctx, specDoc, deps, reg, cmd)
	}
	return app, nil
}

func buildCommand(cmdSpec spec.Command, deps Dependencies, reg *Registry) (*cli.Command, error) {
	cmd := &cli.Command{
		Name:        cmdSpec.Name,
		Aliases:     cmdSpec.Aliases,
		Usage:       cmdSpec.Summary,
		Description: strings.TrimSpace(cmdSpec.Description),
		Hidden:      cmdSpec.Hidden,
		ArgsUsage:   argsUsage(cmdSpec.Args),
	}
	flags, err := buildFlags(cmdSpec.Flags)
	if err != nil {
		return nil, fmt.Errorf("flags for %s: %w", cmdSpec.ID, err)
	}
	cmd.Flags = flags
	for _, arg := range cmdSpec.Args {
		cmd.Arguments = append(cmd.Arguments, &cli.StringArg{Name: arg.Name})
	}
	for _, child := range cmdSpec.Subcommands {
		sub, err := buildCommand(child, deps, reg)
		if err != nil {
			return nil, err
		}
		cmd.Commands = append(cmd.Commands, sub)
	}
	if handler, ok := reg.HandlerFor(cmdSpec.ID); ok {
		cmd.Action = func(ctx context.Context, cliCmd *cli.Command) error {
			return runHandler(ctx, cliCmd, cmdSpec, deps, handler)
		}
	}
	return cmd, nil
}

// runDefaultCommand runs app.default_command, or shows help when there is
// none.
func runDefaultCommand(ctx context.Context, specDoc *spec.Spec, deps Dependencies, reg *Registry, app *cli.Command) error {
	id := strings.TrimSpace(specDoc.App.DefaultCommand)
	if id == "" {
		return cli.ShowAppHelp(app)
	}
	cmdSpec := specDoc.FindByID(id)
	if cmdSpec == nil {
		return fmt.Errorf("default command %q not found", id)
	}
	handler, ok := reg.HandlerFor(cmdSpec.ID)
	if !ok {
		return missingHandlerError(cmdSpec.ID)
	}
	return runHandler(ctx, app, *cmdSpec, deps, handler)
}

func runHandler(ctx context.Context, cliCmd *cli.Command, cmdSpec spec.Command, deps Dependencies, handler Handler) error {
	commandCtx := CommandContext{
		Context: ctx,
		Args:    positionalArgs(cmdSpec, cliCmd),
		Spec:    cmdSpec,
		Cmd:     cliCmd,
		Deps:    deps,
		JSON:    cliCmd.Bool("json"),
		Out:     deps.Stdout,
		ErrOut:  deps.Stderr,
		Stdin:   deps.Stdin,
	}
	for i, arg := range cmdSpec.Args {
		if arg.Required && (i >= len(commandCtx.Args) || strings.TrimSpace(commandCtx.Args[i]) == "") {
			return missingArgError(arg.Name)
		}
	}
	if commandCtx.JSON && (cmdSpec.JSON == nil || !cmdSpec.JSON.Supported) {
		return fmt.Errorf("command %s does not support --json", cmdSpec.ID)
	}
	if err := confirmIfNeeded(commandCtx, cliCmd); err != nil {
		return err
	}
	start := time.Now()
	if err := handler(commandCtx); err != nil {
		var exitErr cli.ExitCoder
		if !commandCtx.JSON || errors.As(err, &exitErr) {
			return err
		}
		meta := output.WithDuration(output.NewMeta(cmdSpec.ID, deps.Version), start)
		_ = output.WriteError(commandCtx.Out, meta, output.ErrorCode(err), err.Error(), nil)
		return cli.Exit("", 1)
	}
	return nil
}

// positionalArgs returns the declared args in order, falling back to the
// raw argument list when the command declares none.
func positionalArgs(cmdSpec spec.Command, cliCmd *cli.Command) []string {
	if len(cmdSpec.Args) == 0 {
		return cliCmd.Args().Slice()
	}
	out := make([]string, len(cmdSpec.Args))
	for i, arg := range cmdSpec.Args {
		out[i] = cliCmd.StringArg(arg.Name)
	}
	return out
}

func argsUsage(args []spec.Arg) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		name := strings.ToUpper(arg.Name)
		if !arg.Required {
			name = "[" + name + "]"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}
