package root

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"
)

// PromptConfirm asks a yes/no question on out and reads the answer from in.
// Anything but y or yes is a no.
func PromptConfirm(in io.Reader, out io.Writer, message string) (bool, error) {
	if out != nil {
		if _, err := fmt.Fprintf(out, "%s [y/N]: ", message); err != nil {
			return false, err
		}
	}
	if in == nil {
		return false, nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// confirmIfNeeded gates commands with side effects behind a prompt unless
// --yes is set.
func confirmIfNeeded(ctx CommandContext, cliCmd *cli.Command) error {
	if !ctx.Spec.SideEffects && !ctx.Spec.Confirm {
		return nil
	}
	if cliCmd != nil && cliCmd.Bool("yes") {
		return nil
	}
	message := ctx.Spec.Summary
	if message == "" {
		message = "Run " + ctx.Spec.ID
	}
	if len(ctx.Args) > 0 {
		message += " " + strings.Join(ctx.Args, " ")
	}
	ok, err := PromptConfirm(ctx.Stdin, ctx.ErrOut, message+"?")
	if err != nil {
		return err
	}
	if !ok {
		return cli.Exit("aborted", 1)
	}
	return nil
}
