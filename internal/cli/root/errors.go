package root

import (
	"fmt"

	"github.com/urfave/cli/v3"
)

type missingHandlerError string

func (e missingHandlerError) Error() string {
	return fmt.Sprintf("missing CLI handler for %s", string(e))
}

type missingArgError string

func (e missingArgError) Error() string {
	return fmt.Sprintf("missing argument %q", string(e))
}

// ExitCode ends the command with code and no message, for handlers that
// already reported the failure on stdout.
func ExitCode(code int) error {
	return cli.Exit("", code)
}
