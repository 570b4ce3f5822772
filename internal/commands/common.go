package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/robot/internal/config"
	"github.com/okian/robot/internal/exitcode"
	"github.com/okian/robot/internal/output"
	"github.com/okian/robot/pkg/apiclient"
)

// finish prints a backend answer or maps its error to an exit code.
func finish(cfg *config.Config, resp *apiclient.Response, err error, out, errOut io.Writer) int {
	if err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet {
		output.Body(out, resp)
	}
	return exitcode.Success
}

// fail reports err and returns the matching exit code.
func fail(errOut io.Writer, err error) int {
	var se *apiclient.StatusError
	switch {
	case errors.As(err, &se):
		fmt.Fprintf(errOut, "error: backend returned %d for %s %s\n", se.StatusCode, se.Method, se.URL)
		if len(se.Body) > 0 {
			fmt.Fprintf(errOut, "%s\n", strings.TrimRight(string(se.Body), "\n"))
		}
		return exitcode.BackendError
	case errors.Is(err, apiclient.ErrPathParams):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

// printEvents returns a StreamHandler printing each event unless quiet.
func printEvents(cfg *config.Config, out io.Writer) apiclient.StreamHandler {
	return func(ev apiclient.StreamEvent) error {
		if !cfg.Quiet {
			output.Event(out, ev)
		}
		return nil
	}
}

// usageError prints a usage line and returns UserError.
func usageError(errOut io.Writer, msg string, c Command) int {
	fmt.Fprintf(errOut, "error: %s\nusage: %s\n", msg, c.Usage())
	return exitcode.UserError
}

// joinArgs joins positional words into a single message.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argKind describes the positional arguments an action takes.
type argKind int

const (
	argNone argKind = iota // no arguments
	argText                // one or more words joined into a single string
	argID                  // exactly one identifier
	argList                // one or more items
)

// action is one subcommand of a command group.
type action struct {
	name string
	args argKind
	call func(ctx context.Context, api *apiclient.API, args []string) (*apiclient.Response, error)
}

// runAction picks the action named by args[0], validates its arguments
// and prints the answer.
func runAction(ctx context.Context, c Command, actions []action, cfg *config.Config, api *apiclient.API, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return usageError(errOut, "missing subcommand", c)
	}
	name, rest := args[0], args[1:]
	for _, a := range actions {
		if a.name != name {
			continue
		}
		switch a.args {
		case argNone:
			if len(rest) > 0 {
				return usageError(errOut, fmt.Sprintf("%s takes no arguments", name), c)
			}
		case argText:
			if joinArgs(rest) == "" {
				return usageError(errOut, fmt.Sprintf("%s needs text", name), c)
			}
			rest = []string{joinArgs(rest)}
		case argID:
			if len(rest) != 1 || strings.TrimSpace(rest[0]) == "" {
				return usageError(errOut, fmt.Sprintf("%s needs exactly one id", name), c)
			}
		case argList:
			if len(rest) == 0 {
				return usageError(errOut, fmt.Sprintf("%s needs at least one item", name), c)
			}
		}
		resp, err := a.call(ctx, api, rest)
		return finish(cfg, resp, err, out, errOut)
	}
	return usageError(errOut, fmt.Sprintf("unknown subcommand: %s", name), c)
}

// actionNames lists the subcommands for usage strings.
func actionNames(actions []action) string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.name
	}
	return strings.Join(names, "|")
}
