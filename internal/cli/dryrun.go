package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/alessio/shellescape.v1"

	"github.com/mmr-tortoise/useenv/internal/launcher"
	"github.com/mmr-tortoise/useenv/internal/model"
)

// dryRunReport is the --dry-run --json document.
type dryRunReport struct {
	model.EnvironmentModification
	Environ []string `json:"environ"`
	Command []string `json:"command"`
}

// printDryRun writes the environment block the child would receive,
// one NAME=VALUE per line, followed by the shell-quoted command line.
func printDryRun(w io.Writer, l *launcher.Launcher, inv *model.Invocation) error {
	environ, err := l.Environment(inv.Env)
	if err != nil {
		return err
	}

	if jsonOutput {
		data, err := json.MarshalIndent(dryRunReport{
			EnvironmentModification: inv.Env,
			Environ:                 environ,
			Command:                 inv.Command,
		}, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	for _, kv := range environ {
		fmt.Fprintln(w, kv)
	}
	_, err = fmt.Fprintln(w, QuoteCommand(inv.Command))
	return err
}

// QuoteCommand renders a command line so it can be pasted into a POSIX
// shell.
func QuoteCommand(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = shellescape.Quote(a)
	}
	return strings.Join(quoted, " ")
}
