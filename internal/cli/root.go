// Package cli implements the cobra-based command line for useenv.
//
// useenv has no subcommands. Option parsing is switched off in cobra
// because options, NAME=VALUE assignments and the child's command line
// are interleaved in one argument list; internal/argv classifies them.
// The options are still declared on the cobra flag set so that the help
// output documents them.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/useenv/internal/argv"
	"github.com/mmr-tortoise/useenv/internal/launcher"
	"github.com/mmr-tortoise/useenv/internal/model"
)

// jsonOutput controls whether errors are rendered as JSON. It is set
// from the classified options on every run, including failed ones.
var jsonOutput bool

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

var errorPrefix = color.New(color.FgRed, color.Bold)

// argsGuard is prepended to the arguments by Execute. cobra matches the
// first non-flag argument against its hidden __complete command; a
// leading "--" ends that search so every argument reaches run.
const (
	argsGuard           = "--"
	argsGuardAnnotation = "useenv/args-guard"
)

// NewRootCommand creates the useenv command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "useenv [OPTION]... [NAME=VALUE]... COMMAND [ARG]...",
		Short: "Run a program with a modified environment",
		Long: `Run a program with a modified environment.

useenv runs COMMAND with a modified environment.

Options and NAME=VALUE assignments may be given in any order. The first
argument that is neither starts the command line: it and everything after
it are passed to the command unchanged, even if they look like options.

Variables are applied in this order: the inherited environment (unless -i),
minus every -u NAME, plus every --env-file, plus every NAME=VALUE. When a
name is set more than once the last value wins.

Exit status is the command's own, 1 if it was killed by a signal, 2 for
usage errors, 3 if an env file cannot be loaded, 126 if the command cannot
be run and 127 if it cannot be found.`,
		Args: cobra.ArbitraryArgs,

		// The classifier owns the argument list; cobra must not touch it.
		DisableFlagParsing:    true,
		DisableFlagsInUseLine: true,

		// Errors are printed by Execute so they can honor --json.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		RunE:    run,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.Flags()
	flags.BoolP("ignore-environment", "i", false, "Clear all environment variables not explicitly set")
	flags.StringArrayP("unset", "u", nil, "Clear a specific variable from the environment (repeatable)")
	flags.StringArrayP("env-file", "f", nil, "Load variables from a dotenv, YAML or JSON file (repeatable)")
	flags.BoolP("verbose", "v", false, "Log every environment change to stderr")
	flags.BoolP("dry-run", "n", false, "Print the environment and command instead of running it")
	flags.Bool("json", false, "Print errors and dry-run output as JSON")
	flags.BoolP("help", "h", false, "Show this help and exit")
	flags.BoolP("version", "V", false, "Print version information and exit")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[argsGuardAnnotation] != "" && len(args) > 0 && args[0] == argsGuard {
		args = args[1:]
	}

	inv, err := argv.Classify(args)
	jsonOutput = inv.Options.JSON
	if err != nil {
		code := model.ExitGeneralError
		if argv.IsUsageError(err) {
			code = model.ExitUsage
		}
		return model.WrapCLIError(code, "invalid arguments", err)
	}

	switch {
	case inv.Options.Help:
		return cmd.Help()
	case inv.Options.Version:
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", cmd.Name(), cmd.Version)
		return err
	}

	l := launcher.New(newLogger(cmd.ErrOrStderr(), inv.Options.Verbose))
	l.Stdin = cmd.InOrStdin()
	l.Stdout = cmd.OutOrStdout()
	l.Stderr = cmd.ErrOrStderr()

	if inv.Options.DryRun {
		return printDryRun(cmd.OutOrStdout(), l, inv)
	}

	code, err := l.Run(inv)
	if err != nil {
		return err
	}
	if code != int(model.ExitSuccess) {
		return model.ExitWith(code)
	}
	return nil
}

// Execute runs the root command with args (without the program name)
// and returns the process exit code. The caller is responsible for
// exiting with it.
//
// CLIError types carry their own exit codes; other errors map to
// ExitGeneralError. Silent CLIErrors (a child's non-zero exit) print
// nothing.
func Execute(rootCmd *cobra.Command, args []string) int {
	if rootCmd.Annotations == nil {
		rootCmd.Annotations = map[string]string{}
	}
	rootCmd.Annotations[argsGuardAnnotation] = "1"
	rootCmd.SetArgs(append([]string{argsGuard}, args...))

	err := rootCmd.Execute()
	if err == nil {
		return int(model.ExitSuccess)
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		if !cliErr.Silent() {
			printError(rootCmd.ErrOrStderr(), cliErr)
		}
		return int(cliErr.Code)
	}

	printError(rootCmd.ErrOrStderr(), model.WrapCLIError(model.ExitGeneralError, "unexpected failure", err))
	return int(model.ExitGeneralError)
}

// printError outputs an error in the appropriate format (JSON or text)
// based on the --json option.
func printError(w io.Writer, cliErr *model.CLIError) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": cliErr.Message,
				"code":    int(cliErr.Code),
			},
		}
		if cliErr.Err != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = cliErr.Err.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	errorPrefix.Fprint(w, "Error:")
	if cliErr.Err != nil {
		fmt.Fprintf(w, " %s: %v\n", cliErr.Message, cliErr.Err)
	} else {
		fmt.Fprintf(w, " %s\n", cliErr.Message)
	}
	if cliErr.Code == model.ExitUsage {
		fmt.Fprintln(w, "Run 'useenv --help' for usage.")
	}
}
