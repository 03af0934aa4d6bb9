package argv

import (
	"strings"

	"github.com/mmr-tortoise/useenv/internal/model"
)

// option identifies a recognized option regardless of spelling.
type option int

const (
	optIgnoreEnvironment option = iota + 1
	optUnset
	optEnvFile
	optVerbose
	optDryRun
	optJSON
	optHelp
	optVersion
)

// spellings maps every exact option spelling to its option. Only exact
// matches count: "--unset=FOO" is not an option spelling.
var spellings = map[string]option{
	"-i":                   optIgnoreEnvironment,
	"--ignore-environment": optIgnoreEnvironment,
	"-u":                   optUnset,
	"--unset":              optUnset,
	"-f":                   optEnvFile,
	"--env-file":           optEnvFile,
	"-v":                   optVerbose,
	"--verbose":            optVerbose,
	"-n":                   optDryRun,
	"--dry-run":            optDryRun,
	"--json":               optJSON,
	"-h":                   optHelp,
	"--help":               optHelp,
	"-V":                   optVersion,
	"--version":            optVersion,
}

// takesValue reports whether the option consumes the following token.
func (o option) takesValue() bool {
	return o == optUnset || o == optEnvFile
}

// Classify sorts args (without the program name) into options,
// assignments and the child's command line.
//
// Each token is checked in this order:
//  1. an exact option spelling; -u/--unset and -f/--env-file consume the
//     next token verbatim, whatever it looks like
//  2. a token containing '=' is an assignment split on the first '=',
//     even when it starts with '-'
//  3. any other token starting with '-' (except a lone "-") is rejected
//  4. anything else starts the command line, which takes every remaining
//     token unchanged
//
// -h/--help and -V/--version stop the scan; no command is needed after
// them. Otherwise running out of tokens before step 4 is ErrNoCommand.
//
// The returned Invocation is never nil. On error it holds whatever was
// classified before the offending token.
func Classify(args []string) (*model.Invocation, error) {
	inv := &model.Invocation{}

	for i := 0; i < len(args); i++ {
		token := args[i]

		if opt, ok := spellings[token]; ok {
			var value string
			if opt.takesValue() {
				if i+1 >= len(args) {
					return inv, &MissingArgumentError{Option: token}
				}
				i++
				value = args[i]
			}

			if stop := apply(inv, opt, value); stop {
				return inv, nil
			}
			continue
		}

		if name, value, ok := strings.Cut(token, "="); ok {
			if err := model.ValidateName(name); err != nil {
				return inv, &MalformedAssignmentError{Token: token, Err: err}
			}
			inv.Env.SetVars = append(inv.Env.SetVars, model.Assignment{Name: name, Value: value})
			continue
		}

		if len(token) > 1 && token[0] == '-' {
			return inv, &UnknownOptionError{Token: token}
		}

		inv.Command = append(model.ChildCommandLine(nil), args[i:]...)
		return inv, nil
	}

	return inv, ErrNoCommand
}

// apply records opt on inv and reports whether scanning should stop.
func apply(inv *model.Invocation, opt option, value string) bool {
	switch opt {
	case optIgnoreEnvironment:
		inv.Env.ClearEnv = true
	case optUnset:
		inv.Env.UnsetVars = append(inv.Env.UnsetVars, value)
	case optEnvFile:
		inv.Env.EnvFiles = append(inv.Env.EnvFiles, value)
	case optVerbose:
		inv.Options.Verbose = true
	case optDryRun:
		inv.Options.DryRun = true
	case optJSON:
		inv.Options.JSON = true
	case optHelp:
		inv.Options.Help = true
		return true
	case optVersion:
		inv.Options.Version = true
		return true
	}
	return false
}
