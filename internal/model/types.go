package model

import (
	"fmt"
	"strings"
)

// Assignment is a single NAME=VALUE pair destined for the child's
// environment block.
type Assignment struct {
	// Name is the variable name. Never empty and never contains '='.
	Name string `json:"name"`

	// Value is everything after the first '=' and may be empty.
	Value string `json:"value"`
}

// String renders the assignment in NAME=VALUE form, the same shape
// os/exec expects for Cmd.Env entries.
func (a Assignment) String() string {
	return a.Name + "=" + a.Value
}

// EnvironmentModification describes how the inherited environment is
// changed before the child is spawned.
//
// Duplicates are kept in first-seen order in every slice. When SetVars
// are applied, a later entry for the same name wins.
type EnvironmentModification struct {
	// ClearEnv starts the child from an empty environment instead of the
	// parent's.
	ClearEnv bool `json:"clearEnv"`

	// UnsetVars lists names removed from the working set.
	UnsetVars []string `json:"unset,omitempty"`

	// SetVars lists assignments applied after unsets, in order.
	SetVars []Assignment `json:"set,omitempty"`

	// EnvFiles lists files whose variables are applied before SetVars,
	// so explicit NAME=VALUE arguments override file contents.
	EnvFiles []string `json:"envFiles,omitempty"`
}

// IsEmpty reports whether the modification leaves the environment as is.
func (m EnvironmentModification) IsEmpty() bool {
	return !m.ClearEnv && len(m.UnsetVars) == 0 && len(m.SetVars) == 0 && len(m.EnvFiles) == 0
}

// ChildCommandLine is the program followed by its arguments, verbatim.
// A successfully classified command line always has at least one element.
type ChildCommandLine []string

// Program returns the executable name or path, or "" for an empty line.
func (c ChildCommandLine) Program() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Args returns the arguments passed to the program.
func (c ChildCommandLine) Args() []string {
	if len(c) < 2 {
		return nil
	}
	return c[1:]
}

// Options holds the switches that change how useenv itself behaves,
// as opposed to what it does to the child's environment.
type Options struct {
	// Verbose enables debug logging of every environment change.
	Verbose bool

	// JSON renders errors and dry-run output as JSON.
	JSON bool

	// DryRun prints the computed environment and command instead of
	// spawning the child.
	DryRun bool

	// Help and Version short-circuit classification. When either is set
	// no command is required.
	Help    bool
	Version bool
}

// Invocation is the complete result of classifying the command line.
type Invocation struct {
	Env     EnvironmentModification
	Command ChildCommandLine
	Options Options
}

// ValidateName checks that name can be used as an environment variable
// name: it must be non-empty and contain neither '=' nor NUL.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("variable name must not be empty")
	}
	if strings.ContainsAny(name, "=\x00") {
		return fmt.Errorf("invalid variable name %q: must not contain '=' or NUL", name)
	}
	return nil
}

// ExitCode defines the process exit codes of useenv itself.
// A child's own exit code is propagated unchanged and is not one of these.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitChildAbnormal is reported when the child terminated without an
	// exit code, e.g. killed by a signal.
	ExitChildAbnormal ExitCode = 1

	// ExitUsage indicates the command line could not be classified.
	ExitUsage ExitCode = 2

	// ExitEnvFileError indicates an --env-file could not be read or parsed.
	ExitEnvFileError ExitCode = 3

	// ExitCannotInvoke indicates the command was found but could not be
	// started.
	ExitCannotInvoke ExitCode = 126

	// ExitCommandNotFound indicates the command could not be located.
	ExitCommandNotFound ExitCode = 127
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
//
// A CLIError with an empty Message and no Err is silent: only its code
// is propagated. This is how a child's non-zero exit is passed through.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// Silent reports whether the error should be propagated without output.
func (e *CLIError) Silent() bool {
	return e.Message == "" && e.Err == nil
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ExitWith creates a silent CLIError that only carries an exit code.
func ExitWith(code int) *CLIError {
	return &CLIError{Code: ExitCode(code)}
}
