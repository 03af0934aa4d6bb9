// Package model defines the domain types and value objects for the
// useenv CLI.
//
// This package contains pure data structures with no external dependencies.
// An Invocation is built fresh for every run by the argument classifier,
// is never mutated after classification completes, and is consumed exactly
// once by the launcher.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
