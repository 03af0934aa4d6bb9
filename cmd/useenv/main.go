// Package main is the entry point for the useenv CLI.
//
// useenv runs a program with a modified environment. All parsing and
// process handling lives in the internal packages; this is the only place
// the process exits.
//
// Build-time variables (version, commit, date) are injected via ldflags.
// During development, they default to "dev", "none", and "unknown".
package main

import (
	"os"

	"github.com/mmr-tortoise/useenv/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	os.Exit(cli.Execute(cli.NewRootCommand(), os.Args[1:]))
}
