// Package launcher starts the child process with its modified
// environment and reports how it ended.
//
// The environment block is built in a fixed order: the parent's
// environment (unless cleared), minus every unset name, plus variables
// from env files, plus explicit NAME=VALUE assignments. Later writes to
// the same name win.
//
// The child inherits stdin, stdout and stderr directly. There is no
// timeout and no signal forwarding: Run blocks until the child exits.
package launcher
