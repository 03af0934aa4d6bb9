// Package argv classifies the useenv command line.
//
// Options, NAME=VALUE assignments and the child's command line share one
// argument list and are told apart by position and shape alone. Classify
// walks the list once, left to right, with a single token of lookahead
// for options that take a value. The first token that is neither an
// option nor an assignment starts the child's command line; it and every
// token after it are passed through verbatim.
//
// Classify never exits the process and never touches the environment.
// Deciding what an error means for the exit status is left to the caller.
package argv
