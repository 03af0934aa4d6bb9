package argv

import (
	"errors"
	"fmt"
)

// ErrNoCommand is returned when the arguments end before a command
// boundary is reached.
var ErrNoCommand = errors.New("no command provided")

// MissingArgumentError is returned when an option that takes a value is
// the last token.
type MissingArgumentError struct {
	// Option is the spelling the user typed, e.g. "-u" or "--unset".
	Option string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("option %s requires an argument", e.Option)
}

// UnknownOptionError is returned for a '-' prefixed token that is not a
// recognized option spelling and does not contain '='.
type UnknownOptionError struct {
	Token string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unrecognized option %q", e.Token)
}

// MalformedAssignmentError is returned for a NAME=VALUE token with an
// empty NAME.
type MalformedAssignmentError struct {
	Token string
	Err   error
}

func (e *MalformedAssignmentError) Error() string {
	return fmt.Sprintf("malformed assignment %q: %v", e.Token, e.Err)
}

func (e *MalformedAssignmentError) Unwrap() error {
	return e.Err
}

// IsUsageError reports whether err came from classification, as opposed
// to a later stage.
func IsUsageError(err error) bool {
	var (
		missing   *MissingArgumentError
		unknown   *UnknownOptionError
		malformed *MalformedAssignmentError
	)
	return errors.Is(err, ErrNoCommand) ||
		errors.As(err, &missing) ||
		errors.As(err, &unknown) ||
		errors.As(err, &malformed)
}
