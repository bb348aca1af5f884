package dispatch

import (
	"errors"
	"fmt"
)

// ErrIncompleteParse is returned when input does not match any node yet.
// Suggestion code treats it as an expected state while a command is being typed.
var ErrIncompleteParse = errors.New("incomplete parse")

// ErrArgumentNotFound is returned when a context has no argument with the requested name.
var ErrArgumentNotFound = errors.New("argument not found")

// ErrExpectedSeparator is returned when an argument is followed by something other than a space.
var ErrExpectedSeparator = errors.New("expected whitespace to end one argument, but found trailing data")

// ErrUnknownCommand is returned when input matches no command at all.
var ErrUnknownCommand = errors.New("unknown command")

// ArgumentTypeError is returned when an argument holds a value of another type than requested.
type ArgumentTypeError struct {
	Name string
	Want string
	Got  any
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("argument %q is %T, not %s", e.Name, e.Got, e.Want)
}

func argumentNotFound(name string) error {
	return fmt.Errorf("%w: %q", ErrArgumentNotFound, name)
}
