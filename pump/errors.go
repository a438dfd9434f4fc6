package pump

import (
	"errors"
	"fmt"
)

var (
	// ErrNoReply reports that the device sent nothing within the reply
	// window. The link is dead, disconnected, or at the wrong baud rate.
	ErrNoReply = errors.New("pump: no data received")

	// ErrFrameTimeout reports that a reply started streaming but never
	// reached a terminator within the read window.
	ErrFrameTimeout = errors.New("pump: transmission timed out")

	// ErrNoValue reports a query reply that carried no numeric payload.
	ErrNoValue = errors.New("pump: reply carried no value")

	// ErrClosed reports use of a connection after Close.
	ErrClosed = errors.New("pump: connection closed")
)

// DecodeError reports a reply that could not be parsed, usually a payload
// field that should have been numeric. It is distinct from the timeout
// errors: the device answered, but with something unintelligible.
type DecodeError struct {
	Frame string
	Field string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("pump: malformed payload %q in reply %q", e.Field, e.Frame)
}

// ConnectError reports that the device did not answer the status probe
// issued when the connection was opened.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("pump: device did not answer status probe: %v", e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }
