package runtime

import (
	"errors"
	"fmt"
)

var (
	// ErrInit marks a failure to launch the runtime during initialization.
	ErrInit = errors.New("could not init container")
	// ErrExecution marks a failure to launch a shell or run session.
	ErrExecution = errors.New("error while executing")
)

// Error is returned by Container implementations. Kind is ErrInit or ErrExecution
// and Cause holds the message of the underlying spawn failure.
type Error struct {
	Kind  error
	Cause string
	Err   error
}

// NewInitError wraps a spawn failure raised while initializing the runtime.
func NewInitError(err error) *Error {
	return &Error{Kind: ErrInit, Cause: err.Error(), Err: err}
}

// NewExecutionError wraps a spawn failure raised while starting a session.
func NewExecutionError(err error) *Error {
	return &Error{Kind: ErrExecution, Cause: err.Error(), Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
}

// Is matches the error kind, so errors.Is(err, ErrInit) works.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}
