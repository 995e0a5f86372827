package errors

import (
	"errors"
	"fmt"

	"oneshot/pkg/runtime"
)

// FromRuntime attaches user guidance to a container adapter error. Errors that are
// not runtime kinds are returned unchanged.
func FromRuntime(err error, binary string) error {
	var rtErr *runtime.Error
	if !errors.As(err, &rtErr) {
		return err
	}

	switch {
	case errors.Is(err, runtime.ErrInit):
		return NewRuntimeInitError(
			"Could not initialize the container runtime",
			rtErr.Cause,
			fmt.Sprintf("Check that %q is installed and on your PATH, or set runtime.binary in the config file", binary),
			err,
		)
	case errors.Is(err, runtime.ErrExecution):
		return NewRuntimeExecutionError(
			"Could not start the container",
			rtErr.Cause,
			fmt.Sprintf("Check that %q is installed and that the podman machine is running", binary),
			err,
		)
	default:
		return err
	}
}
