package errors

import "errors"

var (
	ErrConfigInvalid    = errors.New("configuration invalid")
	ErrImageInvalid     = errors.New("image invalid")
	ErrOutputDirInvalid = errors.New("output directory invalid")
	ErrRuntimeInit      = errors.New("container runtime initialization failed")
	ErrRuntimeExecution = errors.New("container execution failed")
	ErrNotImplemented   = errors.New("not implemented")
)

// OneshotError carries what the console shows the user next to the original error.
type OneshotError struct {
	Type        error
	Context     string
	Cause       string
	Suggestion  string
	OriginalErr error
}

func (e *OneshotError) Error() string {
	return e.OriginalErr.Error()
}

func (e *OneshotError) Unwrap() error {
	return e.OriginalErr
}

// Is lets errors.Is match the error kind as well as the wrapped chain.
func (e *OneshotError) Is(target error) bool {
	return target == e.Type
}

func NewOneshotError(errorType error, context, cause, suggestion string, originalErr error) *OneshotError {
	return &OneshotError{
		Type:        errorType,
		Context:     context,
		Cause:       cause,
		Suggestion:  suggestion,
		OriginalErr: originalErr,
	}
}

func NewConfigError(context, cause, suggestion string, originalErr error) *OneshotError {
	return NewOneshotError(ErrConfigInvalid, context, cause, suggestion, originalErr)
}

func NewImageError(context, cause, suggestion string, originalErr error) *OneshotError {
	return NewOneshotError(ErrImageInvalid, context, cause, suggestion, originalErr)
}

func NewOutputDirError(context, cause, suggestion string, originalErr error) *OneshotError {
	return NewOneshotError(ErrOutputDirInvalid, context, cause, suggestion, originalErr)
}

func NewRuntimeInitError(context, cause, suggestion string, originalErr error) *OneshotError {
	return NewOneshotError(ErrRuntimeInit, context, cause, suggestion, originalErr)
}

func NewRuntimeExecutionError(context, cause, suggestion string, originalErr error) *OneshotError {
	return NewOneshotError(ErrRuntimeExecution, context, cause, suggestion, originalErr)
}

func NewNotImplementedError(context, suggestion string, originalErr error) *OneshotError {
	return NewOneshotError(ErrNotImplemented, context, "", suggestion, originalErr)
}
