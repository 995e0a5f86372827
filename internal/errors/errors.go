// Package errors classifies oneshot failures and reports them to the user and to the
// error log.
package errors

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"oneshot/internal/ui"
)

var (
	defaultHandler *ErrorHandler
	defaultErr     error
	once           sync.Once
)

// GetDefaultHandler returns the process-wide handler, opening the log file on first use.
func GetDefaultHandler() (*ErrorHandler, error) {
	once.Do(func() {
		defaultHandler, defaultErr = NewErrorHandler()
	})
	return defaultHandler, defaultErr
}

// HandleError reports err through the default handler. When the error log cannot be
// opened, a warning and the error are written to w instead.
func HandleError(w io.Writer, err error) {
	if err == nil {
		return
	}
	handler, handlerErr := GetDefaultHandler()
	if handlerErr != nil {
		printUnlogged(w, handlerErr, err)
		return
	}
	handler.Handle(err)
}

func printUnlogged(w io.Writer, logErr, err error) {
	console := ui.NewConsoleTo(w, w)
	console.PrintWarning(fmt.Sprintf("error log unavailable: %v", logErr))

	var oneshotErr *OneshotError
	if errors.As(err, &oneshotErr) {
		console.PrintError(console.FormatErrorMessage(oneshotErr.Context, oneshotErr.Cause, oneshotErr.Suggestion))
		return
	}
	console.PrintError(err.Error())
}

func resetDefaultHandler() {
	defaultHandler = nil
	defaultErr = nil
	once = sync.Once{}
}
