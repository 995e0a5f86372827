package errors

import (
	"context"
	"errors"
	"log/slog"

	"oneshot/internal/ui"
)

type ErrorHandler struct {
	logger  *slog.Logger
	console *ui.Console
}

func NewErrorHandler() (*ErrorHandler, error) {
	logFile, err := openLogFile()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	return &ErrorHandler{
		logger:  logger,
		console: ui.NewConsole(),
	}, nil
}

func (h *ErrorHandler) Handle(err error) {
	if err == nil {
		return
	}

	var oneshotErr *OneshotError
	if errors.As(err, &oneshotErr) {
		h.handleOneshotError(oneshotErr)
	} else {
		h.handleGenericError(err)
	}
}

func (h *ErrorHandler) handleOneshotError(err *OneshotError) {
	h.logStructuredError(err)

	message := h.console.FormatErrorMessage(err.Context, err.Cause, err.Suggestion)
	h.console.PrintError(message)
}

func (h *ErrorHandler) handleGenericError(err error) {
	h.logger.Error("Unhandled error occurred",
		"error", err.Error(),
		"type", "generic",
	)

	h.console.PrintError(err.Error())
}

func (h *ErrorHandler) logStructuredError(err *OneshotError) {
	attrs := []slog.Attr{
		slog.String("error", err.OriginalErr.Error()),
		slog.String("type", getErrorTypeName(err.Type)),
		slog.String("context", err.Context),
	}
	if err.Cause != "" {
		attrs = append(attrs, slog.String("cause", err.Cause))
	}
	if err.Suggestion != "" {
		attrs = append(attrs, slog.String("suggestion", err.Suggestion))
	}

	h.logger.LogAttrs(context.Background(), slog.LevelError, "oneshot error occurred", attrs...)
}

func getErrorTypeName(errType error) string {
	switch errType {
	case ErrConfigInvalid:
		return "config_invalid"
	case ErrImageInvalid:
		return "image_invalid"
	case ErrOutputDirInvalid:
		return "output_dir_invalid"
	case ErrRuntimeInit:
		return "runtime_init_failed"
	case ErrRuntimeExecution:
		return "runtime_execution_failed"
	case ErrNotImplemented:
		return "not_implemented"
	default:
		return "unknown"
	}
}
