package errors

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// LogDirEnv overrides the directory the error log is written to.
	LogDirEnv = "ONESHOT_LOG_DIR"

	logFileName     = "oneshot.log"
	maxLogSizeBytes = 10 * 1024 * 1024
	maxLogFiles     = 5
)

// logDir returns the per-OS log directory, honoring LogDirEnv.
func logDir() (string, error) {
	if custom := os.Getenv(LogDirEnv); custom != "" {
		return custom, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Logs", "oneshot"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "oneshot", "logs"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "oneshot", "logs"), nil
	default:
		// XDG state directory
		if state := os.Getenv("XDG_STATE_HOME"); state != "" {
			return filepath.Join(state, "oneshot"), nil
		}
		return filepath.Join(home, ".local", "state", "oneshot"), nil
	}
}

// writableDir creates dir and probes that a file can be created in it.
func writableDir(dir string) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	if err := probe.Close(); err != nil {
		slog.Warn("Failed to close log probe file", "path", name, "error", err)
	}
	return os.Remove(name)
}

// resolveLogDir falls back to the working directory when the standard one is unusable.
func resolveLogDir() (string, error) {
	dir, err := logDir()
	if err == nil {
		if err = writableDir(dir); err == nil {
			return dir, nil
		}
	}

	cwd, cwdErr := os.Getwd()
	if cwdErr != nil {
		return "", fmt.Errorf("cannot determine current directory for fallback logging: %w", cwdErr)
	}
	fmt.Fprintf(os.Stderr, "Warning: cannot use log directory %q (%v). Falling back to current directory for logging.\n", dir, err)
	return cwd, nil
}

// rotate shifts oneshot.log to oneshot.log.1 and so on, dropping the oldest file.
func rotate(logPath string) error {
	oldest := fmt.Sprintf("%s.%d", logPath, maxLogFiles)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to remove old log file", "path", oldest, "error", err)
	}

	for i := maxLogFiles - 1; i > 0; i-- {
		from := fmt.Sprintf("%s.%d", logPath, i)
		to := fmt.Sprintf("%s.%d", logPath, i+1)
		if _, err := os.Stat(from); err != nil {
			continue
		}
		if err := os.Rename(from, to); err != nil {
			slog.Warn("Failed to rotate log file", "old", from, "new", to, "error", err)
		}
	}

	if _, err := os.Stat(logPath); err != nil {
		return nil
	}
	return os.Rename(logPath, logPath+".1")
}

func openLogFile() (*os.File, error) {
	dir, err := resolveLogDir()
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(dir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() >= maxLogSizeBytes {
		if err := rotate(logPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to rotate log file: %v\n", err)
		}
	}

	return os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}
