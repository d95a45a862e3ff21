package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/op/go-logging"
)

const (
	RotationInterval = 24 * time.Hour
	MaxAge           = 7 * 24 * time.Hour

	Format      = "%{time:2006-01-02 15:04:05.000} [%{level:.4s}] %{module} %{shortfile} %{message}"
	ColorFormat = "%{color}%{time:15:04:05.000} [%{level:.4s}]%{color:reset} %{module} %{message}"
)

// Init routes all loggers to w at the given level and, when filePath is not
// empty, to a daily rotated file as well.
func Init(w io.Writer, levelName, filePath string) error {
	level, err := logging.LogLevel(levelName)
	if err != nil {
		return fmt.Errorf("log level %q: %w", levelName, err)
	}

	console := logging.AddModuleLevel(
		logging.NewBackendFormatter(
			logging.NewLogBackend(w, "", 0),
			logging.MustStringFormatter(consoleFormat(w)),
		),
	)
	console.SetLevel(level, "")

	if filePath == "" {
		logging.SetBackend(console)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	writer, err := rotatelogs.New(
		filePath+".%Y-%m-%d",
		rotatelogs.WithLinkName(filePath),
		rotatelogs.WithMaxAge(MaxAge),
		rotatelogs.WithRotationTime(RotationInterval),
	)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	file := logging.AddModuleLevel(
		logging.NewBackendFormatter(
			logging.NewLogBackend(writer, "", 0),
			logging.MustStringFormatter(Format),
		),
	)
	file.SetLevel(level, "")
	logging.SetBackend(console, file)
	return nil
}

// consoleFormat only colors output going to a terminal.
func consoleFormat(w io.Writer) string {
	if IsTerminal(w) {
		return ColorFormat
	}
	return "[%{level:.4s}] %{module} %{message}"
}

// IsTerminal reports whether w is a character device such as a TTY.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
