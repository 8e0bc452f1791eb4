package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotationConfig contains log rotation settings
type RotationConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var (
	logFile   *lumberjack.Logger
	logFileMu sync.Mutex
)

// Setup configures the global logrus logger. Output goes to stderr and,
// when filePath is set, to a rotating log file.
func Setup(level, filePath string, rotation RotationConfig) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(lvl)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	logFileMu.Lock()
	defer logFileMu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	if filePath == "" {
		logrus.SetOutput(os.Stderr)
		return nil
	}

	logFile = &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    rotation.MaxSizeMB,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAgeDays,
		Compress:   rotation.Compress,
	}
	logrus.SetOutput(io.MultiWriter(os.Stderr, logFile))

	logrus.WithFields(logrus.Fields{
		"level":       strings.ToUpper(level),
		"log_file":    filePath,
		"max_size":    fmt.Sprintf("%dMB", rotation.MaxSizeMB),
		"max_backups": rotation.MaxBackups,
		"max_age":     fmt.Sprintf("%d days", rotation.MaxAgeDays),
		"compress":    rotation.Compress,
	}).Debug("Logger initialized with file output")

	return nil
}

// Close closes the log file, if any.
func Close() error {
	logFileMu.Lock()
	defer logFileMu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		logrus.SetOutput(os.Stderr)
		return err
	}
	return nil
}

// ParseLevel converts a level name to a logrus.Level. Empty means INFO.
func ParseLevel(level string) (logrus.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return logrus.DebugLevel, nil
	case "", "INFO":
		return logrus.InfoLevel, nil
	case "WARNING", "WARN":
		return logrus.WarnLevel, nil
	case "ERROR":
		return logrus.ErrorLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("unknown log level: %s", level)
	}
}
