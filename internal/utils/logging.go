package utils

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	zeroLoggerLock  sync.RWMutex
	zeroLogger      *zerolog.Logger
	zeroLoggerLevel = zerolog.InfoLevel
	zeroLoggerOut   io.Writer
)

// LogFileConfig describes the rotating file sink of the global logger.
type LogFileConfig struct {
	Path         string
	MaxSize      int // megabytes
	RotateCount  int
	RotateMaxAge int // days
}

// SetLogVerbosity specifies the verbosity of the global logger.
// 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail
func SetLogVerbosity(verbosity int) {
	zeroLoggerLock.Lock()
	defer zeroLoggerLock.Unlock()

	zeroLoggerLevel = verbosityToLevel(verbosity)
	if zeroLogger != nil {
		l := zeroLogger.Level(zeroLoggerLevel)
		zeroLogger = &l
	}
}

func verbosityToLevel(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.Disabled
	case verbosity == 1:
		return zerolog.ErrorLevel
	case verbosity == 2:
		return zerolog.WarnLevel
	case verbosity == 3:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// AddLogFile redirects the global logger to a rotating JSON log file.
func AddLogFile(c LogFileConfig) error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0755); err != nil {
		return errors.Wrapf(err, "cannot create log folder for %v", c.Path)
	}
	fileHandler := &lumberjack.Logger{
		Filename:   c.Path,
		MaxSize:    c.MaxSize,
		MaxBackups: c.RotateCount,
		MaxAge:     c.RotateMaxAge,
		Compress:   true,
	}
	setLogOutput(fileHandler)
	return nil
}

// setLogOutput replaces the sink of the global logger. A nil writer
// restores the console writer on stderr.
func setLogOutput(w io.Writer) {
	zeroLoggerLock.Lock()
	defer zeroLoggerLock.Unlock()

	zeroLoggerOut = w
	zeroLogger = nil
}

// Logger returns a zerolog.Logger singleton
func Logger() *zerolog.Logger {
	zeroLoggerLock.RLock()
	logger := zeroLogger
	zeroLoggerLock.RUnlock()
	if logger != nil {
		return logger
	}

	zeroLoggerLock.Lock()
	defer zeroLoggerLock.Unlock()
	if zeroLogger == nil {
		out := zeroLoggerOut
		if out == nil {
			out = zerolog.ConsoleWriter{Out: os.Stderr}
		}
		l := zerolog.New(out).
			Level(zeroLoggerLevel).
			With().
			Timestamp().
			Logger()
		zeroLogger = &l
	}
	return zeroLogger
}
