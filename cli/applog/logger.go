// Package applog provides a rotating log file used to keep the output of
// subprocesses started by the CLI (venv creation, package installation).
package applog

import (
	"log"
	"strings"

	"github.com/ch-iv/litestar-manage/cli/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerOpts describes the logger options.
type LoggerOpts struct {
	// Filename is the name of log file.
	Filename string
	// MaxSize is the maximum size in megabytes of the log file
	// before it gets rotated.
	MaxSize int
	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int
	// MaxAge is the maximum number of days to retain old log files
	// based on the timestamp encoded in their filename.
	MaxAge int
}

// Logger represents an active logging object.
// Decorator https://pkg.go.dev/log#Logger .
// A Logger can be used simultaneously from multiple goroutines;
// it guarantees to serialize access to the Writer.
type Logger struct {
	// Embedded logger, the functionality of which will be extended.
	*log.Logger
	// ljLogger is an io.WriteCloser that writes to the specified filename.
	ljLogger *lumberjack.Logger
}

// NewLogger creates a new object of Logger.
func NewLogger(opts *LoggerOpts) *Logger {
	ljLogger := &lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAge,
		Compress:   false,
		LocalTime:  true,
	}
	return &Logger{Logger: log.New(ljLogger, "", log.LstdFlags), ljLogger: ljLogger}
}

// NewFromConfig creates a logger from the log section of the configuration.
// Nil is returned if logging to file is not configured.
func NewFromConfig(logOpts *config.LogOpts) *Logger {
	if logOpts == nil || logOpts.File == "" {
		return nil
	}
	return NewLogger(&LoggerOpts{
		Filename:   logOpts.File,
		MaxSize:    logOpts.MaxSize,
		MaxBackups: logOpts.MaxBackups,
		MaxAge:     logOpts.MaxAge,
	})
}

// LogLine writes a subprocess output line tagged with its stream name.
func (logger *Logger) LogLine(line, stream string) {
	logger.Printf("[%s] %s", stream, strings.TrimRight(line, "\r\n"))
}

// Close implements io.Closer, and closes the current logfile.
func (logger *Logger) Close() error {
	return logger.ljLogger.Close()
}
