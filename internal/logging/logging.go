// Package logging wires zerolog for holocron.
//
// Loggers are created once per command from a Config, decorated per component
// with ComponentLogger, and carried through context.Context so that API calls
// made from Bubble Tea commands log with the same trace ID as the command that
// started the session.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Output targets understood by Config.Output.
const (
	OutputStderr  = "stderr"
	OutputFile    = "file"
	OutputDiscard = "discard"
)

// Formats understood by Config.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Rotation defaults applied when the corresponding Config field is zero.
const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	logDirPerm        = 0o750
)

// Config describes how a logger should be built.
type Config struct {
	Level      string
	Format     string
	Output     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	Caller     bool
}

// LogPathResult is the outcome of NewLoggerWithPath.
type LogPathResult struct {
	Logger zerolog.Logger

	// UsingFile is true when log lines go to FilePath.
	UsingFile bool
	FilePath  string

	// FallbackUsed is set when file output was requested but could not be
	// opened; the logger then writes to stderr.
	FallbackUsed   bool
	FallbackReason string

	closer io.Closer
}

// Close releases the rotating file writer, if any.
func (r *LogPathResult) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// NewLoggerWithPath builds a logger from cfg and reports where it writes.
// File output that cannot be prepared falls back to stderr instead of failing.
func NewLoggerWithPath(cfg Config) LogPathResult {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var result LogPathResult
	var w io.Writer

	switch cfg.Output {
	case OutputDiscard:
		w = io.Discard
	case OutputFile:
		fw, fileErr := openRotatingFile(cfg)
		if fileErr != nil {
			result.FallbackUsed = true
			result.FallbackReason = fileErr.Error()
			w = formatWriter(cfg.Format, os.Stderr)
			break
		}
		result.UsingFile = true
		result.FilePath = cfg.File
		result.closer = fw
		// Files always get JSON lines; console formatting is for terminals.
		w = fw
	default:
		w = formatWriter(cfg.Format, os.Stderr)
	}

	zctx := zerolog.New(w).Level(level).Hook(traceHook{}).With().Timestamp()
	if cfg.Caller {
		zctx = zctx.Caller()
	}
	result.Logger = zctx.Logger()
	return result
}

func formatWriter(format string, out io.Writer) io.Writer {
	if format == FormatJSON {
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

func openRotatingFile(cfg Config) (*lumberjack.Logger, error) {
	if cfg.File == "" {
		return nil, fmt.Errorf("file output requested without a log file path")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), logDirPerm); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxSizeMB
	}
	maxBackups := cfg.MaxBackups
	if maxBackups <= 0 {
		maxBackups = defaultMaxBackups
	}

	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
	}, nil
}

// ComponentLogger returns a child logger tagged with the component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// PrintLogPathMessage tells the user where log lines are going.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user file logging was not possible.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: file logging unavailable (%s), logging to stderr\n", reason)
}
