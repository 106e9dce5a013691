// Package logger wraps logrus with context aware, structured logging.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ncobase/taskapi/config"
	"github.com/ncobase/taskapi/consts"
	"github.com/ncobase/taskapi/ctxutil"

	"github.com/sirupsen/logrus"
)

// Key constants
const (
	VersionKey = "version"
	ErrorKey   = "error"
)

// Logger represents logger instance
type Logger struct {
	*logrus.Logger
	version      string
	mu           sync.Mutex
	logFile      *os.File
	logPath      string
	stop         chan struct{}
	desensitizer *Desensitizer
}

var (
	// stdLogger is the global logger
	stdLogger *Logger
	// once ensures that the logger is initialized only once
	once sync.Once
)

// StdLogger returns the single logger instance
func StdLogger() *Logger {
	once.Do(func() {
		stdLogger = newLogger()
	})
	return stdLogger
}

func newLogger() *Logger {
	l := &Logger{Logger: logrus.New()}
	l.SetFormatter(&logrus.JSONFormatter{})
	return l
}

// New initializes the standard logger from configuration and returns it with
// a cleanup function that closes any open log file.
func New(c *config.Logger) (*Logger, func(), error) {
	l := StdLogger()
	cleanup, err := l.Init(c)
	if err != nil {
		return nil, nil, err
	}
	return l, cleanup, nil
}

// NewWithWriter returns a standalone logger writing JSON to w. Used by tests
// and tools that must not touch the global logger.
func NewWithWriter(w io.Writer, level logrus.Level) *Logger {
	l := newLogger()
	l.SetOutput(w)
	l.SetLevel(level)
	return l
}

// SetVersion sets the version for logging
func (l *Logger) SetVersion(v string) {
	l.version = v
}

// Init initializes the logger with the given configuration
func (l *Logger) Init(c *config.Logger) (func(), error) {
	if c == nil {
		return func() {}, nil
	}
	l.SetLevel(logrus.Level(c.Level))

	switch c.Format {
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	switch c.Output {
	case "stderr":
		l.SetOutput(os.Stderr)
	case "file":
		l.logPath = c.OutputFile
		if l.logPath == "" {
			return nil, fmt.Errorf("logger output is file but output_file is empty")
		}
		if err := l.setupLogFile(); err != nil {
			return nil, err
		}
		l.stop = make(chan struct{})
		go l.periodicLogRotation(l.stop)
	default:
		l.SetOutput(os.Stdout)
	}

	if c.Desensitization != nil && c.Desensitization.Enabled {
		l.desensitizer = NewDesensitizer(c.Desensitization)
	}

	// Return cleanup function
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.stop != nil {
			close(l.stop)
			l.stop = nil
		}
		if l.logFile != nil {
			_ = l.logFile.Close()
			l.logFile = nil
		}
	}, nil
}

// SetLevelFromConfig re-applies the level after a configuration reload.
func (l *Logger) SetLevelFromConfig(c *config.Logger) {
	if c != nil {
		l.SetLevel(logrus.Level(c.Level))
	}
}

// setupLogFile sets up the log file
func (l *Logger) setupLogFile() error {
	if err := os.MkdirAll(filepath.Dir(l.logPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return l.rotateLog()
}

// rotateLog rotates the log
func (l *Logger) rotateLog() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	logFilePath := fmt.Sprintf("%s.%s.log", strings.TrimSuffix(l.logPath, ".log"), time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open new log file: %w", err)
	}

	old := l.logFile
	l.logFile = f
	l.SetOutput(l.logFile)
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// periodicLogRotation rotates the log every 24 hours
func (l *Logger) periodicLogRotation(stop <-chan struct{}) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := l.rotateLog(); err != nil {
				l.Logger.Errorf("Error rotating log: %v", err)
			}
		}
	}
}

// entryFromContext creates a new log entry with fields from context
func (l *Logger) entryFromContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}
	if ctx == nil {
		ctx = context.Background()
	}

	if traceID := ctxutil.GetTraceID(ctx); traceID != "" {
		fields[consts.TraceIDKey] = traceID
	}
	if uid := ctxutil.GetUserID(ctx); uid != "" {
		fields[consts.UserKey] = uid
	}
	if l.version != "" {
		fields[VersionKey] = l.version
	}

	return l.WithContext(ctx).WithFields(fields)
}

// kvFields turns alternating key/value arguments into logrus fields.
// A trailing key without a value is kept under "!BADKEY".
func kvFields(kv []any) logrus.Fields {
	fields := make(logrus.Fields, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		if i+1 >= len(kv) {
			fields["!BADKEY"] = key
			break
		}
		fields[key] = kv[i+1]
	}
	return fields
}

// log logs a message with the given level and key/value pairs
func (l *Logger) log(ctx context.Context, level logrus.Level, msg string, kv ...any) {
	if !l.IsLevelEnabled(level) {
		return
	}
	entry := l.entryFromContext(ctx)
	if len(kv) > 0 {
		fields := kvFields(kv)
		if l.desensitizer != nil {
			fields = l.desensitizer.DesensitizeFields(fields)
		}
		entry = entry.WithFields(fields)
	}
	entry.Log(level, msg)
}

// logf logs a formatted message
func (l *Logger) logf(ctx context.Context, level logrus.Level, format string, args ...any) {
	l.entryFromContext(ctx).Logf(level, format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, logrus.DebugLevel, msg, kv...)
}

// Info logs an info message
func (l *Logger) Info(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, logrus.InfoLevel, msg, kv...)
}

// Warn logs a warn message
func (l *Logger) Warn(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, logrus.WarnLevel, msg, kv...)
}

// Error logs an error message
func (l *Logger) Error(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, logrus.ErrorLevel, msg, kv...)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, logrus.FatalLevel, msg, kv...)
	l.Exit(1)
}

// Debugf logs a debug message with format
func (l *Logger) Debugf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.DebugLevel, format, args...)
}

// Infof logs an info message with format
func (l *Logger) Infof(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.InfoLevel, format, args...)
}

// Warnf logs a warn message with format
func (l *Logger) Warnf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.WarnLevel, format, args...)
}

// Errorf logs an error message with format
func (l *Logger) Errorf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.ErrorLevel, format, args...)
}
