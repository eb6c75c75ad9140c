// Package logger is the process-wide structured logger. Callers log with
// key/value pairs:
//
//	logger.Info("csv ingested", "entity", "volunteers", "rows", 42)
//
// Output goes through zap. Values are scrubbed of email addresses before
// they reach the encoder.
package logger

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu        sync.RWMutex
	base      = zap.NewNop()
	sugar     = base.Sugar()
	redactPII = true
)

// Init builds the default logger. level is one of debug, info, warn or error
// (anything else means info); format is "json" or "console".
func Init(level, format, service string) error {
	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	if service != "" {
		l = l.With(zap.String("service", service))
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		l = l.With(zap.String("hostname", host))
	}
	Replace(l)
	return nil
}

// Replace swaps the underlying zap logger. Tests use it with an observer core.
func Replace(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	sugar = l.Sugar()
}

// L returns the underlying zap logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// SetRedactPII enables or disables email redaction.
func SetRedactPII(r bool) {
	mu.Lock()
	redactPII = r
	mu.Unlock()
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}

func Debug(msg string, fields ...interface{}) { current().Debugw(msg, scrub(fields)...) }

func Info(msg string, fields ...interface{}) { current().Infow(msg, scrub(fields)...) }

func Warn(msg string, fields ...interface{}) { current().Warnw(msg, scrub(fields)...) }

// Error emits an ERROR-level entry. Pass the error under the "error" key.
func Error(msg string, fields ...interface{}) { current().Errorw(msg, scrub(fields)...) }

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// scrub redacts string-like values in a key/value list. Non-string values
// (numbers, bools) are passed through so zap keeps their type.
func scrub(fields []interface{}) []interface{} {
	mu.RLock()
	on := redactPII
	mu.RUnlock()
	if !on {
		return fields
	}
	out := make([]interface{}, len(fields))
	copy(out, fields)
	for i := 0; i+1 < len(out); i += 2 {
		key := fmt.Sprintf("%v", out[i])
		switch v := out[i+1].(type) {
		case string:
			out[i+1] = redactPIIValue(key, v)
		case error:
			out[i+1] = redactPIIValue(key, v.Error())
		}
	}
	return out
}

var emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

func redactPIIValue(key, val string) string {
	if strings.Contains(strings.ToLower(key), "email") {
		return RedactEmail(val)
	}
	return emailRegex.ReplaceAllStringFunc(val, RedactEmail)
}
