// Package logging provides config-driven categorized logging for gflmod on top of zap.
// Every command installs one base logger at startup; packages fetch a named child per
// category with Get. Logs go to stderr so stdout stays free for reports.
package logging

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"gflmod/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config resolution
	CategoryRoster  Category = "roster"  // Unit roster extraction
	CategoryDeploy  Category = "deploy"  // Deploy screen generation
	CategoryVariant Category = "variant" // GIRL entity/unit derivation
	CategoryVoice   Category = "voice"   // Voice manifest validation
	CategoryAudio   Category = "audio"   // Radio effect processing
	CategoryMarkup  Category = "markup"  // Markup formatting and file output
)

// Logger wraps a sugared zap logger bound to a category.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	base       = zap.NewNop()
	runID      string
	categories config.LoggingConfig
	loggers    = make(map[Category]*Logger)
	loggersMu  sync.RWMutex
)

// Build creates a zap logger from the logging config. verbose forces debug level.
func Build(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Sampling = nil
	zc.DisableStacktrace = true
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if !strings.EqualFold(cfg.Format, "json") {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Initialize installs the base logger. Each call starts a new run id and drops
// cached category loggers.
func Initialize(l *zap.Logger, cfg config.LoggingConfig) {
	if l == nil {
		l = zap.NewNop()
	}
	loggersMu.Lock()
	defer loggersMu.Unlock()

	runID = uuid.NewString()
	base = l.With(zap.String("run", runID))
	categories = cfg
	loggers = make(map[Category]*Logger)
}

// RunID returns the id attached to every log line of the current run.
func RunID() string {
	loggersMu.RLock()
	defer loggersMu.RUnlock()
	return runID
}

// Sync flushes the base logger.
func Sync() error {
	loggersMu.RLock()
	defer loggersMu.RUnlock()
	return base.Sync()
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if the category is disabled.
func Get(category Category) *Logger {
	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	if l, ok := loggers[category]; ok {
		return l
	}

	var z *zap.Logger
	if categories.IsCategoryEnabled(string(category)) {
		z = base.Named(string(category))
	} else {
		z = zap.NewNop()
	}
	l := &Logger{category: category, sugar: z.Sugar()}
	loggers[category] = l
	return l
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// With returns a child logger carrying an extra structured field.
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.With(key, value)}
}

// Zap exposes the underlying structured logger.
func (l *Logger) Zap() *zap.Logger {
	return l.sugar.Desugar()
}

// Timer tracks operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer starts a timer for the given operation.
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop logs the elapsed time at debug level and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithInfo logs the elapsed time at info level and returns it.
func (t *Timer) StopWithInfo() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Info("%s completed in %v", t.op, elapsed)
	return elapsed
}
