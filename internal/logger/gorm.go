package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

// GormLogger routes gorm's query log through zap.
type GormLogger struct {
	log           *Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

var _ gormlogger.Interface = (*GormLogger)(nil)

// NewGormLogger returns a gorm logger writing to log. Level follows the zap level:
// debug traces every statement, info/warn report slow queries and errors, error
// reports errors only.
func NewGormLogger(log *Logger, level string) *GormLogger {
	if log == nil {
		log = Nop()
	}
	return &GormLogger{
		log:           log.Named("gorm"),
		level:         toGormLevel(level),
		slowThreshold: defaultSlowQuery,
	}
}

func toGormLevel(level string) gormlogger.LogLevel {
	switch level {
	case DebugLevel:
		return gormlogger.Info
	case ErrorLevel:
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}

// LogMode returns a copy of the logger at the given level.
func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *g
	cp.level = level
	return &cp
}

func (g *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Info {
		g.log.Infow(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.log.Warnw(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Error {
		g.log.Errorw(fmt.Sprintf(msg, args...))
	}
}

// Trace logs one executed statement. Record-not-found is an expected outcome for
// lookups and is never reported as an error.
func (g *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		g.log.Errorw("gorm_query_failed", "err", err, "elapsed", elapsed, "rows", rows, "sql", sql)
	case elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		sql, rows := fc()
		g.log.Warnw("gorm_slow_query", "elapsed", elapsed, "threshold", g.slowThreshold, "rows", rows, "sql", sql)
	case g.level >= gormlogger.Info:
		sql, rows := fc()
		g.log.Debugw("gorm_query", "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}
