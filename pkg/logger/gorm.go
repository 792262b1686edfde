package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const maxSQLLength = 1000

var gormLevels = map[string]gormlogger.LogLevel{
	"silent":  gormlogger.Silent,
	"error":   gormlogger.Error,
	"warn":    gormlogger.Warn,
	"warning": gormlogger.Warn,
	"info":    gormlogger.Info,
	"debug":   gormlogger.Info,
}

// GormLogger sends gorm's statement log to zap, tagged with the request id.
type GormLogger struct {
	log   *zap.Logger
	slow  time.Duration
	level gormlogger.LogLevel
}

// NewGormLogger maps LOG_LEVEL onto gorm's levels; debug and info log every
// statement, anything unknown falls back to warn.
func NewGormLogger(l *zap.Logger, slowQuerySeconds float64, level string) *GormLogger {
	lvl, ok := gormLevels[level]
	if !ok {
		lvl = gormlogger.Warn
	}
	return &GormLogger{
		log:   l,
		slow:  time.Duration(slowQuerySeconds * float64(time.Second)),
		level: lvl,
	}
}

func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *g
	c.level = level
	return &c
}

func (g *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if g.level >= gormlogger.Info {
		WithContext(ctx, g.log).Sugar().Infof(msg, data...)
	}
}

func (g *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if g.level >= gormlogger.Warn {
		WithContext(ctx, g.log).Sugar().Warnf(msg, data...)
	}
}

func (g *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if g.level >= gormlogger.Error {
		WithContext(ctx, g.log).Sugar().Errorf(msg, data...)
	}
}

// Trace logs one statement: failures at error, slow ones at warn, the rest
// at debug when the level is info.
func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := g.slow > 0 && elapsed > g.slow && g.level >= gormlogger.Warn
	if !failed && !slow && g.level < gormlogger.Info {
		return
	}

	sql, rows := fc()
	fields := []zap.Field{zap.Int64("rows", rows), zap.Duration("elapsed", elapsed)}
	if len(sql) > maxSQLLength {
		sql = sql[:maxSQLLength] + "..."
		fields = append(fields, zap.Bool("sql_truncated", true))
	}
	fields = append(fields, zap.String("sql", sql))

	l := WithContext(ctx, g.log)
	switch {
	case failed:
		l.Error("gorm query error", append(fields, zap.Error(err))...)
	case slow:
		l.Warn("gorm slow query", append(fields, zap.Duration("threshold", g.slow))...)
	default:
		l.Debug("gorm query", fields...)
	}
}
