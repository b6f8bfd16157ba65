package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	applog "github.com/janisto/travel-profiles/internal/platform/logging"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormLogger routes GORM output through the request-scoped zap logger.
type GormLogger struct {
	level gormlogger.LogLevel
}

var (
	_ gormlogger.Interface = (*GormLogger)(nil)
	_ gorm.ParamsFilter     = (*GormLogger)(nil)
)

// NewGormLogger logs slow queries and failures. Statement tracing is enabled at Info.
func NewGormLogger() *GormLogger {
	return &GormLogger{level: gormlogger.Warn}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &GormLogger{level: level}
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		applog.LogInfo(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		applog.LogWarn(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		applog.LogError(ctx, fmt.Sprintf(msg, args...), nil)
	}
}

// ParamsFilter drops bound values so logged SQL keeps its placeholders. Values include
// password hashes and email addresses.
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, _ ...any) (string, []any) {
	return sql, nil
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		query, rows := fc()
		applog.LogError(ctx, "query failed", err, queryFields(query, rows, elapsed)...)
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		query, rows := fc()
		applog.LogWarn(ctx, "slow query", queryFields(query, rows, elapsed)...)
	case l.level >= gormlogger.Info:
		query, rows := fc()
		applog.LogDebug(ctx, "query", queryFields(query, rows, elapsed)...)
	}
}

func queryFields(query string, rows int64, elapsed time.Duration) []zap.Field {
	return []zap.Field{
		zap.String("sql", query),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
}
