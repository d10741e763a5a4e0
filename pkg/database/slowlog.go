package database

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryLogger adapts slog to GORM's logger interface. It only reports
// errors and queries slower than the configured threshold so normal traffic
// stays quiet.
type slowQueryLogger struct {
	log       *slog.Logger
	threshold time.Duration
}

func newSlowQueryLogger(log *slog.Logger, threshold time.Duration) gormlogger.Interface {
	return &slowQueryLogger{log: log, threshold: threshold}
}

func (l *slowQueryLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *slowQueryLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.log.InfoContext(ctx, msg, slog.Any("args", args))
}

func (l *slowQueryLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.log.WarnContext(ctx, msg, slog.Any("args", args))
}

func (l *slowQueryLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.log.ErrorContext(ctx, msg, slog.Any("args", args))
}

func (l *slowQueryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.log.ErrorContext(ctx, "query failed",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()),
		)
	case l.threshold > 0 && elapsed >= l.threshold:
		sql, rows := fc()
		l.log.WarnContext(ctx, "slow query",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
		)
	}
}
