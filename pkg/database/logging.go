package database

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// loggingDriver logs every statement at debug level and slow ones at warn.
type loggingDriver struct {
	dialect.Driver
	slow time.Duration
}

func newLoggingDriver(drv dialect.Driver, slow time.Duration) *loggingDriver {
	return &loggingDriver{Driver: drv, slow: slow}
}

func (d *loggingDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.log(ctx, "exec", query, time.Since(start), err)
	return err
}

func (d *loggingDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.log(ctx, "query", query, time.Since(start), err)
	return err
}

func (d *loggingDriver) log(ctx context.Context, op, query string, took time.Duration, err error) {
	attrs := []any{
		slog.String("op", op),
		slog.String("sql", query),
		slog.Duration("took", took),
	}
	switch {
	case err != nil:
		slog.ErrorContext(ctx, "db statement failed", append(attrs, slog.Any("error", err))...)
	case d.slow > 0 && took >= d.slow:
		slog.WarnContext(ctx, "slow db statement", attrs...)
	default:
		slog.DebugContext(ctx, "db statement", attrs...)
	}
}

// DB exposes the wrapped *sql.DB for health checks.
func (d *loggingDriver) DB() *sql.DB {
	if inner, ok := d.Driver.(*entsql.Driver); ok {
		return inner.DB()
	}
	return nil
}
