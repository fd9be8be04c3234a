package store

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"govpub/pkg/platform/tx"
)

// QueryLog is a swappable destination for SQL diagnostics. Bulk jobs point
// it at a file so statement logs do not flood the process log.
type QueryLog struct {
	logger atomic.Pointer[slog.Logger]
}

func newQueryLog() *QueryLog {
	q := &QueryLog{}
	q.logger.Store(slog.Default())
	return q
}

// SetQueryLogger redirects statement logging to logger.
func (q *QueryLog) SetQueryLogger(logger *slog.Logger) {
	if logger != nil {
		q.logger.Store(logger)
	}
}

// QueryLogger returns the current statement logger.
func (q *QueryLog) QueryLogger() *slog.Logger {
	return q.logger.Load()
}

func (q *QueryLog) wrap(exec tx.Executor) tx.Executor {
	return loggingExecutor{exec: exec, logger: q.logger.Load()}
}

type loggingExecutor struct {
	exec   tx.Executor
	logger *slog.Logger
}

func (l loggingExecutor) log(ctx context.Context, query string, start time.Time) {
	l.logger.DebugContext(ctx, "sql",
		"query", strings.Join(strings.Fields(query), " "),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (l loggingExecutor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer l.log(ctx, query, time.Now())
	return l.exec.ExecContext(ctx, query, args...)
}

func (l loggingExecutor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	defer l.log(ctx, query, time.Now())
	return l.exec.QueryContext(ctx, query, args...)
}

func (l loggingExecutor) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	defer l.log(ctx, query, time.Now())
	return l.exec.QueryRowContext(ctx, query, args...)
}
