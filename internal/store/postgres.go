package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres calls the schema's SQL functions. Read functions return SETOF rows, write
// functions return the ROW_COUNT of their statement.
type Postgres struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgres(db *pgxpool.Pool, timeout time.Duration) *Postgres {
	return &Postgres{db: db, timeout: timeout}
}

// OpenPostgres creates a pool for dsn and verifies connectivity.
func OpenPostgres(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

func (p *Postgres) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

func (p *Postgres) Query(ctx context.Context, proc Procedure, args ...any) (Rows, error) {
	ctx, cancel := p.withTimeout(ctx)
	rows, err := p.db.Query(ctx, pgSelectSQL(proc, len(args)), args...)
	if err != nil {
		cancel()
		return nil, classifyPG(proc, err)
	}
	return &cancelRows{Rows: rows, cancel: cancel}, nil
}

func (p *Postgres) Exec(ctx context.Context, proc Procedure, args ...any) (Result, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var affected int64
	if err := p.db.QueryRow(ctx, pgCallSQL(proc, len(args)), args...).Scan(&affected); err != nil {
		return Result{}, classifyPG(proc, err)
	}
	return Result{RowsAffected: affected}, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

func (p *Postgres) Close() {
	p.db.Close()
}

func pgPlaceholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(ph, ", ")
}

func pgSelectSQL(proc Procedure, n int) string {
	return fmt.Sprintf("SELECT * FROM %s(%s)", proc, pgPlaceholders(n))
}

func pgCallSQL(proc Procedure, n int) string {
	return fmt.Sprintf("SELECT %s(%s)", proc, pgPlaceholders(n))
}

func classifyPG(proc Procedure, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%s: %w: %s", proc, ErrDuplicate, pgErr.ConstraintName)
		case pgerrcode.NotNullViolation:
			return fmt.Errorf("%s: %w: %s", proc, ErrMissingValue, pgErr.ColumnName)
		}
	}
	return fmt.Errorf("%s: %w", proc, err)
}

// cancelRows releases the per-call timeout once the caller is done with the rows.
type cancelRows struct {
	Rows
	cancel context.CancelFunc
}

func (r *cancelRows) Close() {
	r.Rows.Close()
	r.cancel()
}
