package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	mysqlDuplicateEntry = 1062
	mysqlColumnNull     = 1048
)

// MySQL calls the schema's stored procedures with CALL.
type MySQL struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewMySQL(db *gorm.DB, timeout time.Duration) *MySQL {
	return &MySQL{db: db, timeout: timeout}
}

// OpenMySQL connects with parseTime and clientFoundRows forced on, so timestamps scan
// into time.Time and UPDATE reports matched rather than changed rows.
func OpenMySQL(dsn string, maxConns int) (*gorm.DB, error) {
	normalized, err := normalizeMySQLDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(mysql.Open(normalized), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if maxConns > 0 {
		sqlDB.SetMaxOpenConns(maxConns)
		sqlDB.SetMaxIdleConns(maxConns / 2)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

func normalizeMySQLDSN(dsn string) (string, error) {
	cfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

func (m *MySQL) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.timeout)
}

func (m *MySQL) Query(ctx context.Context, proc Procedure, args ...any) (Rows, error) {
	ctx, cancel := m.withTimeout(ctx)
	rows, err := m.db.WithContext(ctx).Raw(mysqlCallSQL(proc, len(args)), args...).Rows()
	if err != nil {
		cancel()
		return nil, classifyMySQL(proc, err)
	}
	return &cancelRows{Rows: sqlRows{rows}, cancel: cancel}, nil
}

func (m *MySQL) Exec(ctx context.Context, proc Procedure, args ...any) (Result, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	// Procedures with several statements rely on the surrounding transaction. They cannot
	// COMMIT themselves because CALL reports the row count of the last statement run.
	var affected int64
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(mysqlCallSQL(proc, len(args)), args...)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return Result{}, classifyMySQL(proc, err)
	}
	return Result{RowsAffected: affected}, nil
}

func (m *MySQL) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (m *MySQL) Close() {
	if sqlDB, err := m.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func mysqlCallSQL(proc Procedure, n int) string {
	ph := strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
	return fmt.Sprintf("CALL %s(%s)", proc, ph)
}

func classifyMySQL(proc Procedure, err error) error {
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry:
			return fmt.Errorf("%s: %w: %s", proc, ErrDuplicate, myErr.Message)
		case mysqlColumnNull:
			return fmt.Errorf("%s: %w: %s", proc, ErrMissingValue, myErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", proc, err)
}

type sqlRows struct {
	*sql.Rows
}

func (r sqlRows) Close() {
	_ = r.Rows.Close()
}
