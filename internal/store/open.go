package store

import (
	"context"
	"fmt"
	"time"
)

// Open connects the gateway for driver, which is "postgres" or "mysql".
func Open(ctx context.Context, driver, dsn string, maxConns int, timeout time.Duration) (Gateway, error) {
	switch driver {
	case "postgres":
		pool, err := OpenPostgres(ctx, dsn, int32(maxConns))
		if err != nil {
			return nil, err
		}
		return NewPostgres(pool, timeout), nil
	case "mysql":
		db, err := OpenMySQL(dsn, maxConns)
		if err != nil {
			return nil, err
		}
		return NewMySQL(db, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}
