package main

import (
	"database/sql"
	"flag"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	loadEnvFiles()

	drv, err := driver()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	dir := migrationsDir(drv)

	if *command == "create" {
		if *name == "" {
			logger.Fatal("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			logger.Fatal("failed to create migration", zap.Error(err))
		}
		logger.Info("migration created", zap.String("name", *name), zap.String("dir", dir))
		return
	}

	db, err := openDB(drv, dsn(drv))
	if err != nil {
		logger.Fatal("failed to open database", zap.String("driver", drv), zap.Error(err))
	}
	defer db.Close()

	if err := goose.SetDialect(drv); err != nil {
		logger.Fatal("failed to set dialect", zap.Error(err))
	}

	switch *command {
	case "up":
		err = goose.Up(db, dir)
	case "down":
		err = goose.Down(db, dir)
	case "status":
		err = goose.Status(db, dir)
	default:
		logger.Fatal("unknown command, use: up, down, status, create", zap.String("command", *command))
	}
	if err != nil {
		logger.Fatal("migration failed", zap.String("command", *command), zap.Error(err))
	}
	logger.Info("migration complete", zap.String("command", *command), zap.String("dir", dir))
}

func openDB(driver, dsn string) (*sql.DB, error) {
	if driver == "mysql" {
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, err
		}
		cfg.ParseTime = true
		return sql.Open("mysql", cfg.FormatDSN())
	}
	return sql.Open("pgx", dsn)
}
