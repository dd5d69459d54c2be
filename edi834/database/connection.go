package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/CMSgov/edi834-app/conf"
	"github.com/CMSgov/edi834-app/edi834/utils"
	"github.com/CMSgov/edi834-app/log"
	_ "github.com/lib/pq"
)

// Variable substitution to support testing.
var driverName = "postgres"

type Config struct {
	DatabaseURL        string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DatabaseURL:        conf.GetEnv("DATABASE_URL"),
		MaxOpenConns:       utils.GetEnvInt("EDI834_DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:       utils.GetEnvInt("EDI834_DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetimeMin: utils.GetEnvInt("EDI834_DB_CONN_MAX_LIFETIME_MIN", 5),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("invalid config, DatabaseURL must be set")
	}

	log.Storage.Info("Successfully loaded configuration for Database.")
	return cfg, nil
}

// Connect opens a connection pool to cfg.DatabaseURL and verifies it is reachable.
func Connect(ctx context.Context, cfg *Config) (*sql.DB, error) {
	db, err := sql.Open(driverName, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMin) * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
