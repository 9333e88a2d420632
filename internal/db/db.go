package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/crucial707/file-comparator/internal/config"
)

// Connect opens a Postgres connection from the config, applies pool limits,
// and verifies it with a ping.
func Connect(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// DSN builds the lib/pq connection string. TLS parameters are included only
// when configured.
func DSN(cfg config.Config) string {
	dsn := fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass, cfg.DBSSLMode,
	)
	if cfg.DBSSLRootCert != "" {
		dsn += " sslrootcert=" + cfg.DBSSLRootCert
	}
	if cfg.DBSSLCert != "" {
		dsn += " sslcert=" + cfg.DBSSLCert
	}
	if cfg.DBSSLKey != "" {
		dsn += " sslkey=" + cfg.DBSSLKey
	}
	return dsn
}

// URL returns the postgres:// form of the DSN, as required by golang-migrate.
func URL(cfg config.Config) string {
	u := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)
	if cfg.DBSSLRootCert != "" {
		u += "&sslrootcert=" + cfg.DBSSLRootCert
	}
	return u
}
