// Package database opens the PostgreSQL pool behind the postgres session driver.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"

	"docportal/internal/config"
	"docportal/internal/database/migration"
)

const defaultConnectTimeout = 5 * time.Second

var sqlOpen = sql.Open

// SessionDSN builds the connection string for the session database.
// A configured URL wins over the individual fields. application_name,
// connect_timeout and sslmode are filled in only when the URL leaves them unset.
func SessionDSN(c config.DatabaseConfig) (string, error) {
	var u *url.URL
	if c.URL != "" {
		parsed, err := url.Parse(c.URL)
		if err != nil {
			return "", fmt.Errorf("invalid database url: %w", err)
		}
		if (parsed.Scheme != "postgres" && parsed.Scheme != "postgresql") || parsed.Host == "" {
			return "", fmt.Errorf("invalid database url: want postgres://host/db")
		}
		u = parsed
	} else {
		if c.Host == "" || c.Port == "" || c.User == "" || c.Name == "" {
			return "", fmt.Errorf("invalid database config: host, port, user, and name are required")
		}
		u = &url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(c.Host, c.Port),
			Path:   "/" + c.Name,
		}
		if c.Password != "" {
			u.User = url.UserPassword(c.User, c.Password)
		} else {
			u.User = url.User(c.User)
		}
	}

	q := u.Query()
	setDefault := func(k, v string) {
		if v != "" && q.Get(k) == "" {
			q.Set(k, v)
		}
	}
	setDefault("sslmode", c.SSLMode)
	setDefault("application_name", c.ApplicationName)
	if c.ConnectTimeoutSec > 0 {
		setDefault("connect_timeout", strconv.Itoa(c.ConnectTimeoutSec))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// OpenSessionDB opens the session pool through the pgx stdlib driver wrapped
// by otelsql, waits for the server and makes sure client_storage exists.
func OpenSessionDB(ctx context.Context, c config.DatabaseConfig, log *zap.Logger) (*sql.DB, error) {
	dsn, err := SessionDSN(c)
	if err != nil {
		return nil, err
	}
	host := hostOf(dsn)

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSQLCommenter(true),
		otelsql.WithSpanOptions(otelsql.SpanOptions{OmitRows: true, OmitConnResetSession: true}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	applyPool(db, c)

	timeout := time.Duration(c.ConnectTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping %s: %w", host, err)
	}

	if err := migration.EnsureMigrated(ctx, db, log, host); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("session_db_ready",
		zap.String("db_host", host),
		zap.String("application_name", c.ApplicationName),
		zap.Int("max_open_conns", db.Stats().MaxOpenConnections),
	)
	return db, nil
}

func applyPool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
	if c.ConnMaxIdleTimeSec > 0 {
		db.SetConnMaxIdleTime(time.Duration(c.ConnMaxIdleTimeSec) * time.Second)
	}
}

// hostOf returns the host part of dsn for logs, never the credentials.
func hostOf(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
