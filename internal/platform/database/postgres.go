// Package database opens the Postgres connection pool and the GORM session the
// repositories run on.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds connection settings. URL, when set, takes precedence over the
// individual fields.
type Config struct {
	URL          string `env:"URL"`
	Host         string `env:"HOST"           envDefault:"localhost"`
	Port         uint16 `env:"PORT"           envDefault:"5432"`
	User         string `env:"USER"           envDefault:"postgres"`
	Password     string `env:"PASSWORD"       envDefault:"postgres"`
	Database     string `env:"DATABASE"       envDefault:"travel_profiles"`
	SSLMode      string `env:"SSLMODE"        envDefault:"disable"`
	PoolMaxConns int    `env:"POOL_MAX_CONNS" envDefault:"5"`
	AutoMigrate  bool   `env:"AUTO_MIGRATE"   envDefault:"true"`
}

// ConnString renders the pgx connection string.
func (c Config) ConnString() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port))),
		Path:   "/" + c.Database,
	}
	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	if c.PoolMaxConns > 0 {
		q.Set("pool_max_conns", strconv.Itoa(c.PoolMaxConns))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// PoolOption adjusts the pgx pool configuration before the pool is created.
type PoolOption func(*pgxpool.Config)

// DB bundles the pgx pool with the database/sql and GORM handles built on it.
type DB struct {
	Pool *pgxpool.Pool
	SQL  *sql.DB
	Gorm *gorm.DB
}

// Open connects to Postgres and verifies the connection with a ping.
func Open(ctx context.Context, cfg Config, opts ...PoolOption) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	for _, opt := range opts {
		opt(poolCfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 NewGormLogger(),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		_ = sqlDB.Close()
		pool.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return &DB{Pool: pool, SQL: sqlDB, Gorm: gdb}, nil
}

// Migrate creates or updates the tables for models.
func (d *DB) Migrate(ctx context.Context, models ...any) error {
	if err := d.Gorm.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Close releases the sql handle and the pool.
func (d *DB) Close() {
	_ = d.SQL.Close()
	d.Pool.Close()
}
