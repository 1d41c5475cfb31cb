package database

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Alijeyrad/dentclinic/config"
	"github.com/Alijeyrad/dentclinic/internal/repo"
)

// NewClient creates the shared data-access client from central config.
func NewClient(cfg config.DatabaseConfig) (*repo.Client, error) {
	return NewClientFromConfig(FromCentralConfig(cfg))
}

// NewClientFromConfig opens PostgreSQL and wraps it in a repo.Client. Query
// logging is layered on the driver when enabled, and pool statistics are
// published on the default Prometheus registry.
func NewClientFromConfig(cfg Config) (*repo.Client, error) {
	db, err := openSQLDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := RegisterPoolMetrics(prometheus.DefaultRegisterer, db, cfg.DBName); err != nil {
		_ = db.Close()
		return nil, err
	}

	var drv dialect.Driver = entsql.OpenDB(dialect.Postgres, db)
	if cfg.EnableLogging {
		drv = newLoggingDriver(drv, cfg.SlowQueryThreshold())
	}

	return repo.NewClient(drv), nil
}

// Migrate creates or updates the schema. In safe mode columns and indexes
// are never dropped.
func Migrate(ctx context.Context, client *repo.Client, safeMode bool) error {
	opts := []schema.MigrateOption{}
	if !safeMode {
		opts = append(opts, schema.WithDropColumn(true), schema.WithDropIndex(true))
	}
	if err := client.Migrate(ctx, opts...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
