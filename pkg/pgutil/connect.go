package pgutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"

	"github.com/chainsafe/ton-deeplink/pkg/config"
)

// ConnectDB creates a connection to the specified database
func ConnectDB(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*bun.DB, error) {
	// functional options escape special characters in credentials
	connector := pgdriver.NewConnector(
		pgdriver.WithNetwork("tcp"),
		pgdriver.WithAddr(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		pgdriver.WithUser(cfg.User),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithDatabase(cfg.Database),
		pgdriver.WithInsecure(cfg.SSLMode == "" || cfg.SSLMode == "disable"),
	)

	sqldb := sql.OpenDB(connector)
	db := bun.NewDB(sqldb, pgdialect.New())

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", cfg.Database, err)
	}

	if logger != nil {
		logger.Info("connected to database", zap.String("database", cfg.Database), zap.String("host", cfg.Host))
	}
	return db, nil
}
