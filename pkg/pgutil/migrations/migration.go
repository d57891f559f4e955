// Package migrations holds migrations related helpers
package migrations

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"
)

// Commands accepted by RunMigrations.
const (
	CommandInit   = "init"
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
)

// CreateSchema creates schema from models
func CreateSchema(ctx context.Context, db bun.IDB, models ...any) error {
	for _, model := range models {
		log.Println("Creating Table for", reflect.TypeOf(model))
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

// DropTables drops tables from database
func DropTables(ctx context.Context, db bun.IDB, models ...any) error {
	for _, model := range models {
		log.Println("Dropping Table for", reflect.TypeOf(model))
		_, err := db.NewDropTable().
			Model(model).
			IfExists().
			Cascade().
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

// TruncateTables removes entries from tables
func TruncateTables(ctx context.Context, db bun.IDB, models ...any) error {
	for _, model := range models {
		_, err := db.NewDelete().
			Model(model).
			Where("1=1").
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

// CreateModelIndexes creates indexes named idx_<table>_<column> on the
// table associated with the model.
func CreateModelIndexes(ctx context.Context, db bun.IDB, model any, columns ...string) error {
	for _, column := range columns {
		indexName, err := ModelIndexName(db, model, column)
		if err != nil {
			return err
		}
		if _, err = db.NewCreateIndex().
			Model(model).
			Index(indexName).
			Column(column).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// DropModelIndexes drops indexes from the database using model + column names.
func DropModelIndexes(ctx context.Context, db bun.IDB, model any, columns ...string) error {
	for _, column := range columns {
		indexName, err := ModelIndexName(db, model, column)
		if err != nil {
			return err
		}
		if _, err = db.NewDropIndex().
			Model(model).
			Index(indexName).
			IfExists().
			Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ModelIndexName returns idx_<table>_<column> for the model's table.
func ModelIndexName(db bun.IDB, model any, column string) (string, error) {
	if model == nil {
		return "", fmt.Errorf("model cannot be nil")
	}
	tableName := db.NewCreateIndex().Model(model).GetTableName()
	if tableName == "" {
		return "", fmt.Errorf("failed to resolve table name for model %T", model)
	}

	indexTableName := strings.NewReplacer(`"`, "", ".", "_").Replace(tableName)
	return fmt.Sprintf("idx_%s_%s", indexTableName, column), nil
}

// RunMigrations runs a single migration command
func RunMigrations(ctx context.Context, migrator *migrate.Migrator, logger *zap.Logger, command string) error {
	switch command {
	case CommandInit:
		if err := migrator.Init(ctx); err != nil {
			return err
		}
		logger.Info("migration table created")
		return nil

	case CommandUp:
		return withLock(ctx, migrator, logger, func() error {
			group, err := migrator.Migrate(ctx)
			if err != nil {
				return err
			}
			if group.IsZero() {
				logger.Info("no new migrations to run (database is up to date)")
			} else {
				logger.Info("migrated", zap.Stringer("group", group))
			}
			return nil
		})

	case CommandDown:
		return withLock(ctx, migrator, logger, func() error {
			group, err := migrator.Rollback(ctx)
			if err != nil {
				return err
			}
			if group.IsZero() {
				logger.Info("no migrations to rollback")
			} else {
				logger.Info("rolled back", zap.Stringer("group", group))
			}
			return nil
		})

	case CommandStatus:
		ms, err := migrator.MigrationsWithStatus(ctx)
		if err != nil {
			return err
		}
		logger.Info("migration status",
			zap.Stringer("migrations", ms),
			zap.Stringer("unapplied", ms.Unapplied()),
			zap.Stringer("last_group", ms.LastGroup()))
		return nil

	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func withLock(ctx context.Context, migrator *migrate.Migrator, logger *zap.Logger, fn func() error) error {
	if err := migrator.Lock(ctx); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	defer func() {
		if err := migrator.Unlock(ctx); err != nil {
			logger.Warn("failed to release migration lock", zap.Error(err))
		}
	}()
	return fn()
}
