package database

import (
	"context"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/muhammadheryan/stock-allocation/cmd/config"
	"github.com/muhammadheryan/stock-allocation/repository/migration"
	"github.com/muhammadheryan/stock-allocation/utils/logger"
	"go.uber.org/zap"
)

// Connect opens the pool, applies pool limits and optionally runs migrations. Driver is
// mysql in production; sqlite3 with DB_DSN is accepted for local runs.
func Connect(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, cfg.Database.Driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Database.Driver, err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if cfg.Database.AutoMigrate {
		if err := migration.Run(ctx, db.DB, db.DriverName()); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("migrations applied", zap.String("driver", db.DriverName()))
	}
	return db, nil
}
