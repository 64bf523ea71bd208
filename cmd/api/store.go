package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Lelo88/product-api-golang/internal/config"
	"github.com/Lelo88/product-api-golang/internal/db"
	"github.com/Lelo88/product-api-golang/internal/logger"
	"github.com/Lelo88/product-api-golang/internal/products"
)

// pgStore es el gateway pgx con el pool que lo sostiene.
type pgStore struct {
	*products.Repository
	pool *pgxpool.Pool
}

func (store *pgStore) Ping(ctx context.Context) error {
	return store.pool.Ping(ctx)
}

func (store *pgStore) Close() {
	store.pool.Close()
}

// gormStore es el gateway GORM/SQLite con su *sql.DB subyacente.
type gormStore struct {
	*products.GormRepository
	sqlDB *sql.DB
}

func (store *gormStore) Ping(ctx context.Context) error {
	return store.sqlDB.PingContext(ctx)
}

func (store *gormStore) Close() {
	_ = store.sqlDB.Close()
}

// openStore elige el gateway según el esquema de DATABASE_URL.
func openStore(ctx context.Context, cfg config.Config, appLogger *zap.Logger) (appStore, error) {
	driver, dsn, err := db.ParseURL(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	switch driver {
	case db.DriverPostgres:
		return openPostgres(ctx, dsn, cfg.AutoMigrate)
	case db.DriverSQLite:
		return openSQLite(ctx, dsn, cfg.AutoMigrate, appLogger)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

func openPostgres(ctx context.Context, dsn string, autoMigrate bool) (appStore, error) {
	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		if err := db.Migrate(pool); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return &pgStore{Repository: products.NewRepository(pool), pool: pool}, nil
}

func openSQLite(ctx context.Context, dsn string, autoMigrate bool, appLogger *zap.Logger) (appStore, error) {
	database, err := db.OpenSQLite(dsn, logger.NewGormLogger(appLogger))
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	repository := products.NewGormRepository(database)
	if autoMigrate {
		if err := repository.Migrate(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	return &gormStore{GormRepository: repository, sqlDB: sqlDB}, nil
}
