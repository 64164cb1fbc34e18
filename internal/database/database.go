package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/Suhanikhatrii/user-data-requisition/internal/identity"
	"github.com/Suhanikhatrii/user-data-requisition/internal/requisition"
)

// New opens a PostgreSQL connection pool and verifies it is reachable
func New(dsn string, maxConnections int) (*bun.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	if maxConnections <= 0 {
		maxConnections = 10
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	sqldb.SetMaxOpenConns(maxConnections)
	sqldb.SetMaxIdleConns(maxConnections / 2)
	sqldb.SetConnMaxLifetime(time.Hour)

	db := bun.NewDB(sqldb, pgdialect.New())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// CreateTables creates the users and requisitions tables if absent
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []interface{}{
		(*identity.UserSchema)(nil),
		(*requisition.RequisitionSchema)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for model %T: %w", model, err)
		}
	}

	return nil
}
