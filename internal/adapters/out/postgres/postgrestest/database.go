// Package postgrestest starts a throwaway PostgreSQL container for integration suites.
package postgrestest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pizzeria/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Database is a migrated database running in its own container.
type Database struct {
	container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine, connects to it and migrates every table.
func Start(ctx context.Context) (*Database, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	d := &Database{container: container}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}

	if d.DB, err = gorm.Open(postgresdriver.Open(connStr), &gorm.Config{}); err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}

	if err = postgres.Migrate(ctx, d.DB); err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}

	return d, nil
}

// Truncate empties the given tables and resets their sequences.
func (d *Database) Truncate(tables ...string) error {
	return d.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", strings.Join(tables, ", "))).Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d.container == nil {
		return nil
	}
	return d.container.Terminate(ctx)
}
