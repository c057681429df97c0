package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedded embed.FS

func dialectFor(driverName string) (goose.Dialect, error) {
	switch driverName {
	case "mysql":
		return goose.DialectMySQL, nil
	case "sqlite3":
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported migration driver %q", driverName)
	}
}

// Run applies all pending embedded migrations for the given driver.
func Run(ctx context.Context, db *sql.DB, driverName string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	dialect, err := dialectFor(driverName)
	if err != nil {
		return err
	}
	fsys, err := fs.Sub(embedded, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
