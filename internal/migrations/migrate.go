package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

// Up применяет все непримененные миграции схемы
func Up(db *sql.DB) error {
	goose.SetBaseFS(files)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrations: set dialect: %w", err)
	}

	if err := goose.Up(db, "sql"); err != nil {
		return fmt.Errorf("migrations: up: %w", err)
	}

	return nil
}
