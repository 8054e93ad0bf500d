package postgres

import (
	"CryptoVault/internal/config/storageConfig"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func NewStorage(dbConfig *storageConfig.Config) (*sql.DB, error) {

	connectionString := fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		dbConfig.Username, dbConfig.Password,
		dbConfig.Host, dbConfig.Port,
		dbConfig.DBName, dbConfig.SSLMode,
	)

	db, err := sql.Open("pgx", connectionString)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(12)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(20 * time.Minute)

	if err := runMigrations(connectionString, dbConfig.MigrationsPath); err != nil {
		return nil, err
	}

	return db, nil
}

func runMigrations(connectionString, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, connectionString)
	if err != nil {
		return fmt.Errorf("cannot init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("cannot apply migrations: %w", err)
	}
	return nil
}
