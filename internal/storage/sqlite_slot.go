package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"

	"github.com/SifatU360/SwiftCart/internal/domain"
)

// SQLiteSlot keeps the serialized cart as a single row in an embedded sqlite
// database. The payload column holds the same JSON array the file slot
// writes, so the two backends are interchangeable.
type SQLiteSlot struct {
	db   *sql.DB
	name string
}

func NewSQLiteSlot(dbPath, name string) (*SQLiteSlot, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteSlot{db: db, name: name}, nil
}

func (s *SQLiteSlot) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteSlot) Save(ctx context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}

	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	query := `
		INSERT INTO cart_slots (name, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET payload = $2, updated_at = $3
	`
	if _, err := s.db.ExecContext(ctx, query, s.name, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("write cart slot: %w", err)
	}
	return nil
}

func (s *SQLiteSlot) Load(ctx context.Context) ([]domain.CartLine, error) {
	var payload string
	query := `SELECT payload FROM cart_slots WHERE name = $1`

	err := s.db.QueryRowContext(ctx, query, s.name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read cart slot: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(payload), &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return lines, nil
}

func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
