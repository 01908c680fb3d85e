package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"roomcal/internal/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// SQLiteReservationStore persists each room's list as a single serialized
// row, keeping the same per-room key-value contract as the Redis store.
type SQLiteReservationStore struct {
	db     *sql.DB
	logger *zerolog.Logger
}

func NewSQLiteReservationStore(path string, logger *zerolog.Logger) (*SQLiteReservationStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	query := `CREATE TABLE IF NOT EXISTS room_reservations (
        room TEXT PRIMARY KEY,
        data TEXT NOT NULL,
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
    )`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLiteReservationStore{db: db, logger: logger}, nil
}

func (s *SQLiteReservationStore) Get(ctx context.Context, room string) ([]models.Reservation, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM room_reservations WHERE room = ?", room).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.Reservation{}, nil
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("room", room).Msg("reservation read failed, treating as empty")
		return []models.Reservation{}, nil
	}

	var reservations []models.Reservation
	if err := json.Unmarshal([]byte(data), &reservations); err != nil {
		s.logger.Warn().Err(err).Str("room", room).Msg("reservation data corrupt, treating as empty")
		return []models.Reservation{}, nil
	}

	return reservations, nil
}

func (s *SQLiteReservationStore) Save(ctx context.Context, room string, reservations []models.Reservation) error {
	data, err := json.Marshal(reservations)
	if err != nil {
		return fmt.Errorf("failed to marshal reservations: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO room_reservations (room, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
         ON CONFLICT(room) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		room, string(data))
	if err != nil {
		return fmt.Errorf("failed to save reservations for %s: %w", room, err)
	}

	return nil
}

func (s *SQLiteReservationStore) Close() error {
	return s.db.Close()
}
