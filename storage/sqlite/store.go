// Package sqlite provides a SQLite-backed profile store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"synastry-service/models"
	"synastry-service/storage"
	"synastry-service/storage/sqlite/migrations"
)

// Store persists profiles in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.ProfileStore = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite profile store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Create inserts one profile.
func (s *Store) Create(ctx context.Context, p models.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("profile id is required")
	}
	locationJSON, err := json.Marshal(p.Location)
	if err != nil {
		return fmt.Errorf("encode location: %w", err)
	}
	chartJSON, err := json.Marshal(p.Chart)
	if err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO profiles (
		   id, username, birth_date, birth_time, place, time_zone, gender,
		   looking_for_men, looking_for_women, bio, location_json, chart_json, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Username, p.BirthDate, p.BirthTime, p.Place, p.TimeZone, p.Gender,
		p.LookingForMen, p.LookingForWomen, p.Bio, string(locationJSON), string(chartJSON),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("profile %s: %w", p.Username, storage.ErrAlreadyExists)
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

const selectProfile = `SELECT id, username, birth_date, birth_time, place, time_zone, gender,
	looking_for_men, looking_for_women, bio, location_json, chart_json, created_at
	FROM profiles`

// Get returns one profile by ID.
func (s *Store) Get(ctx context.Context, id string) (models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return models.Profile{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, selectProfile+" WHERE id = ?", id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, fmt.Errorf("profile %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// List returns all profiles ordered by creation time, then ID.
func (s *Store) List(ctx context.Context) ([]models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, selectProfile+" ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	out := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return out, nil
}

// Delete removes one profile.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("profile %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (models.Profile, error) {
	var (
		p                       models.Profile
		locationJSON, chartJSON string
		createdAt               int64
	)
	if err := row.Scan(&p.ID, &p.Username, &p.BirthDate, &p.BirthTime, &p.Place, &p.TimeZone,
		&p.Gender, &p.LookingForMen, &p.LookingForWomen, &p.Bio, &locationJSON, &chartJSON,
		&createdAt); err != nil {
		return models.Profile{}, err
	}
	if err := json.Unmarshal([]byte(locationJSON), &p.Location); err != nil {
		return models.Profile{}, fmt.Errorf("decode location: %w", err)
	}
	if err := json.Unmarshal([]byte(chartJSON), &p.Chart); err != nil {
		return models.Profile{}, fmt.Errorf("decode chart: %w", err)
	}
	p.CreatedAt = fromMillis(createdAt)
	return p, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
