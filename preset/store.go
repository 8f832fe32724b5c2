// Package preset provides SQLite persistence for named asteroid parameters
package preset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lixenwraith/asteroid-forge/shape"
)

// ErrNotFound is returned when no preset has the requested name
var ErrNotFound = errors.New("preset: not found")

// Preset is a named parameter tuple
type Preset struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Params    shape.Params `json:"params"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Store provides SQLite persistence for presets
type Store struct {
	db *sql.DB
}

// New opens the database at dbPath and runs migrations
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("preset: open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("preset: enable WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the presets table
func (s *Store) Migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS presets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		frequency_scale REAL NOT NULL,
		amplitude_scale REAL NOT NULL,
		radius REAL NOT NULL,
		seed INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("preset: migrate: %w", err)
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces the preset called name
// The ID and creation time of an existing preset survive the update
func (s *Store) Save(ctx context.Context, name string, p shape.Params) (*Preset, error) {
	if name == "" {
		return nil, errors.New("preset: save: empty name")
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("preset: save %q: %w", name, err)
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO presets (id, name, frequency_scale, amplitude_scale, radius, seed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			frequency_scale = excluded.frequency_scale,
			amplitude_scale = excluded.amplitude_scale,
			radius = excluded.radius,
			seed = excluded.seed,
			updated_at = excluded.updated_at`,
		uuid.NewString(), name,
		float64(p.FrequencyScale), float64(p.AmplitudeScale), float64(p.Radius), int64(p.Seed),
		now.UnixNano(), now.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("preset: save %q: %w", name, err)
	}
	return s.Load(ctx, name)
}

// Load returns the preset called name
func (s *Store) Load(ctx context.Context, name string) (*Preset, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, frequency_scale, amplitude_scale, radius, seed, created_at, updated_at
		 FROM presets WHERE name = ?`, name)

	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("preset: load %q: %w", name, err)
	}
	return p, nil
}

// List returns all presets ordered by name
func (s *Store) List(ctx context.Context) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, frequency_scale, amplitude_scale, radius, seed, created_at, updated_at
		 FROM presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("preset: list: %w", err)
	}
	defer rows.Close()

	var presets []Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("preset: list scan: %w", err)
		}
		presets = append(presets, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("preset: list: %w", err)
	}
	return presets, nil
}

// Delete removes the preset called name
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("preset: delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("preset: delete %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(sc scanner) (*Preset, error) {
	var (
		p                      Preset
		freq, amp, radius      float64
		seed, created, updated int64
	)
	if err := sc.Scan(&p.ID, &p.Name, &freq, &amp, &radius, &seed, &created, &updated); err != nil {
		return nil, err
	}
	p.Params = shape.Params{
		FrequencyScale: float32(freq),
		AmplitudeScale: float32(amp),
		Radius:         float32(radius),
		Seed:           uint32(seed),
	}
	p.CreatedAt = time.Unix(0, created).UTC()
	p.UpdatedAt = time.Unix(0, updated).UTC()
	return &p, nil
}
