// Package postgres stores projects in a Postgres table, one YAML document
// per project name.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/lixenwraith/blockstage/project"
)

var _ project.Store = (*Store)(nil)

// Store implements project.Store over database/sql with the pq driver
type Store struct {
	db *sql.DB
}

// ConnString builds a libpq connection string from PG* environment
// variables
func ConnString() string {
	host := getEnv("PGHOST", "127.0.0.1")
	port := getEnv("PGPORT", "5432")
	user := getEnv("PGUSER", "blockstage")
	dbname := getEnv("PGDATABASE", "blockstage")
	password := os.Getenv("PGPASSWORD")

	if password != "" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable",
		host, port, user, dbname)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// Open connects, pings and creates the table
func Open(ctx context.Context, connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}

	s := &Store{db: db}
	if err := s.createTable(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create projects table")
	}
	return s, nil
}

// NewWithDB wraps an existing handle without touching the schema
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) createTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createTableSQL)
	return err
}

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS projects (
			name       TEXT PRIMARY KEY,
			document   TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	upsertSQL = `
		INSERT INTO projects (name, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET document = EXCLUDED.document, updated_at = now()
	`
	selectSQL = `SELECT document FROM projects WHERE name = $1`
	listSQL   = `SELECT name FROM projects ORDER BY name`
)

// Save upserts the encoded project
func (s *Store) Save(ctx context.Context, p *project.Project) error {
	if p.Name == "" {
		return errors.New("project has no name")
	}
	doc, err := project.Encode(p)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, upsertSQL, p.Name, string(doc)); err != nil {
		return errors.Wrapf(err, "save project %q", p.Name)
	}
	return nil
}

// Load fetches and decodes a project
func (s *Store) Load(ctx context.Context, name string) (*project.Project, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, selectSQL, name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(project.ErrNotFound, name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load project %q", name)
	}
	p, err := project.Decode([]byte(doc))
	if err != nil {
		return nil, errors.Wrapf(err, "decode project %q", name)
	}
	p.Name = name
	return p, nil
}

// List returns stored project names in order
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, listSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list projects")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, errors.Wrap(err, "scan project name")
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
