package docsite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// FeatureStore wraps a SQLite database and provides CRUD operations for the
// landing page features.
type FeatureStore struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*FeatureStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the admin write while pages read; busy_timeout makes writers
	// wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &FeatureStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *FeatureStore) Close() error {
	return s.db.Close()
}

func (s *FeatureStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS features (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT '',
    position INTEGER NOT NULL DEFAULT 0,
    published INTEGER NOT NULL DEFAULT 1
);
`)
	return err
}

const featureColumns = `slug, title, description, image, position, published`

func scanFeatures(rows *sql.Rows) ([]Feature, error) {
	defer rows.Close()
	var features []Feature
	for rows.Next() {
		var f Feature
		var published int
		if err := rows.Scan(&f.Slug, &f.Title, &f.Description, &f.Image, &f.Position, &published); err != nil {
			return nil, err
		}
		f.Published = published == 1
		features = append(features, f)
	}
	return features, rows.Err()
}

// ListFeatures returns published features ordered by position, then title.
func (s *FeatureStore) ListFeatures() ([]Feature, error) {
	rows, err := s.db.Query(`SELECT ` + featureColumns + ` FROM features WHERE published = 1 ORDER BY position ASC, title ASC`)
	if err != nil {
		return nil, err
	}
	return scanFeatures(rows)
}

// ListAllFeatures returns every feature, drafts included, for the admin dashboard.
func (s *FeatureStore) ListAllFeatures() ([]Feature, error) {
	rows, err := s.db.Query(`SELECT ` + featureColumns + ` FROM features ORDER BY position ASC, title ASC`)
	if err != nil {
		return nil, err
	}
	return scanFeatures(rows)
}

// GetFeature returns a feature by slug regardless of published status.
// A missing slug yields ErrNotFound.
func (s *FeatureStore) GetFeature(slug string) (Feature, error) {
	var f Feature
	var published int
	err := s.db.QueryRow(`SELECT `+featureColumns+` FROM features WHERE slug = ?`, slug).
		Scan(&f.Slug, &f.Title, &f.Description, &f.Image, &f.Position, &published)
	if err != nil {
		return Feature{}, err
	}
	f.Published = published == 1
	return f, nil
}

// SaveFeature upserts a feature keyed by slug.
func (s *FeatureStore) SaveFeature(f Feature) error {
	if strings.TrimSpace(f.Slug) == "" {
		return fmt.Errorf("docsite: feature slug is required")
	}
	published := 0
	if f.Published {
		published = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO features (`+featureColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		f.Slug, f.Title, f.Description, f.Image, f.Position, published)
	return err
}

// DeleteFeature removes a feature by slug. Deleting a missing slug is not an error.
func (s *FeatureStore) DeleteFeature(slug string) error {
	_, err := s.db.Exec(`DELETE FROM features WHERE slug = ?`, slug)
	return err
}

// CountFeatures returns the number of stored features, drafts included.
func (s *FeatureStore) CountFeatures() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM features`).Scan(&n)
	return n, err
}
