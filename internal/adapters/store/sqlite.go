// Package store provides assessment history store adapters.
// SQLiteStore persists assessments across restarts; InMemoryStore backs
// tests and ephemeral runs. Both implement ports.AssessmentStore.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/vitasense/vitasense-go/internal/domain/entities"
)

// SQLiteStore records assessments in a local SQLite database.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS assessments (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		profile TEXT NOT NULL,
		ml_prediction TEXT NOT NULL,
		final_risk TEXT NOT NULL,
		confidence REAL NOT NULL,
		explanation TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save persists one assessment record.
func (s *SQLiteStore) Save(ctx context.Context, rec entities.AssessmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profileJSON, err := json.Marshal(rec.Profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	explanationJSON, err := json.Marshal(rec.Assessment.Explanation)
	if err != nil {
		return fmt.Errorf("encoding explanation: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assessments (id, created_at, profile, ml_prediction, final_risk, confidence, explanation)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.CreatedAt.Format(time.RFC3339Nano),
		profileJSON,
		string(rec.Assessment.MLPrediction),
		string(rec.Assessment.FinalRisk),
		rec.Assessment.Confidence,
		explanationJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting assessment: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]entities.AssessmentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, profile, ml_prediction, final_risk, confidence, explanation
		FROM assessments
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying assessments: %w", err)
	}
	defer rows.Close()

	var records []entities.AssessmentRecord
	for rows.Next() {
		var (
			rec             entities.AssessmentRecord
			createdAt       string
			profileJSON     []byte
			explanationJSON []byte
		)
		err := rows.Scan(&rec.ID, &createdAt, &profileJSON,
			&rec.Assessment.MLPrediction, &rec.Assessment.FinalRisk,
			&rec.Assessment.Confidence, &explanationJSON)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}
		if err := json.Unmarshal(profileJSON, &rec.Profile); err != nil {
			return nil, fmt.Errorf("decoding profile: %w", err)
		}
		if err := json.Unmarshal(explanationJSON, &rec.Assessment.Explanation); err != nil {
			return nil, fmt.Errorf("decoding explanation: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
