package postgres

import (
	"database/sql"
	"fmt"

	"maCentral/internal/config"
	"maCentral/internal/models"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

const schema = `
	CREATE TABLE IF NOT EXISTS scans (
		id         UUID PRIMARY KEY,
		event_id   BIGINT NOT NULL,
		payload    TEXT NOT NULL,
		outcome    TEXT NOT NULL,
		detail     TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS scans_event_created_idx ON scans (event_id, created_at DESC);`

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	s := &Storage{DB: db}
	if err = s.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Storage) Migrate() error {
	if _, err := s.DB.Exec(schema); err != nil {
		return fmt.Errorf("failed to create scans table: %w", err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// SaveScan stores rec, assigning an id when it has none.
func (s *Storage) SaveScan(rec models.ScanRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	query := `
		INSERT INTO scans (id, event_id, payload, outcome, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.DB.Exec(query, rec.ID, rec.EventID, rec.Payload, rec.Outcome, rec.Detail, rec.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to save scan: %w", err)
	}

	return rec.ID, nil
}

// GetScans returns the most recent scans for eventID, newest first.
func (s *Storage) GetScans(eventID int64, limit int) ([]models.ScanRecord, error) {
	query := `
		SELECT id, event_id, payload, outcome, detail, created_at
		FROM scans
		WHERE event_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := s.DB.Query(query, eventID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get scans: %w", err)
	}
	defer rows.Close()

	var scans []models.ScanRecord
	for rows.Next() {
		var rec models.ScanRecord
		err = rows.Scan(
			&rec.ID,
			&rec.EventID,
			&rec.Payload,
			&rec.Outcome,
			&rec.Detail,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scans = append(scans, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scans: %w", err)
	}

	return scans, nil
}
