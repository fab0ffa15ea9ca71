package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// DetectionRow represents one persisted detection result tagged with its
// user and session. Rows are append-only: never mutated or deleted.
type DetectionRow struct {
	ID        string
	UserID    string
	SessionID string
	Score     float64
	Behaviors []string
	Timestamp time.Time
}

// DetectionRepository provides append and time-range query operations for
// detection results.
type DetectionRepository struct {
	db *sql.DB
}

// Detections returns the detection repository for this store.
func (s *Store) Detections() *DetectionRepository {
	return &DetectionRepository{db: s.db}
}

// Insert appends a detection row. A missing ID is assigned a fresh UUID.
// The behavior list is stored as JSON so it round-trips losslessly.
func (r *DetectionRepository) Insert(row *DetectionRow) error {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}

	behaviors := row.Behaviors
	if behaviors == nil {
		behaviors = []string{}
	}
	encoded, err := json.Marshal(behaviors)
	if err != nil {
		return fmt.Errorf("encode behaviors: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT INTO detection_results (id, user_id, session_id, score, behaviors, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		row.ID, row.UserID, row.SessionID, row.Score, string(encoded), row.Timestamp,
	)
	return err
}

// FetchWindow retrieves all rows for a user with a timestamp at or after
// since, ordered by timestamp ascending.
func (r *DetectionRepository) FetchWindow(userID string, since time.Time) ([]*DetectionRow, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, session_id, score, behaviors, timestamp
		 FROM detection_results
		 WHERE user_id = ? AND timestamp >= ?
		 ORDER BY timestamp ASC`,
		userID, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDetectionRows(rows)
}

// BySession retrieves all rows for one session, ordered by timestamp ascending.
func (r *DetectionRepository) BySession(sessionID string) ([]*DetectionRow, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, session_id, score, behaviors, timestamp
		 FROM detection_results
		 WHERE session_id = ?
		 ORDER BY timestamp ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDetectionRows(rows)
}

func scanDetectionRows(rows *sql.Rows) ([]*DetectionRow, error) {
	var result []*DetectionRow
	for rows.Next() {
		row := &DetectionRow{}
		var behaviors string

		err := rows.Scan(&row.ID, &row.UserID, &row.SessionID, &row.Score, &behaviors, &row.Timestamp)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(behaviors), &row.Behaviors); err != nil {
			return nil, fmt.Errorf("decode behaviors for row %s: %w", row.ID, err)
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
