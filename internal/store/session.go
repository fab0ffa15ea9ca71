package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session represents one study sitting for a user.
type Session struct {
	ID        string
	UserID    string
	StartedAt time.Time
}

// SessionRepository provides operations for study sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new session. A missing ID is assigned a fresh UUID and
// a zero start time is set to now.
func (r *SessionRepository) Create(sess *Session) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, user_id, started_at) VALUES (?, ?, ?)`,
		sess.ID, sess.UserID, sess.StartedAt,
	)
	return err
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	sess := &Session{}

	err := r.db.QueryRow(
		`SELECT id, user_id, started_at FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.UserID, &sess.StartedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return sess, nil
}
