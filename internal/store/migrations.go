package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sessions table - one row per study sitting
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			started_at DATETIME NOT NULL
		)`,

		// Detection results table - append-only, one row per detected frame
		`CREATE TABLE IF NOT EXISTS detection_results (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			score REAL NOT NULL,
			behaviors TEXT NOT NULL DEFAULT '[]',
			timestamp DATETIME NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_detection_results_user_ts ON detection_results(user_id, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_detection_results_session ON detection_results(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
