package database

import "fmt"

// createSchema creates all tables if they do not already exist. Safe to run
// against a database that already holds data.
func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ports (
			sector INTEGER PRIMARY KEY,
			class TEXT,
			ore_amt INTEGER,
			ore_pct INTEGER,
			org_amt INTEGER,
			org_pct INTEGER,
			equ_amt INTEGER,
			equ_pct INTEGER,
			last_seen TEXT
		);`,

		`CREATE TABLE IF NOT EXISTS warps (
			source INTEGER,
			destination INTEGER,
			PRIMARY KEY (source, destination)
		);`,

		`CREATE TABLE IF NOT EXISTS explored (
			sector INTEGER PRIMARY KEY
		);`,

		`CREATE TABLE IF NOT EXISTS planets (
			sector INTEGER,
			id INTEGER PRIMARY KEY,
			name TEXT,
			class TEXT,
			citadel INTEGER
		);`,

		`CREATE TABLE IF NOT EXISTS fighters (
			sector INTEGER PRIMARY KEY
		);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}
