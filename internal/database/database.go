package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rbeiter/tw2002-client/internal/log"
)

// Store is the persistent record of everything observed about the game
// universe. All writes are upserts; warps and explored marks are add-only.
// Store is not safe for concurrent writers; the persistence queue's single
// consumer is the only writer during ingestion.
type Store struct {
	db       *sql.DB
	filename string
}

// Open opens (or creates) the SQLite database at filename and ensures the
// schema exists.
func Open(filename string) (*Store, error) {
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, filename: filename}
	if err = s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}

	log.Debug("database opened", "filename", filename)
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	s.db = nil
	return nil
}

// SaveWarpList marks source as fully explored and records each destination
// as a one-way warp out of it. A single transaction covers the whole report
// row so a partially applied row is never visible.
func (s *Store) SaveWarpList(source int, destinations []int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err = tx.Exec(`INSERT OR REPLACE INTO explored (sector) VALUES (?)`, source); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to mark sector %d explored: %w", source, err)
	}
	for _, dest := range destinations {
		if _, err = tx.Exec(`INSERT OR REPLACE INTO warps (source, destination) VALUES (?, ?)`, source, dest); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save warp %d->%d: %w", source, dest, err)
		}
	}

	return tx.Commit()
}

// SaveWarp records a single one-way warp.
func (s *Store) SaveWarp(source, destination int) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO warps (source, destination) VALUES (?, ?)`, source, destination)
	if err != nil {
		return fmt.Errorf("failed to save warp %d->%d: %w", source, destination, err)
	}
	return nil
}

// SaveRoute records every consecutive pair of a plotted route as a warp.
// This is how computer-planned routes populate connectivity for sectors
// whose own warp lists have never been seen.
func (s *Store) SaveRoute(route []int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for i := 0; i+1 < len(route); i++ {
		if _, err = tx.Exec(`INSERT OR REPLACE INTO warps (source, destination) VALUES (?, ?)`, route[i], route[i+1]); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save route warp %d->%d: %w", route[i], route[i+1], err)
		}
	}

	return tx.Commit()
}

// SavePort replaces the stored record for the port's sector. LastSeen is
// stamped with the current UTC time; the most recent sighting always wins.
func (s *Store) SavePort(p Port) error {
	p.LastSeen = time.Now().UTC().Format("2006-01-02 15:04:05")

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO ports (sector, class, ore_amt, ore_pct, org_amt, org_pct, equ_amt, equ_pct, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Sector, p.Class, p.OreAmt, p.OrePct, p.OrgAmt, p.OrgPct, p.EquAmt, p.EquPct, p.LastSeen)
	if err != nil {
		return fmt.Errorf("failed to save port in sector %d: %w", p.Sector, err)
	}
	return nil
}

// SavePlanet replaces the stored record for the planet's id.
func (s *Store) SavePlanet(p Planet) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO planets (sector, id, name, class, citadel)
		VALUES (?, ?, ?, ?, ?)`,
		p.Sector, p.ID, p.Name, p.Class, p.Citadel)
	if err != nil {
		return fmt.Errorf("failed to save planet #%d: %w", p.ID, err)
	}
	return nil
}

// SaveFighter records one sector holding deployed fighters.
func (s *Store) SaveFighter(sector int) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO fighters (sector) VALUES (?)`, sector)
	if err != nil {
		return fmt.Errorf("failed to save fighter location %d: %w", sector, err)
	}
	return nil
}

// ClearFighters drops all recorded fighter locations. Called when a fresh
// deployed-fighter scan begins, since the scan supersedes prior knowledge.
func (s *Store) ClearFighters() error {
	if _, err := s.db.Exec(`DELETE FROM fighters`); err != nil {
		return fmt.Errorf("failed to clear fighter locations: %w", err)
	}
	return nil
}

// Ports returns every known port.
func (s *Store) Ports() ([]Port, error) {
	rows, err := s.db.Query(`SELECT sector, class, ore_amt, ore_pct, org_amt, org_pct, equ_amt, equ_pct, last_seen FROM ports`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ports: %w", err)
	}
	defer rows.Close()

	var ports []Port
	for rows.Next() {
		var p Port
		if err = rows.Scan(&p.Sector, &p.Class, &p.OreAmt, &p.OrePct, &p.OrgAmt, &p.OrgPct, &p.EquAmt, &p.EquPct, &p.LastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan port row: %w", err)
		}
		ports = append(ports, p)
	}
	return ports, rows.Err()
}

// WarpsFrom returns the known one-hop destinations out of sector.
func (s *Store) WarpsFrom(sector int) ([]int, error) {
	return s.intColumn(`SELECT destination FROM warps WHERE source = ?`, sector)
}

// AllWarps returns the complete known edge set.
func (s *Store) AllWarps() ([]Warp, error) {
	rows, err := s.db.Query(`SELECT source, destination FROM warps`)
	if err != nil {
		return nil, fmt.Errorf("failed to query warps: %w", err)
	}
	defer rows.Close()

	var warps []Warp
	for rows.Next() {
		var w Warp
		if err = rows.Scan(&w.Source, &w.Destination); err != nil {
			return nil, fmt.Errorf("failed to scan warp row: %w", err)
		}
		warps = append(warps, w)
	}
	return warps, rows.Err()
}

// ExploredSectors returns the sectors whose outgoing warps are fully known.
func (s *Store) ExploredSectors() ([]int, error) {
	return s.intColumn(`SELECT sector FROM explored`)
}

// FighterSectors returns the sectors currently holding deployed fighters.
func (s *Store) FighterSectors() ([]int, error) {
	return s.intColumn(`SELECT sector FROM fighters`)
}

// Planets returns every known planet.
func (s *Store) Planets() ([]Planet, error) {
	rows, err := s.db.Query(`SELECT sector, id, name, class, citadel FROM planets`)
	if err != nil {
		return nil, fmt.Errorf("failed to query planets: %w", err)
	}
	defer rows.Close()

	var planets []Planet
	for rows.Next() {
		var p Planet
		if err = rows.Scan(&p.Sector, &p.ID, &p.Name, &p.Class, &p.Citadel); err != nil {
			return nil, fmt.Errorf("failed to scan planet row: %w", err)
		}
		planets = append(planets, p)
	}
	return planets, rows.Err()
}

// BlindWarps returns warp destinations whose own outgoing warps have never
// been observed. These are the frontier of the known graph.
func (s *Store) BlindWarps() ([]int, error) {
	return s.intColumn(`
		SELECT DISTINCT destination FROM warps
		WHERE destination NOT IN (SELECT sector FROM explored)`)
}

// Stats summarizes the store contents for the stats command.
type Stats struct {
	Ports        int
	Warps        int
	Explored     int
	Planets      int
	Fighters     int
	KnownSectors int
}

// Counts returns row counts per table plus the number of distinct sectors
// referenced by any warp.
func (s *Store) Counts() (Stats, error) {
	var st Stats
	queries := []struct {
		dest  *int
		query string
	}{
		{&st.Ports, `SELECT COUNT(*) FROM ports`},
		{&st.Warps, `SELECT COUNT(*) FROM warps`},
		{&st.Explored, `SELECT COUNT(*) FROM explored`},
		{&st.Planets, `SELECT COUNT(*) FROM planets`},
		{&st.Fighters, `SELECT COUNT(*) FROM fighters`},
		{&st.KnownSectors, `SELECT COUNT(*) FROM (SELECT source AS s FROM warps UNION SELECT destination FROM warps)`},
	}
	for _, q := range queries {
		if err := s.db.QueryRow(q.query).Scan(q.dest); err != nil {
			return Stats{}, fmt.Errorf("failed to count rows: %w", err)
		}
	}
	return st, nil
}

func (s *Store) intColumn(query string, args ...any) ([]int, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var values []int
	for rows.Next() {
		var v int
		if err = rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
