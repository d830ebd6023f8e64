// Package chronicle records run history to SQLite: battles, notable
// events, and yearly nation summaries. It is append-only reporting
// storage; the simulation never reads state back from it.
package chronicle

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/LDCODES12/EconGame/internal/game"
	"github.com/LDCODES12/EconGame/internal/military"
	"github.com/LDCODES12/EconGame/internal/nation"
)

// Chronicle wraps a SQLite connection scoped to one run. Every row
// carries the run id, so multiple runs can share a database file.
type Chronicle struct {
	conn  *sqlx.DB
	RunID string
}

// Open opens or creates the chronicle database at the given path and
// starts a new run.
func Open(path string, seed int64) (*Chronicle, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open chronicle: %w", err)
	}

	c := &Chronicle{conn: conn, RunID: uuid.NewString()}
	if err := c.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate chronicle: %w", err)
	}

	if _, err := conn.Exec(
		"INSERT INTO runs (id, seed) VALUES (?, ?)", c.RunID, seed); err != nil {
		conn.Close()
		return nil, fmt.Errorf("register run: %w", err)
	}

	slog.Info("chronicle opened", "path", path, "run", c.RunID)
	return c, nil
}

// Close closes the database connection.
func (c *Chronicle) Close() error {
	return c.conn.Close()
}

func (c *Chronicle) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS battles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		date TEXT NOT NULL,
		province_id INTEGER NOT NULL,
		attacker_nation INTEGER NOT NULL,
		defender_nation INTEGER NOT NULL,
		winner TEXT NOT NULL,
		attacker_losses INTEGER NOT NULL,
		defender_losses INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		date TEXT NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS years (
		run_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		nation_id INTEGER NOT NULL,
		nation_name TEXT NOT NULL,
		provinces INTEGER NOT NULL,
		treasury REAL NOT NULL,
		manpower INTEGER NOT NULL,
		army_size INTEGER NOT NULL,
		wars_fought INTEGER NOT NULL,
		battles_fought INTEGER NOT NULL,
		PRIMARY KEY (run_id, year, nation_id)
	);

	CREATE INDEX IF NOT EXISTS idx_battles_run ON battles(run_id);
	CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id);
	`
	_, err := c.conn.Exec(schema)
	return err
}

// RecordBattle appends one battle report.
func (c *Chronicle) RecordBattle(date string, report *military.Report) {
	attackerLosses, defenderLosses := report.TotalCasualties()

	_, err := c.conn.Exec(`INSERT INTO battles
		(run_id, date, province_id, attacker_nation, defender_nation,
		 winner, attacker_losses, defender_losses)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.RunID, date, report.ProvinceID,
		report.AttackerNationID, report.DefenderNationID,
		string(report.Winner), attackerLosses, defenderLosses)
	if err != nil {
		slog.Warn("chronicle battle insert failed", "err", err)
	}
}

// RecordEvent appends one notable occurrence.
func (c *Chronicle) RecordEvent(date, category, description string) {
	_, err := c.conn.Exec(
		"INSERT INTO events (run_id, date, category, description) VALUES (?, ?, ?, ?)",
		c.RunID, date, category, description)
	if err != nil {
		slog.Warn("chronicle event insert failed", "err", err)
	}
}

// RecordYear appends a per-nation snapshot for one completed year.
func (c *Chronicle) RecordYear(year int, stats game.Statistics, nations map[int]*nation.Nation) {
	tx, err := c.conn.Beginx()
	if err != nil {
		slog.Warn("chronicle year tx failed", "err", err)
		return
	}
	defer tx.Rollback()

	for _, n := range nations {
		_, err := tx.Exec(`INSERT OR REPLACE INTO years
			(run_id, year, nation_id, nation_name, provinces, treasury,
			 manpower, army_size, wars_fought, battles_fought)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.RunID, year, n.ID, n.Name, len(n.Provinces), n.Treasury,
			n.Manpower, n.ArmySize, stats.WarsFought, stats.BattlesFought)
		if err != nil {
			slog.Warn("chronicle year insert failed", "year", year, "nation", n.ID, "err", err)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Warn("chronicle year commit failed", "err", err)
	}
}

// BattleRow is one recorded battle.
type BattleRow struct {
	Date           string `db:"date"`
	ProvinceID     int    `db:"province_id"`
	AttackerNation int    `db:"attacker_nation"`
	DefenderNation int    `db:"defender_nation"`
	Winner         string `db:"winner"`
	AttackerLosses int    `db:"attacker_losses"`
	DefenderLosses int    `db:"defender_losses"`
}

// YearRow is one nation's snapshot for one completed year.
type YearRow struct {
	Year       int     `db:"year"`
	NationID   int     `db:"nation_id"`
	NationName string  `db:"nation_name"`
	Provinces  int     `db:"provinces"`
	Treasury   float64 `db:"treasury"`
	Manpower   int     `db:"manpower"`
	ArmySize   int     `db:"army_size"`
}

// YearSnapshots returns every nation snapshot recorded for a year of
// this run, ordered by nation id.
func (c *Chronicle) YearSnapshots(year int) ([]YearRow, error) {
	var rows []YearRow
	err := c.conn.Select(&rows, `SELECT year, nation_id, nation_name,
		provinces, treasury, manpower, army_size
		FROM years WHERE run_id = ? AND year = ? ORDER BY nation_id`,
		c.RunID, year)
	return rows, err
}

// RecentBattles returns the most recent battles of this run.
func (c *Chronicle) RecentBattles(limit int) ([]BattleRow, error) {
	var rows []BattleRow
	err := c.conn.Select(&rows, `SELECT date, province_id, attacker_nation,
		defender_nation, winner, attacker_losses, defender_losses
		FROM battles WHERE run_id = ? ORDER BY id DESC LIMIT ?`,
		c.RunID, limit)
	return rows, err
}
