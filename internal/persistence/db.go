// Package persistence provides SQLite-based simulation storage.
// See design doc Section 8.3.
package persistence

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/statecraft/internal/engine"
	"github.com/talgya/statecraft/internal/world"
)

// DB wraps a SQLite connection for simulation persistence. Each process
// run gets its own UUID so several campaigns can share one file.
type DB struct {
	conn  *sqlx.DB
	RunID string
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, RunID: uuid.NewString()}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS nations (
		run_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		nation INTEGER NOT NULL,
		name TEXT NOT NULL,
		rank INTEGER NOT NULL,
		treasury REAL NOT NULL,
		gdp REAL NOT NULL,
		tax_income REAL NOT NULL,
		tariff_income REAL NOT NULL,
		interest_paid REAL NOT NULL,
		spending_scale REAL NOT NULL,
		bankrupt INTEGER NOT NULL,
		PRIMARY KEY (run_id, day, nation)
	);

	CREATE TABLE IF NOT EXISTS prices (
		run_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		commodity INTEGER NOT NULL,
		price REAL NOT NULL,
		supply REAL NOT NULL,
		demand REAL NOT NULL,
		PRIMARY KEY (run_id, day, commodity)
	);

	CREATE TABLE IF NOT EXISTS indicators (
		run_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		world_gdp REAL NOT NULL,
		price_level REAL NOT NULL,
		factories INTEGER NOT NULL,
		PRIMARY KEY (run_id, day)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		key TEXT NOT NULL,
		nation INTEGER NOT NULL,
		subject INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		run_id TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (run_id, key)
	);

	CREATE INDEX IF NOT EXISTS idx_events_day ON events(run_id, day);
	CREATE INDEX IF NOT EXISTS idx_prices_commodity ON prices(run_id, commodity);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveNations writes a per-nation fiscal snapshot for the given day.
func (db *DB) SaveNations(w *world.World) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT OR REPLACE INTO nations
		(run_id, day, nation, name, rank, treasury, gdp, tax_income,
		 tariff_income, interest_paid, spending_scale, bankrupt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range w.Nations {
		n := &w.Nations[i]
		bankrupt := 0
		if n.InBankruptcy(w.Day) {
			bankrupt = 1
		}
		_, err := stmt.Exec(
			db.RunID, w.Day, i, n.Name, n.Rank,
			n.Treasury, n.GDP, n.TaxIncome, n.TariffIncome,
			n.InterestPaid, n.SpendingScale, bankrupt,
		)
		if err != nil {
			return fmt.Errorf("insert nation %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// SavePrices writes the day's market state for every traded commodity.
func (db *DB) SavePrices(w *world.World) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT OR REPLACE INTO prices
		(run_id, day, commodity, price, supply, demand)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for c := 1; c < len(w.Commodities); c++ {
		_, err := stmt.Exec(
			db.RunID, w.Day, c,
			w.CurrentPrice[c], w.TotalProduction[c], w.TotalRealDemand[c],
		)
		if err != nil {
			return fmt.Errorf("insert price %d: %w", c, err)
		}
	}

	return tx.Commit()
}

// SaveIndicators writes the day's world aggregates.
func (db *DB) SaveIndicators(sim *engine.Simulation) error {
	w := sim.World
	factories := 0
	for i := range w.Factories {
		if w.Factories[i].Live {
			factories++
		}
	}
	_, err := db.conn.Exec(`INSERT OR REPLACE INTO indicators
		(run_id, day, world_gdp, price_level, factories)
		VALUES (?, ?, ?, ?, ?)`,
		db.RunID, w.Day, sim.WorldGDP(), sim.MeanPriceLevel(), factories,
	)
	return err
}

// SaveEvents appends drained engine events.
func (db *DB) SaveEvents(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (run_id, day, key, nation, subject) VALUES (?, ?, ?, ?, ?)",
			db.RunID, e.Day, e.Key, e.Nation, e.Subject,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair for the current run.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (run_id, key, value) VALUES (?, ?, ?)",
		db.RunID, key, value,
	)
	return err
}

// GetMeta retrieves a metadata value for the current run.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value,
		"SELECT value FROM run_meta WHERE run_id = ? AND key = ?", db.RunID, key)
	return value, err
}

// SaveDay performs the full end-of-day write.
func (db *DB) SaveDay(sim *engine.Simulation) error {
	if err := db.SaveNations(sim.World); err != nil {
		return fmt.Errorf("save nations: %w", err)
	}
	if err := db.SavePrices(sim.World); err != nil {
		return fmt.Errorf("save prices: %w", err)
	}
	if err := db.SaveIndicators(sim); err != nil {
		return fmt.Errorf("save indicators: %w", err)
	}
	if err := db.SaveEvents(sim.DrainEvents()); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	if err := db.SaveMeta("last_day", fmt.Sprintf("%d", sim.World.Day)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	return nil
}

// RecentEvents returns the most recent N events for the current run.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT day, key, nation, subject FROM events WHERE run_id = ? ORDER BY id DESC LIMIT ?",
		db.RunID, limit,
	)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded recent events", "count", len(events))
	return events, nil
}
