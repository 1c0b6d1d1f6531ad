package recorder

import (
	"database/sql"
	"fmt"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/queue-sim/sim"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	name TEXT,
	seed INTEGER,
	capacity INTEGER,
	arrived INTEGER,
	served INTEGER,
	balked INTEGER,
	mean_wait REAL,
	prob_wait REAL,
	mean_time_in_system REAL,
	end_time REAL
);
CREATE TABLE IF NOT EXISTS customers (
	run_id TEXT,
	id INTEGER,
	server TEXT,
	arrival_time REAL,
	wait_start REAL,
	wait_end REAL,
	wait_time REAL,
	service_start REAL,
	service_end REAL,
	service_time REAL,
	total_time REAL,
	balked INTEGER,
	PRIMARY KEY (run_id, id)
);
CREATE TABLE IF NOT EXISTS servers (
	run_id TEXT,
	idx INTEGER,
	name TEXT,
	served INTEGER,
	busy_time REAL,
	utilization REAL,
	PRIMARY KEY (run_id, idx)
);`

// SQLiteRecorder stores runs in three tables: runs, customers and servers.
// Each run is written in a single transaction.
type SQLiteRecorder struct {
	db     *sql.DB
	owned  bool
	closed bool
}

// NewSQLiteRecorder opens (or creates) the database at path.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %s: %w", path, err)
	}
	r, err := NewSQLiteRecorderWithDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	r.owned = true
	logrus.Infof("Recording runs to %s", path)
	return r, nil
}

// NewSQLiteRecorderWithDB records into an existing connection. The caller
// keeps ownership of db.
func NewSQLiteRecorderWithDB(db *sql.DB) (*SQLiteRecorder, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("creating sqlite schema: %w", err)
	}
	return &SQLiteRecorder{db: db}, nil
}

// Record inserts the run, its customers and its servers in one transaction.
func (r *SQLiteRecorder) Record(run *Run) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	m := run.Metrics
	if _, err = tx.Exec(
		`INSERT INTO runs VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Name, run.Seed, int(run.Capacity),
		m.Arrived, m.Served, m.Balked, m.MeanWait, m.ProbWait, m.MeanTimeInSystem, m.EndTime,
	); err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO customers VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing customer insert: %w", err)
	}
	defer stmt.Close()
	for _, c := range run.Customers {
		if _, err = stmt.Exec(customerArgs(run.ID, c, run.Servers)...); err != nil {
			return fmt.Errorf("inserting customer %d: %w", c.ID, err)
		}
	}

	for i, sm := range m.Servers {
		if _, err = tx.Exec(
			`INSERT INTO servers VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, i, sm.Name, sm.Served, sm.BusyTime, sm.Utilization,
		); err != nil {
			return fmt.Errorf("inserting server %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing run %s: %w", run.ID, err)
	}
	logrus.Debugf("Recorded run %s: %d customers", run.ID, len(run.Customers))
	return nil
}

// customerArgs maps c onto the customers table; times that never happened are NULL.
func customerArgs(runID string, c *sim.Customer, servers []*sim.Server) []any {
	var server any
	if name := serverName(c, servers); name != "" {
		server = name
	}
	args := []any{runID, c.ID, server, c.ArrivalTime}
	if c.Queued {
		args = append(args, c.WaitStart, c.WaitEnd)
	} else {
		args = append(args, nil, nil)
	}
	if c.Completed() {
		args = append(args, c.WaitTime(), c.ServiceStart, c.ServiceEnd, c.ServiceTime(), c.TotalTime())
	} else {
		args = append(args, nil, nil, nil, nil, nil)
	}
	return append(args, c.Balked())
}

// Close closes the database if the recorder opened it. Later calls are no-ops.
func (r *SQLiteRecorder) Close() error {
	if !r.owned || r.closed {
		return nil
	}
	r.closed = true
	return r.db.Close()
}
