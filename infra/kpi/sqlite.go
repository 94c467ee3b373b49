// Package kpi persists ecological KPIs in SQLite or Redis.
package kpi

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ishantk2507/ZeroWasteAI/core/metrics/eco"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists KPI records in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	schema := `CREATE TABLE IF NOT EXISTS recipient_kpi (
        recipient_id TEXT,
        day INTEGER,
        deliveries INTEGER,
        distance_km REAL,
        co2_saved_kg REAL,
        PRIMARY KEY(recipient_id, day)
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Add inserts the record or adds it to the existing row of that day.
func (s *SQLiteStore) Add(r eco.Record) error {
	d := eco.Day(r.Date)
	_, err := s.db.Exec(`INSERT INTO recipient_kpi (recipient_id, day, deliveries, distance_km, co2_saved_kg)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(recipient_id, day) DO UPDATE SET
            deliveries = deliveries + excluded.deliveries,
            distance_km = distance_km + excluded.distance_km,
            co2_saved_kg = co2_saved_kg + excluded.co2_saved_kg`,
		r.RecipientID, d.Unix(), r.Deliveries, r.DistanceKm, r.CO2SavedKg)
	return err
}

// Query returns records in the range [start,end].
func (s *SQLiteStore) Query(recipientID string, start, end time.Time) ([]eco.Record, error) {
	start = eco.Day(start)
	end = eco.Day(end)
	rows, err := s.db.Query(`SELECT recipient_id, day, deliveries, distance_km, co2_saved_kg
        FROM recipient_kpi WHERE recipient_id = ? AND day >= ? AND day <= ? ORDER BY day`,
		recipientID, start.Unix(), end.Unix())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []eco.Record
	for rows.Next() {
		var (
			rec eco.Record
			ts  int64
		)
		if err := rows.Scan(&rec.RecipientID, &ts, &rec.Deliveries, &rec.DistanceKm, &rec.CO2SavedKg); err != nil {
			return nil, err
		}
		rec.Date = time.Unix(ts, 0).UTC()
		res = append(res, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
