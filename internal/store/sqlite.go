package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS activity_records (
	id        TEXT PRIMARY KEY,
	recruiter TEXT,
	team      TEXT,
	company   TEXT,
	contract  TEXT,
	level     TEXT,
	date      DATETIME NOT NULL,
	payload   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS ranking_snapshots (
	id         TEXT PRIMARY KEY,
	mode       TEXT NOT NULL,
	results    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_activity_records_date ON activity_records(date);
CREATE INDEX IF NOT EXISTS idx_activity_records_company ON activity_records(company);
CREATE INDEX IF NOT EXISTS idx_activity_records_contract ON activity_records(contract);
CREATE INDEX IF NOT EXISTS idx_ranking_snapshots_mode ON ranking_snapshots(mode);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) InsertRecords(ctx context.Context, records []model.ActivityRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO activity_records (id, recruiter, team, company, contract, level, date, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close() //nolint:errcheck

	inserted := 0
	for i := range records {
		rec := &records[i]
		payload, err := json.Marshal(rec)
		if err != nil {
			return inserted, eris.Wrap(err, "sqlite: marshal record")
		}
		_, err = stmt.ExecContext(ctx,
			uuid.New().String(), rec.RecruiterName, rec.TeamName, rec.CompanyName,
			rec.ContractType, string(rec.Level), rec.Date.UTC(), string(payload),
		)
		if err != nil {
			return inserted, eris.Wrap(err, "sqlite: insert record")
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit")
	}
	return inserted, nil
}

func (s *SQLiteStore) ListRecords(ctx context.Context, filter model.FilterSelection) ([]model.ActivityRecord, error) {
	query := `SELECT payload FROM activity_records WHERE 1=1`
	var args []any

	if !filter.From.IsZero() {
		query += ` AND date >= ?`
		args = append(args, filter.From.UTC())
	}
	if !filter.To.IsZero() {
		query += ` AND date <= ?`
		args = append(args, filter.To.UTC())
	}
	if len(filter.Companies) > 0 {
		query += fmt.Sprintf(` AND company IN (%s)`, placeholders(len(filter.Companies)))
		for _, c := range filter.Companies {
			args = append(args, c)
		}
	}
	if len(filter.Contracts) > 0 {
		query += fmt.Sprintf(` AND contract IN (%s)`, placeholders(len(filter.Contracts)))
		for _, c := range filter.Contracts {
			args = append(args, c)
		}
	}
	if len(filter.Teams) > 0 {
		query += fmt.Sprintf(` AND team IN (%s)`, placeholders(len(filter.Teams)))
		for _, t := range filter.Teams {
			args = append(args, t)
		}
	}
	query += ` ORDER BY date, recruiter`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list records")
	}
	defer rows.Close() //nolint:errcheck

	var records []model.ActivityRecord
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		var rec model.ActivityRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal record")
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate records")
}

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, mode model.Mode, results any) (string, error) {
	id := uuid.New().String()
	data, err := json.Marshal(results)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal snapshot")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO ranking_snapshots (id, mode, results, created_at) VALUES (?, ?, ?, ?)`,
		id, string(mode), string(data), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert snapshot")
	}
	return id, nil
}

func (s *SQLiteStore) ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, results, created_at FROM ranking_snapshots ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list snapshots")
	}
	defer rows.Close() //nolint:errcheck

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		var results string
		if err := rows.Scan(&snap.ID, &snap.Mode, &results, &snap.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan snapshot")
		}
		snap.Results = json.RawMessage(results)
		snaps = append(snaps, snap)
	}
	return snaps, eris.Wrap(rows.Err(), "sqlite: iterate snapshots")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
