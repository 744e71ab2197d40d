package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

// Pool abstracts the pgxpool methods the store uses; pgxmock satisfies it in
// tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS activity_records (
	id        UUID PRIMARY KEY,
	recruiter TEXT,
	team      TEXT,
	company   TEXT,
	contract  TEXT,
	level     TEXT,
	date      TIMESTAMPTZ NOT NULL,
	payload   JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS ranking_snapshots (
	id         UUID PRIMARY KEY,
	mode       TEXT NOT NULL,
	results    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_activity_records_date ON activity_records(date);
CREATE INDEX IF NOT EXISTS idx_activity_records_company ON activity_records(company);
CREATE INDEX IF NOT EXISTS idx_activity_records_contract ON activity_records(contract);
CREATE INDEX IF NOT EXISTS idx_ranking_snapshots_mode ON ranking_snapshots(mode);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) InsertRecords(ctx context.Context, records []model.ActivityRecord) (int, error) {
	inserted := 0
	for i := range records {
		rec := &records[i]
		payload, err := json.Marshal(rec)
		if err != nil {
			return inserted, eris.Wrap(err, "postgres: marshal record")
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO activity_records (id, recruiter, team, company, contract, level, date, payload)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New().String(), rec.RecruiterName, rec.TeamName, rec.CompanyName,
			rec.ContractType, string(rec.Level), rec.Date.UTC(), payload,
		)
		if err != nil {
			return inserted, eris.Wrap(err, "postgres: insert record")
		}
		inserted++
	}
	return inserted, nil
}

func (s *PostgresStore) ListRecords(ctx context.Context, filter model.FilterSelection) ([]model.ActivityRecord, error) {
	query := `SELECT payload FROM activity_records WHERE 1=1`
	var args []any
	argNum := 1

	if !filter.From.IsZero() {
		query += fmt.Sprintf(` AND date >= $%d`, argNum)
		args = append(args, filter.From.UTC())
		argNum++
	}
	if !filter.To.IsZero() {
		query += fmt.Sprintf(` AND date <= $%d`, argNum)
		args = append(args, filter.To.UTC())
		argNum++
	}
	if len(filter.Companies) > 0 {
		query += fmt.Sprintf(` AND company = ANY($%d)`, argNum)
		args = append(args, filter.Companies)
		argNum++
	}
	if len(filter.Contracts) > 0 {
		query += fmt.Sprintf(` AND contract = ANY($%d)`, argNum)
		args = append(args, filter.Contracts)
		argNum++
	}
	if len(filter.Teams) > 0 {
		query += fmt.Sprintf(` AND team = ANY($%d)`, argNum)
		args = append(args, filter.Teams)
		argNum++
	}
	query += ` ORDER BY date, recruiter`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list records")
	}
	defer rows.Close()

	var records []model.ActivityRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "postgres: scan record")
		}
		var rec model.ActivityRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal record")
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "postgres: iterate records")
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, mode model.Mode, results any) (string, error) {
	id := uuid.New().String()
	data, err := json.Marshal(results)
	if err != nil {
		return "", eris.Wrap(err, "postgres: marshal snapshot")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO ranking_snapshots (id, mode, results, created_at) VALUES ($1, $2, $3, $4)`,
		id, string(mode), data, time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "postgres: insert snapshot")
	}
	return id, nil
}

func (s *PostgresStore) ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, mode, results, created_at FROM ranking_snapshots ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list snapshots")
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		var results []byte
		if err := rows.Scan(&snap.ID, &snap.Mode, &results, &snap.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan snapshot")
		}
		snap.Results = json.RawMessage(results)
		snaps = append(snaps, snap)
	}
	return snaps, eris.Wrap(rows.Err(), "postgres: iterate snapshots")
}
