package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ResultStore = (*ResultRepo)(nil)

// ResultRepo is the SQLite implementation of the ResultStore port interface.
// The test_results table is append-only; nothing updates or deletes rows.
type ResultRepo struct {
	db *DB
}

// NewResultRepo creates a new ResultRepo backed by the given DB.
func NewResultRepo(db *DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// Append inserts a new test result with a server-generated id and UTC
// timestamp and returns the stored record.
func (r *ResultRepo) Append(ctx context.Context, rec model.TestResult) (model.TestResult, error) {
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()

	const query = `INSERT INTO test_results (id, created_at, service, success, message, details) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.Writer.ExecContext(ctx, query,
		rec.ID, rec.CreatedAt.Format(time.RFC3339Nano), rec.Service, rec.Success, rec.Message, rec.Details)
	if err != nil {
		return model.TestResult{}, fmt.Errorf("append test result: %w", err)
	}

	return rec, nil
}

// ListRecent returns up to limit results in descending creation order.
// Rowid breaks ties between records created in the same nanosecond.
func (r *ResultRepo) ListRecent(ctx context.Context, limit int) ([]model.TestResult, error) {
	const query = `SELECT id, created_at, service, success, message, details FROM test_results ORDER BY created_at DESC, rowid DESC LIMIT ?`

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list test results: %w", err)
	}
	defer rows.Close()

	var results []model.TestResult
	for rows.Next() {
		var rec model.TestResult
		var createdAt string
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Service, &rec.Success, &rec.Message, &rec.Details); err != nil {
			return nil, fmt.Errorf("scan test result: %w", err)
		}

		rec.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for test result %q: %w", rec.ID, err)
		}

		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate test results: %w", err)
	}

	return results, nil
}
