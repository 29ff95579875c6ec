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
var _ driven.ErrorLogStore = (*ErrorLogRepo)(nil)

// ErrorLogRepo is the SQLite implementation of the ErrorLogStore port
// interface, append-only like ResultRepo.
type ErrorLogRepo struct {
	db *DB
}

// NewErrorLogRepo creates a new ErrorLogRepo backed by the given DB.
func NewErrorLogRepo(db *DB) *ErrorLogRepo {
	return &ErrorLogRepo{db: db}
}

// Append inserts a new error record with a server-generated id and UTC
// timestamp and returns the stored record.
func (r *ErrorLogRepo) Append(ctx context.Context, rec model.ErrorLog) (model.ErrorLog, error) {
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()

	const query = `INSERT INTO error_logs (id, created_at, service, error, details) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.Writer.ExecContext(ctx, query,
		rec.ID, rec.CreatedAt.Format(time.RFC3339Nano), rec.Service, rec.Error, rec.Details)
	if err != nil {
		return model.ErrorLog{}, fmt.Errorf("append error log: %w", err)
	}

	return rec, nil
}

// ListRecent returns up to limit records in descending creation order.
func (r *ErrorLogRepo) ListRecent(ctx context.Context, limit int) ([]model.ErrorLog, error) {
	const query = `SELECT id, created_at, service, error, details FROM error_logs ORDER BY created_at DESC, rowid DESC LIMIT ?`

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list error logs: %w", err)
	}
	defer rows.Close()

	var logs []model.ErrorLog
	for rows.Next() {
		var rec model.ErrorLog
		var createdAt string
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Service, &rec.Error, &rec.Details); err != nil {
			return nil, fmt.Errorf("scan error log: %w", err)
		}

		rec.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for error log %q: %w", rec.ID, err)
		}

		logs = append(logs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate error logs: %w", err)
	}

	return logs, nil
}
