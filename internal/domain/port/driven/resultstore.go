package driven

import (
	"context"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

// ResultStore defines the driven port for the append-only test result log.
type ResultStore interface {
	// Append persists a new result record and returns it with the
	// server-generated id and timestamp filled in.
	Append(ctx context.Context, rec model.TestResult) (model.TestResult, error)

	// ListRecent returns up to limit records in descending creation order.
	ListRecent(ctx context.Context, limit int) ([]model.TestResult, error)
}

// ErrorLogStore defines the driven port for the append-only error log.
type ErrorLogStore interface {
	// Append persists a new error record and returns it with the
	// server-generated id and timestamp filled in.
	Append(ctx context.Context, rec model.ErrorLog) (model.ErrorLog, error)

	// ListRecent returns up to limit records in descending creation order.
	ListRecent(ctx context.Context, limit int) ([]model.ErrorLog, error)
}
