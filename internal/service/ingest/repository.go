package ingest

import "context"

// Repository is the write side of the record store.
type Repository interface {
	// Upsert inserts a row, or overwrites every non-key column of the row
	// whose key column already holds the same value. columns and values are
	// parallel; key must be one of columns.
	Upsert(ctx context.Context, table, key string, columns []string, values []any) error

	// Count returns the number of rows in a table.
	Count(ctx context.Context, table string) (int, error)
}

// Invalidator is notified after an ingest writes rows, so cached aggregates
// can be dropped.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}
