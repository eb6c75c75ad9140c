package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// IngestRepo implements ingest.Repository against PostgreSQL.
type IngestRepo struct{ db *sql.DB }

func NewIngestRepo(db *sql.DB) *IngestRepo { return &IngestRepo{db: db} }

// Upsert writes one row with INSERT ... ON CONFLICT (key) DO UPDATE, setting
// every non-key column from the incoming row.
func (r *IngestRepo) Upsert(ctx context.Context, table, key string, columns []string, values []any) error {
	if len(columns) != len(values) {
		return fmt.Errorf("upsert %s: %d columns but %d values", table, len(columns), len(values))
	}
	if _, err := r.db.ExecContext(ctx, upsertSQL(table, key, columns), values...); err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}
	return nil
}

func upsertSQL(table, key string, columns []string) string {
	cols := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	var sets []string
	for i, c := range columns {
		cols[i] = pq.QuoteIdentifier(c)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if c != key {
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", cols[i], cols[i]))
		}
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s)",
		pq.QuoteIdentifier(table), strings.Join(cols, ", "), strings.Join(placeholders, ", "), pq.QuoteIdentifier(key))
	if len(sets) == 0 {
		return q + " DO NOTHING"
	}
	return q + " DO UPDATE SET " + strings.Join(sets, ", ")
}

func (r *IngestRepo) Count(ctx context.Context, table string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+pq.QuoteIdentifier(table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
