package postgres

import (
	"context"
	"database/sql"

	domain "github.com/karnakar5511/query-insights/internal/domain/analysis"
)

type RecordRepository struct{ db *sql.DB }

func NewRecordRepository(db *sql.DB) *RecordRepository { return &RecordRepository{db: db} }

// EnsureSchema creates the append-only records table when missing.
func (r *RecordRepository) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS analysis_records (
  id              VARCHAR(40)      NOT NULL PRIMARY KEY,
  user_query      TEXT             NOT NULL,
  generated_text  TEXT             NOT NULL,
  sentiment_score DOUBLE PRECISION NOT NULL,
  sentiment       VARCHAR(16)      NOT NULL,
  "timestamp"     VARCHAR(32)      NOT NULL
);`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// Append inserts one record, insert only.
func (r *RecordRepository) Append(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO analysis_records
  (id, user_query, generated_text, sentiment_score, sentiment, "timestamp")
VALUES ($1,$2,$3,$4,$5,$6);`
	_, err := r.db.ExecContext(ctx, q,
		rec.ID, rec.UserQuery, rec.GeneratedText,
		rec.SentimentScore, rec.Sentiment, rec.Timestamp,
	)
	return err
}

// ScanAll returns every stored record in whatever order the table yields.
func (r *RecordRepository) ScanAll(ctx context.Context) ([]domain.Record, error) {
	const q = `
SELECT id, user_query, generated_text, sentiment_score, sentiment, "timestamp"
FROM analysis_records;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		var rec domain.Record
		var query sql.NullString
		if err := rows.Scan(
			&rec.ID, &query, &rec.GeneratedText,
			&rec.SentimentScore, &rec.Sentiment, &rec.Timestamp,
		); err != nil {
			return nil, err
		}
		rec.UserQuery = queryOrUnknown(query)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// queryOrUnknown maps a NULL query to the "Unknown" engagement bucket.
func queryOrUnknown(q sql.NullString) string {
	if !q.Valid {
		return "Unknown"
	}
	return q.String
}
