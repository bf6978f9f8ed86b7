package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/paperscore/internal/record"
)

// ListAll returns every stored record ordered by paper id.
// Returns an empty slice (not nil) when the table is empty.
func (s *Store) ListAll(ctx context.Context) ([]record.ScoreRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, score1, score2, score3, score4, score5
		FROM papers
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, unavailable("list records", err)
	}
	defer rows.Close()

	var records []record.ScoreRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, unavailable("list records", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate records", err)
	}

	if records == nil {
		records = []record.ScoreRecord{}
	}

	return records, nil
}

// Get returns the record for paperID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, paperID int) (record.ScoreRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, score1, score2, score3, score4, score5
		FROM papers
		WHERE id = ?
	`, paperID)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return record.ScoreRecord{}, fmt.Errorf("get paper %d: %w", paperID, ErrNotFound)
	}
	if err != nil {
		return record.ScoreRecord{}, unavailable(fmt.Sprintf("get paper %d", paperID), err)
	}
	return r, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM papers").Scan(&n); err != nil {
		return 0, unavailable("count records", err)
	}
	return n, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (record.ScoreRecord, error) {
	var r record.ScoreRecord
	err := row.Scan(
		&r.PaperID,
		&r.Scores[0],
		&r.Scores[1],
		&r.Scores[2],
		&r.Scores[3],
		&r.Scores[4],
	)
	return r, err
}
