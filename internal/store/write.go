package store

import (
	"context"
	"fmt"

	"github.com/roach88/paperscore/internal/record"
)

const upsertSQL = `
	INSERT INTO papers (id, score1, score2, score3, score4, score5)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		score1 = excluded.score1,
		score2 = excluded.score2,
		score3 = excluded.score3,
		score4 = excluded.score4,
		score5 = excluded.score5
`

// Upsert writes the scores for paperID, replacing any existing row.
//
// Invalid input returns a *record.ValidationError and issues no SQL. A
// medium failure returns an error wrapping ErrStorageUnavailable; the
// transaction is rolled back and the prior row is left as it was.
func (s *Store) Upsert(ctx context.Context, paperID int, scores record.Scores) error {
	if err := record.Validate(paperID, scores); err != nil {
		return err
	}

	op := fmt.Sprintf("upsert paper %d", paperID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable(op+": begin tx", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, upsertSQL,
		paperID,
		scores[0],
		scores[1],
		scores[2],
		scores[3],
		scores[4],
	)
	if err != nil {
		return unavailable(op, err)
	}

	if err := tx.Commit(); err != nil {
		return unavailable(op+": commit", err)
	}

	return nil
}
