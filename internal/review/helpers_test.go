package review

import (
	"context"
	"sort"

	"github.com/roach88/paperscore/internal/notify"
	"github.com/roach88/paperscore/internal/record"
	"github.com/roach88/paperscore/internal/testutil"
)

// memStore is an in-memory RecordStore with injectable failures.
type memStore struct {
	rows      map[int]record.Scores
	upsertErr error
	listErr   error
	upserts   int
}

func newMemStore() *memStore {
	return &memStore{rows: map[int]record.Scores{}}
}

func (m *memStore) Upsert(_ context.Context, paperID int, scores record.Scores) error {
	m.upserts++
	if err := record.Validate(paperID, scores); err != nil {
		return err
	}
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.rows[paperID] = scores
	return nil
}

func (m *memStore) ListAll(context.Context) ([]record.ScoreRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]record.ScoreRecord, 0, len(m.rows))
	for id, s := range m.rows {
		out = append(out, record.ScoreRecord{PaperID: id, Scores: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaperID < out[j].PaperID })
	return out, nil
}

func newTestController(st RecordStore) (*Controller, *testutil.FakeClock) {
	c := testutil.NewFakeClock()
	ctrl := New(st, notify.New(c, notify.DefaultDisplayDuration),
		WithIDGenerator(testutil.NewSequenceIDGenerator("sub")))
	return ctrl, c
}
