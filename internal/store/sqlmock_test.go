package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/paperscore/internal/record"
)

var errDiskFull = errors.New("database or disk is full")

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestUpsert_ExecFailureRollsBack(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO papers")).
		WithArgs(7, 3, 4, 5, 6, 7).
		WillReturnError(errDiskFull)
	mock.ExpectRollback()

	err := s.Upsert(context.Background(), 7, record.Scores{3, 4, 5, 6, 7})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Contains(t, err.Error(), "upsert paper 7")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_CommitFailure(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO papers")).
		WithArgs(8, 1, 1, 1, 1, 1).
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectCommit().WillReturnError(errDiskFull)

	err := s.Upsert(context.Background(), 8, record.Scores{1, 1, 1, 1, 1})
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_BeginFailure(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin().WillReturnError(errors.New("unable to open database file"))

	err := s.Upsert(context.Background(), 8, record.Scores{})
	assert.True(t, IsUnavailable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_InvalidInputIssuesNoSQL(t *testing.T) {
	s, mock := newMockStore(t)

	err := s.Upsert(context.Background(), 151, record.Scores{})
	assert.ErrorIs(t, err, record.ErrInvalid)

	// No expectations registered: any SQL call would have failed the mock.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_Success(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT(id) DO UPDATE")).
		WithArgs(42, 10, 10, 10, 10, 10).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	require.NoError(t, s.Upsert(context.Background(), 42, record.Scores{10, 10, 10, 10, 10}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAll_QueryFailure(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, score1, score2, score3, score4, score5")).
		WillReturnError(errors.New("file is not a database"))

	got, err := s.ListAll(context.Background())
	assert.Nil(t, got)
	assert.True(t, IsUnavailable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAll_RowError(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "score1", "score2", "score3", "score4", "score5"}).
		AddRow(1, 1, 2, 3, 4, 5).
		AddRow(2, 0, 0, 0, 0, 0).
		RowError(1, errors.New("disk I/O error"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM papers")).WillReturnRows(rows)

	_, err := s.ListAll(context.Background())
	assert.True(t, IsUnavailable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAll_ScansRows(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "score1", "score2", "score3", "score4", "score5"}).
		AddRow(3, 1, 2, 3, 4, 5).
		AddRow(9, 10, 9, 8, 7, 6)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id ASC")).WillReturnRows(rows)

	got, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []record.ScoreRecord{
		{PaperID: 3, Scores: record.Scores{1, 2, 3, 4, 5}},
		{PaperID: 9, Scores: record.Scores{10, 9, 8, 7, 6}},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_ExecFailure(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS papers")).
		WillReturnError(errors.New("attempt to write a readonly database"))

	err := s.EnsureSchema(context.Background())
	assert.True(t, IsUnavailable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
