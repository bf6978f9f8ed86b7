package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/paperscore/internal/record"
)

func TestSubmit_Accepted(t *testing.T) {
	db := tempDB(t)

	out, _, err := runRoot(t, "", "submit", "--db", db, "--id", "42", "--scores", "10,10,10,10,10")
	require.NoError(t, err)
	assert.Contains(t, out, "submitted: paper 42 10 10 10 10 10")

	assert.Equal(t, []record.ScoreRecord{{PaperID: 42, Scores: record.Scores{10, 10, 10, 10, 10}}}, storedRecords(t, db))
}

func TestSubmit_OverwritesExisting(t *testing.T) {
	db := tempDB(t)

	_, _, err := runRoot(t, "", "submit", "--db", db, "--id", "5", "--scores", "1,1,1,1,1")
	require.NoError(t, err)
	_, _, err = runRoot(t, "", "submit", "--db", db, "--id", "5", "--scores", "2, 3, 4, 5, 6")
	require.NoError(t, err)

	assert.Equal(t, []record.ScoreRecord{{PaperID: 5, Scores: record.Scores{2, 3, 4, 5, 6}}}, storedRecords(t, db))
}

func TestSubmit_FullWidthID(t *testing.T) {
	db := tempDB(t)
	_, _, err := runRoot(t, "", "submit", "--db", db, "--id", "１５０")
	require.NoError(t, err)
	assert.Equal(t, 150, storedRecords(t, db)[0].PaperID)
}

func TestSubmit_Rejected(t *testing.T) {
	cases := []struct {
		name   string
		id     string
		scores string
		code   string
	}{
		{"out of range id", "151", "1,1,1,1,1", "E101"},
		{"zero id", "0", "1,1,1,1,1", "E101"},
		{"text id", "abc", "1,1,1,1,1", "E101"},
		{"empty id", "", "1,1,1,1,1", "E101"},
		{"score too high", "12", "1,1,1,1,11", "E102"},
		{"negative score", "12", "-1,1,1,1,1", "E102"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := tempDB(t)
			out, _, err := runRoot(t, "", "submit", "--db", db, "--id", tc.id, "--scores", tc.scores)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tc.code+"]: invalid input")
			assert.Empty(t, storedRecords(t, db))
		})
	}
}

func TestSubmit_RejectedJSON(t *testing.T) {
	out, _, err := runRoot(t, "", "submit", "--db", tempDB(t), "--format", "json", "--id", "151")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidPaperID, resp.Error.Code)
	details, ok := resp.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "invalid_paper_id", details["reason"])
}

func TestSubmit_AcceptedJSON(t *testing.T) {
	out, _, err := runRoot(t, "", "submit", "--db", tempDB(t), "--format", "json", "--id", "3", "--scores", "0,1,2,3,4")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   SubmitResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.Data.PaperID)
	assert.Equal(t, record.Scores{0, 1, 2, 3, 4}, resp.Data.Scores)
	assert.Equal(t, "success", resp.Data.Notification)
	assert.Len(t, resp.Data.SubmissionID, 36)
}

func TestSubmit_MalformedScoresFlag(t *testing.T) {
	for _, scores := range []string{"1,2,3", "1,2,3,4,5,6", "a,b,c,d,e", ""} {
		_, _, err := runRoot(t, "", "submit", "--db", tempDB(t), "--id", "1", "--scores", scores)
		require.Error(t, err, scores)
		assert.Equal(t, ExitCommandError, GetExitCode(err), scores)
	}
}

func TestSubmit_StorageUnavailable(t *testing.T) {
	db := filepath.Join(t.TempDir(), "missing", "dir", "papers_scores.db")

	out, errOut, err := runRoot(t, "", "submit", "--db", db, "--id", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "storage unavailable")
	assert.Contains(t, errOut, "storage unavailable")
	assert.Empty(t, out)
}

func TestParseScores(t *testing.T) {
	got, err := parseScores(" 1,2 ,3,4,10")
	require.NoError(t, err)
	assert.Equal(t, record.Scores{1, 2, 3, 4, 10}, got)

	_, err = parseScores("1,2,3,4")
	assert.Error(t, err)
}
