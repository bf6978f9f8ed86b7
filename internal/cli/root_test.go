package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "paperscore", cmd.Use)
	assert.Contains(t, cmd.Long, "papers_scores.db")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"submit", "list", "review", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "db"} {
		f := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, "", f.DefValue)
	}
}

func TestSubmitCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	submitCmd, _, err := cmd.Find([]string{"submit"})
	require.NoError(t, err)

	require.NotNil(t, submitCmd.Flags().Lookup("id"))
	scoresFlag := submitCmd.Flags().Lookup("scores")
	require.NotNil(t, scoresFlag)
	assert.Equal(t, "0,0,0,0,0", scoresFlag.DefValue)
}

func TestRoot_InvalidFormat(t *testing.T) {
	_, _, err := runRoot(t, "", "list", "--db", tempDB(t), "--format", "yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRoot_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paperscore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("driver: postgres\n"), 0o644))

	_, _, err := runRoot(t, "", "list", "--db", tempDB(t), "--config", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRoot_ConfigDatabaseAndLabels(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "configured.db")
	cfgPath := filepath.Join(dir, "paperscore.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"database: "+db+"\ndimensions: [Novelty, Rigor, Clarity, Impact, Style]\n"), 0o644))

	_, _, err := runRoot(t, "", "submit", "--config", cfgPath, "--id", "9", "--scores", "1,2,3,4,5")
	require.NoError(t, err)

	out, _, err := runRoot(t, "", "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Novelty")
	assert.Contains(t, out, "Style")
	assert.Len(t, storedRecords(t, db), 1)
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	out, errOut, err := runRoot(t, "", "list", "--db", tempDB(t), "-v")
	require.NoError(t, err)
	assert.Contains(t, errOut, "opening database")
	assert.NotContains(t, out, "opening database")
}

func TestRoot_JSONLogFormat(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "paperscore.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_format: json\nlog_level: debug\n"), 0o644))

	_, errOut, err := runRoot(t, "", "list", "--db", tempDB(t), "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, errOut, `"msg":"opening database"`)
}
