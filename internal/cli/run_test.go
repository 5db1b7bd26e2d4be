package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand_MissingArgs(t *testing.T) {
	_, err := execute(t, NewRunCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestRunCommand_Text(t *testing.T) {
	path := writeFile(t, t.TempDir(), "paint.yaml", paintScenario)

	out, err := execute(t, NewRunCommand(&RootOptions{Format: "text"}), path)
	require.NoError(t, err)
	assert.Contains(t, out, "paint_corner (SET 2x2)")
	assert.Contains(t, out, "action-001 (1 edits)")
	assert.Contains(t, out, "  red .\n")
	assert.Contains(t, out, "  #ff0000 #ffffff\n")
	assert.Contains(t, out, "history: 1 undoable, 0 redoable")
	assert.Contains(t, out, "✓ all expectations held")
}

func TestRunCommand_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "paint.yaml", paintScenario)

	out, err := execute(t, NewRunCommand(&RootOptions{Format: "json"}), path)
	require.NoError(t, err)

	var resp struct {
		Status  string    `json:"status"`
		Data    RunOutput `json:"data"`
		Session string    `json:"session"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test-session", resp.Session)
	assert.True(t, resp.Data.Pass)
	assert.Equal(t, []string{"red .", ". ."}, resp.Data.Snapshot.Layers)
}

func TestRunCommand_FailedAssertion(t *testing.T) {
	path := writeFile(t, t.TempDir(), "failing.yaml", failingScenario)

	out, err := execute(t, NewRunCommand(&RootOptions{Format: "text"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ ")
	assert.Contains(t, out, "holds [blue]")
}

func TestRunCommand_FailedAssertionJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "failing.yaml", failingScenario)

	out, err := execute(t, NewRunCommand(&RootOptions{Format: "json"}), path)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "E_ASSERTION", resp.Error.Code)
}

func TestRunCommand_MissingFile(t *testing.T) {
	out, err := execute(t, NewRunCommand(&RootOptions{Format: "text"}), "/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E_COMMAND]")
}
