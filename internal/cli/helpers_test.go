package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const paintScenario = `
name: paint_corner
description: "Paint red over a 2x2 surface"
policy: SET
width: 2
height: 2
brush: 0
steps:
  - op: paint
    at: {x: 0, y: 0}
    layer: red
assertions:
  - type: cell_layers
    at: {x: 0, y: 0}
    layers: [red]
  - type: history
    done: 1
`

const failingScenario = `
name: wrong_layer
description: "Asserts a layer that was never painted"
policy: ADD
width: 1
height: 1
steps:
  - op: paint
    at: {x: 0, y: 0}
    layer: red
assertions:
  - type: cell_layers
    at: {x: 0, y: 0}
    layers: [blue]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs cmd with args and returns stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
