package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodScript = `
def update():
    global_state["x"] += 1

global_state = {"x": 0}

def draw():
    clear(BLACK)
`

// writeFixture creates a config rooted in a temp directory and returns
// its path and the scripts directory.
func writeFixture(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	scripts := filepath.Join(root, "scripts")
	require.NoError(t, os.MkdirAll(scripts, 0o755))

	cfgPath := filepath.Join(root, "kgames.toml")
	cfg := fmt.Sprintf(`version = "v1"

[dirs]
root = %q

[logging]
output = "discard"

[watch]
enabled = false

[window]
fps = 1000
`, root)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath, scripts
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	app.ErrWriter = &buf
	err := app.Run(context.Background(), append([]string{"kgames"}, args...))
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := runApp(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "kgames version dev\n", out)
}

func TestCheck(t *testing.T) {
	cfgPath, scripts := writeFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(scripts, "good.star"), []byte(goodScript), 0o644))

	t.Run("all loaded", func(t *testing.T) {
		out, err := runApp(t, "check", "-c", cfgPath)
		require.NoError(t, err)
		assert.Contains(t, out, "All 1 scripts loaded")
	})

	require.NoError(t, os.WriteFile(filepath.Join(scripts, "broken.star"), []byte("def oops(:\n"), 0o644))

	t.Run("failure report", func(t *testing.T) {
		out, err := runApp(t, "check", "-c", cfgPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 scripts failed")
		assert.Contains(t, out, "Encountered 1 errors")
		assert.Contains(t, out, "broken.star")
	})

	t.Run("failure tree", func(t *testing.T) {
		out, err := runApp(t, "check", "-c", cfgPath, "--tree")
		require.Error(t, err)
		assert.Contains(t, out, "broken.star")
	})
}

func TestList(t *testing.T) {
	cfgPath, scripts := writeFixture(t)
	for _, name := range []string{"pong.star", "breakout.star", "snake.star"} {
		require.NoError(t, os.WriteFile(filepath.Join(scripts, name), []byte(goodScript), 0o644))
	}

	out, err := runApp(t, "list", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Scripts (3 of 3)")
	assert.Contains(t, out, "pong")
	assert.Contains(t, out, "breakout")
	assert.Contains(t, out, "Digest: ")

	out, err = runApp(t, "list", "-c", cfgPath, "-f", "png")
	require.NoError(t, err)
	assert.Contains(t, out, "Scripts (1 of 3)")
	assert.Contains(t, out, "pong")
	assert.NotContains(t, out, "snake")
}

func TestRun_FrameLimit(t *testing.T) {
	cfgPath, scripts := writeFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(scripts, "good.star"), []byte(goodScript), 0o644))

	out, err := runApp(t, "run", "-c", cfgPath, "-s", "good", "-n", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Ran 5 frames, 0 reloads, 0 invocation errors")
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := runApp(t, "check", "-c", filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")

	cfgPath, _ := writeFixture(t)
	_, err = runApp(t, "--log-level", "loud", "check", "-c", cfgPath)
	assert.Error(t, err)
}
