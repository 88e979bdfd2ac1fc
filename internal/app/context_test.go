package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atlanticdynamic/kgames/internal/backend/headless"
	"github.com/atlanticdynamic/kgames/internal/config"
	"github.com/atlanticdynamic/kgames/internal/engine"
	"github.com/atlanticdynamic/kgames/internal/testutil"
	"github.com/atlanticdynamic/kgames/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Dirs.Root = filepath.Join(t.TempDir(), "kgames")
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestDirs(t *testing.T) {
	cfg := testConfig(t)
	dirs := DirsFromConfig(cfg)
	assert.Equal(t, filepath.Join(cfg.Dirs.Root, "scripts"), dirs.Scripts)
	assert.Equal(t, filepath.Join(cfg.Dirs.Root, "examples"), dirs.Examples)
	assert.Equal(t, filepath.Join(cfg.Dirs.Root, "assets"), dirs.Assets)

	require.NoError(t, dirs.Create())
	for _, d := range []string{dirs.Root, dirs.Scripts, dirs.Examples, dirs.Assets} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.NoError(t, dirs.Create(), "creating twice is fine")
}

func TestDirs_CreateFailure(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	err := Dirs{Root: file, Scripts: filepath.Join(file, "scripts")}.Create()
	assert.Error(t, err)
}

func TestSources(t *testing.T) {
	cfg := testConfig(t)
	ctx := New(cfg, nil)

	assert.Equal(t, []engine.Source{
		{Name: "examples", Path: ctx.Dirs.Examples, IsExample: true},
		{Name: "scripts", Path: ctx.Dirs.Scripts},
	}, ctx.Sources())

	cfg.Engine.LoadOrder = []string{config.SourceScripts}
	assert.Equal(t, []engine.Source{{Name: "scripts", Path: ctx.Dirs.Scripts}}, ctx.Sources())
}

func TestNewHost(t *testing.T) {
	cfg := testConfig(t)
	cfg.Engine.Extension = ".sky"
	_, handler := testutil.LogCapture("info")
	ctx := New(cfg, handler)
	require.NoError(t, ctx.Dirs.Create())

	script := "def update():\n    pass\n\ndef draw():\n    clear(BLACK)\n    print('drawn')\n"
	require.NoError(t, os.WriteFile(filepath.Join(ctx.Dirs.Scripts, "a.sky"), []byte(script), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(ctx.Dirs.Scripts, "b.star"), []byte(script), 0o644))

	backend := headless.New()
	host := ctx.NewHost(backend)
	assert.Equal(t, ".sky", host.Extension())

	ledger := &engine.Ledger{}
	require.NoError(t, host.Load(ctx.Sources(), ledger))
	require.Equal(t, 1, host.Len())

	backend.BeginFrame()
	require.NoError(t, host.Call(0, "draw"))
	backend.EndFrame()
	assert.Len(t, backend.Commands(), 1)

	var texts []string
	for _, l := range ctx.Console.History() {
		texts = append(texts, l.Text)
	}
	assert.Contains(t, texts, "drawn")
}

func TestCycleTheme(t *testing.T) {
	ctx := New(testConfig(t), nil)
	assert.Equal(t, theme.Default, ctx.Theme)
	assert.Equal(t, theme.Gruvbox, ctx.CycleTheme())
	assert.Equal(t, theme.Gruvbox, ctx.Theme)

	lines := ctx.Console.History()
	require.NotEmpty(t, lines)
	assert.Equal(t, "Theme: Gruvbox", lines[len(lines)-1].Text)
	assert.True(t, lines[len(lines)-1].Note)
}
