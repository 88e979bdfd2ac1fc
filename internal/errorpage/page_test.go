package errorpage

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/atlanticdynamic/kgames/internal/backend/headless"
	"github.com/atlanticdynamic/kgames/internal/capability"
	"github.com/atlanticdynamic/kgames/internal/engine"
	"github.com/atlanticdynamic/kgames/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReloader fills the ledger with the next queued failures.
type fakeReloader struct {
	calls    int
	failures [][]string
}

func (f *fakeReloader) Reload(ledger *engine.Ledger) error {
	f.calls++
	if len(f.failures) == 0 {
		return nil
	}
	next := f.failures[0]
	f.failures = f.failures[1:]
	for _, path := range next {
		ledger.Append(path, engine.ErrCompile)
	}
	if len(next) > 0 {
		return engine.ErrLoadFailed
	}
	return nil
}

func failedLedger() *engine.Ledger {
	l := &engine.Ledger{}
	l.Append("scripts/a.star", fmt.Errorf("%w: a.star:1:5: got '=', want newline", engine.ErrCompile))
	l.Append("scripts/b.star", fmt.Errorf("%w: undefined: foo", engine.ErrInit))
	return l
}

func TestNew(t *testing.T) {
	p := New("ctx", nil, theme.Default)
	require.NotNil(t, p.Ledger)
	assert.Equal(t, "Encountered 0 errors", p.Summary())
}

func TestRender(t *testing.T) {
	p := New(engine.ErrLoadFailed.Error(), failedLedger(), theme.Gruvbox)
	out := p.Render(100)

	for _, want := range []string{
		"ERROR",
		"failed to load scripts",
		"Encountered 2 errors",
		"Error #1",
		"Source: scripts/a.star",
		"Error #2",
		"Source: scripts/b.star",
		"undefined: foo",
		"Press Escape to return",
		"Press F5 to reload scripts",
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "Error #1"), strings.Index(out, "Error #2"))
}

func TestTree(t *testing.T) {
	p := New("", failedLedger(), theme.Default)
	out := p.Tree()
	assert.Contains(t, out, "Encountered 2 errors")
	assert.Contains(t, out, "scripts/a.star")
	assert.Contains(t, out, "undefined: foo")
}

func TestHandleKey(t *testing.T) {
	t.Run("escape closes", func(t *testing.T) {
		p := New("", failedLedger(), theme.Default)
		r := &fakeReloader{}
		assert.False(t, p.HandleKey(capability.KeyEscape, r))
		assert.Zero(t, r.calls)
		assert.Equal(t, 2, p.Ledger.Len(), "escape keeps the ledger")
	})

	t.Run("other keys keep the page", func(t *testing.T) {
		p := New("", failedLedger(), theme.Default)
		assert.True(t, p.HandleKey(capability.KeySpace, &fakeReloader{}))
	})

	t.Run("refresh with remaining failures", func(t *testing.T) {
		p := New("", failedLedger(), theme.Default)
		r := &fakeReloader{failures: [][]string{{"scripts/b.star"}}}
		assert.True(t, p.HandleKey(capability.KeyF5, r))
		assert.Equal(t, 1, r.calls)
		assert.Equal(t, []string{"scripts/b.star"}, p.Ledger.Paths())
		assert.Equal(t, engine.ErrLoadFailed.Error(), p.Context)
	})

	t.Run("refresh that succeeds closes", func(t *testing.T) {
		p := New("old", failedLedger(), theme.Default)
		r := &fakeReloader{}
		assert.False(t, p.HandleKey(capability.KeyF5, r))
		assert.Zero(t, p.Ledger.Len())
		assert.Empty(t, p.Context)
	})
}

func TestDraw(t *testing.T) {
	p := New("ctx", failedLedger(), theme.Default)
	b := headless.New()
	b.BeginFrame()
	p.Draw(b, b.ScreenWidth(), b.ScreenHeight())
	b.EndFrame()

	cmds := b.Commands()
	require.NotEmpty(t, cmds)
	assert.Equal(t, "clear", cmds[0].Op)
	assert.Equal(t, Background, cmds[0].Args[0])

	var texts []string
	for _, c := range cmds[1:] {
		require.Equal(t, "text", c.Op)
		texts = append(texts, c.Args[0].(string))
	}
	assert.Contains(t, texts, "ERROR")
	assert.Contains(t, texts, "Encountered 2 errors")
	assert.Contains(t, texts, "Source: scripts/a.star")
	assert.Equal(t, "Press F5 to reload scripts", texts[len(texts)-1])
}

func TestWrapped(t *testing.T) {
	b := headless.New()
	b.BeginFrame()
	y := wrapped(b, "one two three four five six", 0, 0, 150, 30, capability.RGBA{})
	b.EndFrame()
	assert.Greater(t, len(b.Commands()), 1)
	assert.InDelta(t, float64(len(b.Commands()))*30, y, 0)

	assert.True(t, errors.Is(failedLedger().Err(), engine.ErrCompile))
}
