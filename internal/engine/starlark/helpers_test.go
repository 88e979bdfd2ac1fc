package starlark

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atlanticdynamic/kgames/internal/assets"
	"github.com/atlanticdynamic/kgames/internal/capability"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	clears    int
	panicNext bool
}

func (b *stubBackend) Clear(capability.RGBA) {
	if b.panicNext {
		b.panicNext = false
		panic("backend exploded")
	}
	b.clears++
}

func (b *stubBackend) Text(string, float64, float64, float64, capability.RGBA)          {}
func (b *stubBackend) Circle(float64, float64, float64, capability.RGBA)                {}
func (b *stubBackend) Line(float64, float64, float64, float64, float64, capability.RGBA) {}
func (b *stubBackend) Triangle(capability.Point, capability.Point, capability.Point, capability.RGBA) {
}
func (b *stubBackend) Rectangle(float64, float64, float64, float64, capability.RGBA) {}
func (b *stubBackend) RectangleLines(float64, float64, float64, float64, float64, capability.RGBA) {
}
func (b *stubBackend) Texture(assets.Texture, float64, float64, capability.RGBA, capability.TextureParams) {
}
func (b *stubBackend) MessageBox(string, string)                {}
func (b *stubBackend) FrameTime() float64                       { return 1.0 / 60 }
func (b *stubBackend) ScreenWidth() float64                     { return 800 }
func (b *stubBackend) ScreenHeight() float64                    { return 600 }
func (b *stubBackend) FPS() int                                 { return 60 }
func (b *stubBackend) LastKeyPressed() (capability.Key, bool)   { return capability.Key{}, false }
func (b *stubBackend) KeyDown(capability.Key) bool              { return false }
func (b *stubBackend) KeyPressed(capability.Key) bool           { return false }
func (b *stubBackend) KeyReleased(capability.Key) bool          { return false }
func (b *stubBackend) MouseDown(capability.Mouse) bool          { return false }
func (b *stubBackend) MousePressed(capability.Mouse) bool       { return false }
func (b *stubBackend) MouseReleased(capability.Mouse) bool      { return false }
func (b *stubBackend) MousePosition() capability.Point          { return capability.Point{} }

type recordingSink struct {
	logs  []string
	warns []string
	errs  []string
}

func (s *recordingSink) Log(text string)  { s.logs = append(s.logs, text) }
func (s *recordingSink) Warn(text string) { s.warns = append(s.warns, text) }
func (s *recordingSink) Err(text string)  { s.errs = append(s.errs, text) }

// newTestHost returns a host over a stub backend, with its sink.
func newTestHost(t *testing.T, opts ...Option) (*Host, *stubBackend, *recordingSink) {
	t.Helper()
	backend := &stubBackend{}
	sink := &recordingSink{}
	surface := capability.New(backend, assets.New(t.TempDir()))
	opts = append([]Option{WithSink(sink)}, opts...)
	return New(surface, opts...), backend, sink
}

// writeScript writes src to dir/name and returns its path.
func writeScript(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

// touch moves the modification time of path forward so the next pass sees a
// change regardless of filesystem timestamp resolution.
func touch(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	next := info.ModTime().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, next, next))
}

// rewrite replaces the contents of path and bumps its modification time.
func rewrite(t *testing.T, path, src string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	next := info.ModTime().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, next, next))
}
