package assets

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}

func TestStore_Builtins(t *testing.T) {
	s := New(t.TempDir())
	assert.Equal(t, len(DefaultBuiltins), s.Len())

	tex, ok := s.Get("brick")
	require.True(t, ok)
	assert.True(t, tex.Builtin)
	assert.Equal(t, 64, tex.Width)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestStore_WithBuiltin(t *testing.T) {
	s := New(t.TempDir(), WithBuiltin("logo", 10, 20))
	tex, ok := s.Get("logo")
	require.True(t, ok)
	assert.Equal(t, 10, tex.Width)
	assert.Equal(t, 20, tex.Height)
}

func TestStore_Load(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "ball.png"), 16, 8)
	s := New(dir)

	t.Run("by bare name", func(t *testing.T) {
		tex, err := s.Load("ball")
		require.NoError(t, err)
		assert.Equal(t, 16, tex.Width)
		assert.Equal(t, 8, tex.Height)
		assert.False(t, tex.Builtin)
		assert.Equal(t, filepath.Join(dir, "ball.png"), tex.Path)
	})

	t.Run("cached after first load", func(t *testing.T) {
		before := s.Len()
		require.NoError(t, os.Remove(filepath.Join(dir, "ball.png")))
		tex, err := s.Load("ball")
		require.NoError(t, err)
		assert.Equal(t, 16, tex.Width)
		assert.Equal(t, before, s.Len())
	})

	t.Run("with extension", func(t *testing.T) {
		writePNG(t, filepath.Join(dir, "paddle.png"), 4, 4)
		tex, err := s.Load("paddle.png")
		require.NoError(t, err)
		assert.Equal(t, 4, tex.Width)
	})

	t.Run("builtin is returned without disk access", func(t *testing.T) {
		tex, err := s.Load("yes")
		require.NoError(t, err)
		assert.True(t, tex.Builtin)
	})
}

func TestStore_UserShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "brick.png"), 3, 3)
	s := New(dir)

	// builtin wins until a user texture has been loaded under the same name
	tex, err := s.Load("brick")
	require.NoError(t, err)
	assert.True(t, tex.Builtin)

	s.user["brick"] = &Texture{Name: "brick", Width: 3, Height: 3}
	tex, ok := s.Get("brick")
	require.True(t, ok)
	assert.False(t, tex.Builtin)
	assert.Equal(t, 3, tex.Width)
}

func TestStore_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.png"), []byte("not an image"), 0o644))
	s := New(dir)

	tests := []struct {
		name    string
		texture string
		wantErr error
	}{
		{name: "empty", texture: "", wantErr: ErrEmptyName},
		{name: "missing", texture: "nothing", wantErr: ErrTextureNotFound},
		{name: "missing with extension", texture: "nothing.png", wantErr: ErrTextureNotFound},
		{name: "escapes directory", texture: "../secret", wantErr: ErrInvalidName},
		{name: "absolute", texture: "/etc/passwd", wantErr: ErrInvalidName},
		{name: "not an image", texture: "junk", wantErr: ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Load(tt.texture)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
