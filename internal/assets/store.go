// Package assets provides the texture cache shared by every script.
//
// The cache is append-only: builtin textures are registered at construction,
// user textures are inserted on first load, and no entry is ever replaced or
// removed. The store is owned by the frame goroutine and performs no locking.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyName       = errors.New("empty texture name")
	ErrInvalidName     = errors.New("invalid texture name")
	ErrTextureNotFound = errors.New("texture not found")
	ErrDecode          = errors.New("failed to decode texture")
)

// extensions tried, in order, when a texture is loaded by bare name.
var extensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// Texture describes one cached texture. Pixel data stays with the rendering
// backend; the cache only tracks identity and dimensions.
type Texture struct {
	Name    string
	Path    string
	Width   int
	Height  int
	Builtin bool
}

// Store is the texture cache.
type Store struct {
	dir     string
	builtin map[string]*Texture
	user    map[string]*Texture
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used by the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithBuiltin registers an additional builtin texture.
func WithBuiltin(name string, width, height int) Option {
	return func(s *Store) {
		s.builtin[name] = &Texture{Name: name, Width: width, Height: height, Builtin: true}
	}
}

// DefaultBuiltins lists the textures that ship with the application.
var DefaultBuiltins = []Texture{
	{Name: "folder_open", Width: 32, Height: 32},
	{Name: "folder_open_file", Width: 32, Height: 32},
	{Name: "yes", Width: 32, Height: 32},
	{Name: "no", Width: 32, Height: 32},
	{Name: "warning", Width: 32, Height: 32},
	{Name: "search_file", Width: 32, Height: 32},
	{Name: "help_book", Width: 32, Height: 32},
	{Name: "brick", Width: 64, Height: 64},
}

// New creates a store that loads user textures from dir.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:     dir,
		builtin: make(map[string]*Texture, len(DefaultBuiltins)),
		user:    make(map[string]*Texture),
		logger:  slog.Default().WithGroup("assets.Store"),
	}
	for _, t := range DefaultBuiltins {
		s.builtin[t.Name] = &Texture{Name: t.Name, Width: t.Width, Height: t.Height, Builtin: true}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory user textures are loaded from.
func (s *Store) Dir() string {
	return s.dir
}

// Get returns a stored texture, preferring user textures over builtin ones.
func (s *Store) Get(name string) (Texture, bool) {
	if t, ok := s.user[name]; ok {
		return *t, true
	}
	if t, ok := s.builtin[name]; ok {
		return *t, true
	}
	return Texture{}, false
}

// Load returns the stored texture for name, loading it from the assets
// directory on first use.
func (s *Store) Load(name string) (Texture, error) {
	if name == "" {
		return Texture{}, ErrEmptyName
	}
	if t, ok := s.Get(name); ok {
		return t, nil
	}

	path, err := s.resolve(name)
	if err != nil {
		return Texture{}, err
	}

	t, err := decode(name, path)
	if err != nil {
		return Texture{}, err
	}

	s.user[name] = t
	s.logger.Debug("Texture loaded", "name", name, "path", path, "width", t.Width, "height", t.Height)
	return *t, nil
}

// Len returns the number of cached textures.
func (s *Store) Len() int {
	return len(s.builtin) + len(s.user)
}

// resolve maps a texture name to a file inside the assets directory.
func (s *Store) resolve(name string) (string, error) {
	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	candidate := filepath.Join(s.dir, clean)
	if filepath.Ext(clean) != "" {
		if _, err := os.Stat(candidate); err != nil {
			return "", fmt.Errorf("%w: %s", ErrTextureNotFound, name)
		}
		return candidate, nil
	}

	for _, ext := range extensions {
		if _, err := os.Stat(candidate + ext); err == nil {
			return candidate + ext, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrTextureNotFound, name)
}

func decode(name, path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTextureNotFound, err)
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, name, err)
	}

	return &Texture{Name: name, Path: path, Width: cfg.Width, Height: cfg.Height}, nil
}
