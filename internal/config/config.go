// Package config loads and validates the kgames TOML configuration.
package config

import (
	"path/filepath"

	"github.com/atlanticdynamic/kgames/internal/theme"
)

const (
	VersionLatest  = "v1"
	VersionUnknown = "unknown"
)

// Logical source names accepted in engine.load_order.
const (
	SourceExamples = "examples"
	SourceScripts  = "scripts"
)

// Config is the root of the configuration file.
type Config struct {
	Version string        `toml:"version"`
	Dirs    DirsConfig    `toml:"dirs"`
	Engine  EngineConfig  `toml:"engine"`
	Logging LoggingConfig `toml:"logging"`
	Watch   WatchConfig   `toml:"watch"`
	Window  WindowConfig  `toml:"window"`
	UI      UIConfig      `toml:"ui"`
}

// DirsConfig locates the application directories. Sub-directories that are
// relative resolve against Root.
type DirsConfig struct {
	Root     string `toml:"root"     env_interpolation:"path"`
	Scripts  string `toml:"scripts"  env_interpolation:"path"`
	Examples string `toml:"examples" env_interpolation:"path"`
	Assets   string `toml:"assets"   env_interpolation:"path"`
}

// EngineConfig controls script discovery and execution.
type EngineConfig struct {
	Extension string   `toml:"extension"`
	MaxSteps  int64    `toml:"max_steps"`
	LoadOrder []string `toml:"load_order"`
}

// WatchConfig controls the source directory watcher.
type WatchConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
}

// WindowConfig describes the window the frame runner drives.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	FPS    int    `toml:"fps"`
}

// UIConfig holds the menu colors and the starting theme.
type UIConfig struct {
	Theme           string   `toml:"theme"`
	Background      HexColor `toml:"background"`
	Foreground      HexColor `toml:"foreground"`
	Border          HexColor `toml:"border"`
	BackgroundHover HexColor `toml:"background_hover"`
	BackgroundClick HexColor `toml:"background_click"`
}

// Default returns the configuration used for every omitted field.
func Default() *Config {
	return &Config{
		Version: VersionLatest,
		Dirs: DirsConfig{
			Root:     "${KGAMES_HOME:kgames}",
			Scripts:  "scripts",
			Examples: "examples",
			Assets:   "assets",
		},
		Engine: EngineConfig{
			Extension: ".star",
			MaxSteps:  10_000_000,
			LoadOrder: []string{SourceExamples, SourceScripts},
		},
		Logging: LoggingConfig{
			Format: LogFormatText,
			Level:  LogLevelInfo,
			Output: "stderr",
		},
		Watch: WatchConfig{
			Enabled:  true,
			Interval: Duration(1e9),
		},
		Window: WindowConfig{
			Title:  "KGames",
			Width:  800,
			Height: 600,
			FPS:    60,
		},
		UI: UIConfig{
			Theme:           theme.Default.String(),
			Background:      "#1c1f1f",
			Foreground:      "#ebdbb2",
			Border:          "#808080",
			BackgroundHover: "#808080",
			BackgroundClick: "#0d0d0d",
		},
	}
}

// ScriptsDir returns the resolved user scripts directory.
func (c *Config) ScriptsDir() string {
	return c.resolve(c.Dirs.Scripts)
}

// ExamplesDir returns the resolved bundled examples directory.
func (c *Config) ExamplesDir() string {
	return c.resolve(c.Dirs.Examples)
}

// AssetsDir returns the resolved assets directory.
func (c *Config) AssetsDir() string {
	return c.resolve(c.Dirs.Assets)
}

func (c *Config) resolve(dir string) string {
	if filepath.IsAbs(dir) || c.Dirs.Root == "" {
		return filepath.Clean(dir)
	}
	return filepath.Join(c.Dirs.Root, dir)
}

// Theme returns the configured starting theme.
func (c *Config) Theme() theme.Theme {
	t, err := theme.Parse(c.UI.Theme)
	if err != nil {
		return theme.Default
	}
	return t
}
