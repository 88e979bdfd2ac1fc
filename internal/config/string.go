package config

import (
	"fmt"
	"strings"

	"github.com/atlanticdynamic/kgames/internal/fancy"
)

// String returns a pretty-printed tree representation of the config
func (c *Config) String() string {
	return ConfigTree(c)
}

// ConfigTree converts a Config struct into a rendered tree string
func ConfigTree(cfg *Config) string {
	t := fancy.Tree()
	t.Root(fancy.RootStyle.Render(fmt.Sprintf("KGames Config (%s)", cfg.Version)))

	t.Child(fancy.Section("Dirs",
		fmt.Sprintf("Root: %s", cfg.Dirs.Root),
		fmt.Sprintf("Scripts: %s", cfg.ScriptsDir()),
		fmt.Sprintf("Examples: %s", cfg.ExamplesDir()),
		fmt.Sprintf("Assets: %s", cfg.AssetsDir()),
	))
	t.Child(fancy.Section("Engine",
		fmt.Sprintf("Extension: %s", cfg.Engine.Extension),
		fmt.Sprintf("Max steps: %d", cfg.Engine.MaxSteps),
		fmt.Sprintf("Load order: %s", strings.Join(cfg.Engine.LoadOrder, ", ")),
	))
	t.Child(fancy.Section("Logging",
		fmt.Sprintf("Format: %s", cfg.Logging.Format),
		fmt.Sprintf("Level: %s", cfg.Logging.Level),
		fmt.Sprintf("Output: %s", cfg.Logging.Output),
	))
	t.Child(fancy.Section("Watch",
		fmt.Sprintf("Enabled: %t", cfg.Watch.Enabled),
		fmt.Sprintf("Interval: %s", cfg.Watch.Interval),
	))
	t.Child(fancy.Section("Window",
		fmt.Sprintf("Title: %s", cfg.Window.Title),
		fmt.Sprintf("Size: %dx%d @ %d fps", cfg.Window.Width, cfg.Window.Height, cfg.Window.FPS),
	))
	t.Child(fancy.Section("UI",
		fmt.Sprintf("Theme: %s", cfg.UI.Theme),
		fmt.Sprintf("Background: %s", cfg.UI.Background),
		fmt.Sprintf("Foreground: %s", cfg.UI.Foreground),
	))

	return t.String()
}
