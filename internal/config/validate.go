package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atlanticdynamic/kgames/internal/config/errz"
	"github.com/atlanticdynamic/kgames/internal/theme"
)

// Validate interpolates tagged fields and checks every section. All problems
// are reported together.
func (c *Config) Validate() error {
	if c.Version == "" {
		c.Version = VersionUnknown
	}
	switch c.Version {
	case VersionLatest:
		// Supported version
	default:
		return fmt.Errorf("%w: %s", errz.ErrUnsupportedConfigVer, c.Version)
	}

	var errs []error
	if err := c.Interpolate(); err != nil {
		errs = append(errs, err)
	}
	if c.Dirs.Scripts == "" {
		errs = append(errs, fmt.Errorf("%w: dirs.scripts", errz.ErrMissingRequiredField))
	}
	if c.Dirs.Examples == "" {
		errs = append(errs, fmt.Errorf("%w: dirs.examples", errz.ErrMissingRequiredField))
	}
	if c.Dirs.Assets == "" {
		errs = append(errs, fmt.Errorf("%w: dirs.assets", errz.ErrMissingRequiredField))
	}

	errs = append(errs, c.Engine.Validate(), c.Logging.Validate(), c.Watch.Validate(), c.Window.Validate(), c.UI.Validate())
	return joinErrors(errs)
}

// Validate checks the engine section.
func (ec *EngineConfig) Validate() error {
	var errs []error
	if ec.Extension == "" {
		errs = append(errs, fmt.Errorf("%w: engine.extension", errz.ErrMissingRequiredField))
	} else if !strings.HasPrefix(ec.Extension, ".") || len(ec.Extension) < 2 {
		errs = append(errs, fmt.Errorf("%w: engine.extension must start with '.': %q", errz.ErrInvalidValue, ec.Extension))
	}
	if ec.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("%w: engine.max_steps must not be negative: %d", errz.ErrInvalidValue, ec.MaxSteps))
	}

	seen := make(map[string]bool, len(ec.LoadOrder))
	for _, name := range ec.LoadOrder {
		switch name {
		case SourceExamples, SourceScripts:
		default:
			errs = append(errs, fmt.Errorf("%w: %q", errz.ErrUnknownSource, name))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("%w: %q", errz.ErrDuplicateSource, name))
		}
		seen[name] = true
	}
	return joinErrors(errs)
}

// Validate checks the watch section.
func (wc *WatchConfig) Validate() error {
	if wc.Enabled && wc.Interval <= 0 {
		return fmt.Errorf("%w: watch.interval must be positive: %s", errz.ErrInvalidValue, wc.Interval)
	}
	return nil
}

// Validate checks the window section.
func (wc *WindowConfig) Validate() error {
	var errs []error
	if wc.Width <= 0 || wc.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size must be positive: %dx%d", errz.ErrInvalidValue, wc.Width, wc.Height))
	}
	if wc.FPS <= 0 {
		errs = append(errs, fmt.Errorf("%w: window.fps must be positive: %d", errz.ErrInvalidValue, wc.FPS))
	}
	return joinErrors(errs)
}

// Validate checks the ui section.
func (uc *UIConfig) Validate() error {
	var errs []error
	if _, err := theme.Parse(uc.Theme); err != nil {
		errs = append(errs, fmt.Errorf("%w: %q", errz.ErrUnknownTheme, uc.Theme))
	}
	for name, c := range map[string]HexColor{
		"background":       uc.Background,
		"foreground":       uc.Foreground,
		"border":           uc.Border,
		"background_hover": uc.BackgroundHover,
		"background_click": uc.BackgroundClick,
	} {
		if err := c.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("ui.%s: %w", name, err))
		}
	}
	return joinErrors(errs)
}

// joinErrors drops nil entries and joins the rest.
func joinErrors(errs []error) error {
	var out []error
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return errors.Join(out...)
}
