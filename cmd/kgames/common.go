package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/atlanticdynamic/kgames/internal/app"
	"github.com/atlanticdynamic/kgames/internal/config"
	"github.com/atlanticdynamic/kgames/internal/logging"
	"github.com/urfave/cli/v3"
)

// defaultConfigFile is used when --config is not given and the file exists.
const defaultConfigFile = "kgames.toml"

func newConfigFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the TOML configuration file (defaults to ./kgames.toml when present)",
		Sources: cli.EnvVars("KGAMES_CONFIG"),
	}
}

// output returns the writer command results are printed to.
func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// loadConfig reads the config named by --config, the default file, or
// falls back to built-in defaults.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String("config")
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat %s: %w", defaultConfigFile, err)
		}
	}

	if path == "" {
		cfg := config.Default()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid default config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.NewConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// setupLogging builds the handler described by the logging section, with
// the --log-level flag taking precedence.
func setupLogging(cmd *cli.Command, cfg *config.Config) (slog.Handler, error) {
	level := cfg.Logging.Level.String()
	if override := cmd.String("log-level"); override != "" {
		l, err := config.LogLevelFromString(override)
		if err != nil {
			return nil, err
		}
		level = l.String()
	}
	return logging.SetupHandler(level, cfg.Logging.Format.String(), cfg.Logging.Output)
}

// newAppContext loads config, logging and directories for one command.
func newAppContext(cmd *cli.Command) (*app.Context, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	handler, err := setupLogging(cmd, cfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(handler))

	appCtx := app.New(cfg, handler)
	if err := appCtx.Dirs.Create(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}
	return appCtx, nil
}
