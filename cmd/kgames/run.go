package main

import (
	"context"
	"fmt"

	"github.com/atlanticdynamic/kgames/internal/backend/headless"
	"github.com/atlanticdynamic/kgames/internal/frame"
	"github.com/atlanticdynamic/kgames/internal/watcher"
	"github.com/robbyt/go-supervisor/supervisor"
	"github.com/urfave/cli/v3"
)

func newRunCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Load the scripts and drive them frame by frame",
		Flags: []cli.Flag{
			newConfigFlag(),
			&cli.StringFlag{
				Name:    "script",
				Aliases: []string{"s"},
				Usage:   "Start with this script selected (name or path)",
			},
			&cli.IntFlag{
				Name:    "frames",
				Aliases: []string{"n"},
				Usage:   "Stop after this many frames (0 runs until interrupted)",
			},
			&cli.BoolFlag{
				Name:  "no-watch",
				Usage: "Disable reloading when script files change",
			},
		},
		Action: runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := newAppContext(cmd)
	if err != nil {
		return err
	}
	cfg := appCtx.Config
	handler := appCtx.Logger.Handler()

	window := headless.New(
		headless.WithSize(cfg.Window.Width, cfg.Window.Height),
		headless.WithFPS(cfg.Window.FPS),
		headless.WithLogger(appCtx.Logger.With("component", "backend")),
	)
	host := appCtx.NewHost(window)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var runnables []supervisor.Runnable
	frameOpts := []frame.Option{
		frame.WithContext(ctx),
		frame.WithLogHandler(handler),
		frame.WithMaxFrames(int(cmd.Int("frames"))),
		frame.WithScript(cmd.String("script")),
		frame.WithOnDone(cancel),
	}

	if cfg.Watch.Enabled && !cmd.Bool("no-watch") {
		watch, err := watcher.NewRunner(
			appCtx.Sources(),
			watcher.WithContext(ctx),
			watcher.WithLogHandler(handler),
			watcher.WithInterval(cfg.Watch.Interval.AsDuration()),
			watcher.WithExtension(cfg.Engine.Extension),
		)
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		runnables = append(runnables, watch)
		frameOpts = append(frameOpts, frame.WithChanges(watch.Changes()))
	}

	frames, err := frame.NewRunner(appCtx, host, window, frameOpts...)
	if err != nil {
		return fmt.Errorf("failed to create frame runner: %w", err)
	}
	runnables = append(runnables, frames)

	super, err := supervisor.New(
		supervisor.WithContext(ctx),
		supervisor.WithLogHandler(handler),
		supervisor.WithRunnables(runnables...),
	)
	if err != nil {
		return fmt.Errorf("failed to create supervisor: %w", err)
	}
	if err := super.Run(); err != nil {
		return fmt.Errorf("failed to run: %w", err)
	}

	stats := frames.Stats()
	_, err = fmt.Fprintf(output(cmd), "Ran %d frames, %d reloads, %d invocation errors\n",
		stats.Frames, stats.Reloads, stats.InvocationErrors)
	return err
}
