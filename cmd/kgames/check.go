package main

import (
	"context"
	"fmt"

	"github.com/atlanticdynamic/kgames/internal/backend/headless"
	"github.com/atlanticdynamic/kgames/internal/engine"
	"github.com/atlanticdynamic/kgames/internal/errorpage"
	"github.com/urfave/cli/v3"
)

func newCheckCmd() *cli.Command {
	return &cli.Command{
		Name:    "check",
		Aliases: []string{"lint"},
		Usage:   "Load every script once and report failures",
		Flags: []cli.Flag{
			newConfigFlag(),
			&cli.BoolFlag{
				Name:    "tree",
				Aliases: []string{"t"},
				Usage:   "Show failures as a tree",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Wrap the error report to this many columns",
				Value: 80,
			},
		},
		Action: checkAction,
	}
}

func checkAction(_ context.Context, cmd *cli.Command) error {
	appCtx, err := newAppContext(cmd)
	if err != nil {
		return err
	}

	host := appCtx.NewHost(headless.New())
	ledger := &engine.Ledger{}
	loadErr := host.Load(appCtx.Sources(), ledger)

	w := output(cmd)
	if loadErr == nil {
		_, err := fmt.Fprintf(w, "All %d scripts loaded\n", host.Len())
		return err
	}

	page := errorpage.New(loadErr.Error(), ledger, appCtx.Theme)
	if cmd.Bool("tree") {
		fmt.Fprintln(w, page.Tree())
	} else {
		fmt.Fprintln(w, page.Render(int(cmd.Int("width"))))
	}
	return fmt.Errorf("%d of %d scripts failed: %w", ledger.Len(), ledger.Len()+host.Len(), loadErr)
}
