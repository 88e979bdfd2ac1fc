package main

import (
	"context"
	"fmt"

	"github.com/atlanticdynamic/kgames/internal/backend/headless"
	"github.com/atlanticdynamic/kgames/internal/catalog"
	"github.com/atlanticdynamic/kgames/internal/engine"
	"github.com/atlanticdynamic/kgames/internal/engine/starlark"
	"github.com/atlanticdynamic/kgames/internal/fancy"
	"github.com/urfave/cli/v3"
)

// digestWidth is how much of the content digest the listing shows.
const digestWidth = 12

func newListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List the loaded scripts",
		Flags: []cli.Flag{
			newConfigFlag(),
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Fuzzy filter on script names",
			},
		},
		Action: listAction,
	}
}

func listAction(_ context.Context, cmd *cli.Command) error {
	appCtx, err := newAppContext(cmd)
	if err != nil {
		return err
	}

	host := appCtx.NewHost(headless.New())
	ledger := &engine.Ledger{}
	if err := host.Load(appCtx.Sources(), ledger); err != nil {
		appCtx.Console.Warn(fmt.Sprintf("%d scripts failed to load; run check for details", ledger.Len()))
	}

	records := host.Records()
	matches := catalog.Filter(catalog.FromScripts(host.Scripts()), cmd.String("filter"))

	// group by source directory, keeping load order
	var order []string
	groups := make(map[string][]*starlark.Record)
	for _, m := range matches {
		rec := records[m.Index]
		if _, ok := groups[rec.Source()]; !ok {
			order = append(order, rec.Source())
		}
		groups[rec.Source()] = append(groups[rec.Source()], rec)
	}

	root := fancy.NewComponentTree(fancy.RootStyle.Render(fmt.Sprintf("Scripts (%d of %d)", len(matches), len(records))))
	for _, src := range order {
		group := fancy.BranchNode(fancy.SourceText(src), fmt.Sprintf("(%d)", len(groups[src])))
		for _, rec := range groups[src] {
			branch := fancy.ScriptTree(rec.Name(), rec.IsExample()).
				AddChild("Path: " + fancy.PathText(rec.Path())).
				AddChild("Digest: " + fancy.TruncateString(rec.Digest(), digestWidth+3)).
				AddChild("Modified: " + rec.ModTime().Format("2006-01-02 15:04:05"))
			group.Child(branch.Tree())
		}
		root.AddChild(group)
	}

	_, err = fmt.Fprintln(output(cmd), root.String())
	return err
}
