package main

import (
	"context"
	"fmt"
	"os"

	"github.com/atlanticdynamic/kgames/internal/logging"
	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "kgames",
		Version: Version,
		Usage:   "Host and hot-reload Starlark games",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level (trace, debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			newRunCmd(),
			newCheckCmd(),
			newListCmd(),
			newVersionCmd(),
		},
	}
}

func main() {
	// replaced once the config is loaded
	logging.SetupLogger("info")
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
