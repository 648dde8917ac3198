// Package bootstrap wires the xtree command line to the application model.
package bootstrap

import (
	urfavecli "github.com/urfave/cli/v3"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via Command.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&urfavecli.StringFlag{
			Name:  "sort",
			Usage: "Initial sorting: Name, Children or Height",
		},
		&urfavecli.BoolFlag{
			Name:  "no-compress",
			Usage: "Start with redundant explicit dependencies shown",
		},
		&urfavecli.StringFlag{
			Name:  "transition",
			Usage: "Filter panel animation backend: auto, event or timer",
		},
		&urfavecli.BoolFlag{
			Name:  "watch",
			Usage: "Reload the tree when the input file changes",
		},
		&urfavecli.BoolFlag{
			Name:  "list-themes",
			Usage: "List available themes and exit",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override config values (repeatable): --config=xt.key=value",
		},
	}
}
