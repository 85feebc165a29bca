package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "kode",
		Usage: "run and inspect kode programs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to kode.yaml or kode.toml (searched next to FILE when empty)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace|debug|info|warn|error",
			},
			&cli.StringFlag{
				Name:  "modules",
				Usage: "directory imports are resolved against",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run a program and print its output",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					cfg, err := loadAppConfig(c, true)
					if err != nil {
						return err
					}
					return runPlain(cfg)
				},
			},
			{
				Name:      "tui",
				Usage:     "run a program in a scrollable terminal view",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					cfg, err := loadAppConfig(c, true)
					if err != nil {
						return err
					}
					return runTUI(cfg)
				},
			},
			{
				Name:      "repl",
				Usage:     "start an interactive session",
				ArgsUsage: "[FILE]",
				Action: func(c *cli.Context) error {
					cfg, err := loadAppConfig(c, false)
					if err != nil {
						return err
					}
					return runREPL(cfg)
				},
			},
			{
				Name:      "tokens",
				Usage:     "dump the token stream of a file",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					cfg, err := loadAppConfig(c, true)
					if err != nil {
						return err
					}
					return dumpTokens(os.Stdout, cfg.file)
				},
			},
			{
				Name:      "ast",
				Usage:     "dump the syntax tree of a file",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					cfg, err := loadAppConfig(c, true)
					if err != nil {
						return err
					}
					return dumpAST(os.Stdout, cfg.file)
				},
			},
		},
	}
}
