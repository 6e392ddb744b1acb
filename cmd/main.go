package cmd

import (
	"log/slog"
	"opi/config"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func Cli() *cli.App {
	app := &cli.App{
		Name:        "opi",
		Usage:       "Offline Package Installer",
		Description: "Install the offline package bundle shipped for this distribution onto a read-only root filesystem",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug mode",
				Action: func(c *cli.Context, debugMode bool) error {
					if debugMode {
						slog.Info("Debug mode enabled")
						pterm.DefaultLogger.Level = pterm.LogLevelDebug
					}
					return nil
				},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the configuration file",
				Value:   config.DefaultPath,
				EnvVars: []string{"OPI_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "provision",
				Usage: "Remount the root filesystem read-write, install the offline bundle, and remount it read-only",
				Flags: append(commonFlags(),
					mountpointFlag(),
					skipRemountFlag(),
					pythonFlag("Python interpreter used to run the bootstrap pip"),
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Print what would be done without remounting or installing anything",
					},
					&cli.BoolFlag{
						Name:     "upgrade",
						Aliases:  []string{"U"},
						Usage:    "Upgrade packages that are already installed",
						Category: categoryInstall,
					},
					&cli.BoolFlag{
						Name:     "force-reinstall",
						Usage:    "Reinstall packages even if they are up to date",
						Category: categoryInstall,
					},
				),
				Action: provisionCmd,
			},
			{
				Name:   "detect",
				Usage:  "Show the detected distribution and its offline bundle paths",
				Flags:  commonFlags(),
				Action: detect,
			},
			{
				Name:  "bundle",
				Usage: "Inspect offline bundles",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List the archives in a bundle",
						Flags: append(commonFlags(),
							&cli.StringFlag{
								Name:    "distribution",
								Aliases: []string{"D"},
								Usage:   "Distribution ID of the bundle, instead of the detected one",
							},
						),
						Action: bundleList,
					},
				},
			},
			{
				Name:  "mount",
				Usage: "Inspect the root filesystem mount",
				Subcommands: []*cli.Command{
					{
						Name:   "status",
						Usage:  "Show whether the mountpoint is read-only or read-write",
						Flags:  []cli.Flag{mountpointFlag()},
						Action: mountStatus,
					},
				},
			},
			{
				Name:  "verify",
				Usage: "Check that every bundled package is installed",
				Flags: append(commonFlags(),
					pythonFlag("Python interpreter to query"),
				),
				Action: verify,
			},
		},
	}
	return app
}
