package cmd

import (
	"opi/provision"
	"opi/system"

	"github.com/urfave/cli/v2"
)

func provisionCmd(cCtx *cli.Context) error {
	dryRun := cCtx.Bool("dry-run")
	if !dryRun {
		if err := system.RequireSudo(); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	p := provision.New(cfg, mounterFor(cfg), provision.Options{
		DryRun:         dryRun,
		Upgrade:        cCtx.Bool("upgrade"),
		ForceReinstall: cCtx.Bool("force-reinstall"),
	})

	_, err = p.Run(cCtx.Context)
	return err
}
