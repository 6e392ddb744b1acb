package cmd

import (
	"fmt"
	"opi/errors"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func mountStatus(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	mode, err := systemMounter().Mode(cfg.Mountpoint)
	if err != nil {
		return fmt.Errorf(errors.MountModeErrorTpl, cfg.Mountpoint, err)
	}

	pterm.Info.Println(fmt.Sprintf("%s is mounted %s", cfg.Mountpoint, mode))
	return nil
}
