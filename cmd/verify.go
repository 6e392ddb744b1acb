package cmd

import (
	"fmt"
	"opi/bundle"
	"opi/errors"
	"opi/system"
	"opi/tools/pip"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func verify(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	localSystem, err := system.GetLocalSystem(cfg.OSRelease)
	if err != nil {
		return err
	}

	b, err := bundle.Locate(cfg.BundleRoot, localSystem.Vendor, bundle.Options{BootstrapPattern: cfg.BootstrapPattern})
	if err != nil {
		return err
	}

	m, err := pip.NewManager(cfg.Python, b)
	if err != nil {
		return err
	}

	missing, err := m.Missing(cCtx.Context)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return &errors.MissingPackagesError{Packages: missing}
	}

	pterm.Success.Println(fmt.Sprintf("All %d bundled package(s) for %s are installed", len(b.PackageNames()), localSystem))
	return nil
}
