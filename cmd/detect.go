package cmd

import (
	stderrors "errors"
	"opi/bundle"
	"opi/errors"
	"opi/system"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func detect(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	localSystem, err := system.GetLocalSystem(cfg.OSRelease)
	if err != nil {
		return err
	}

	packageManager := "none"
	if localSystem.PackageManager != nil {
		packageManager = localSystem.PackageManager.GetBin()
	}

	data := pterm.TableData{
		{"Distribution", localSystem.Vendor},
		{"Version", localSystem.Version},
		{"Architecture", localSystem.Arch},
		{"Package manager", packageManager},
	}

	b, err := bundle.Locate(cfg.BundleRoot, localSystem.Vendor, bundle.Options{BootstrapPattern: cfg.BootstrapPattern})
	var notFound *errors.BundleNotFoundError
	var noBootstrap *errors.BootstrapArchiveNotFoundError
	switch {
	case stderrors.As(err, &notFound), stderrors.As(err, &noBootstrap):
		data = append(data, []string{"Bundle", err.Error()})
	case err != nil:
		return err
	default:
		data = append(data,
			[]string{"Bundle", b.Dir},
			[]string{"Bootstrap archive", b.BootstrapPath},
		)
	}

	return pterm.DefaultTable.WithData(data).Render()
}
