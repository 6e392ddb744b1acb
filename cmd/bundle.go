package cmd

import (
	"fmt"
	"opi/bundle"
	"opi/system"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func bundleList(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	distribution := cCtx.String("distribution")
	if distribution == "" {
		localSystem, err := system.GetLocalSystem(cfg.OSRelease)
		if err != nil {
			return err
		}
		distribution = localSystem.Vendor
	}

	b, err := bundle.Locate(cfg.BundleRoot, distribution, bundle.Options{BootstrapPattern: cfg.BootstrapPattern})
	if err != nil {
		return err
	}

	data := pterm.TableData{{"Archive", "Package", "Kind"}}
	for _, a := range b.Archives {
		kind := "package"
		if a == b.BootstrapPath {
			kind = "bootstrap"
		}
		data = append(data, []string{filepath.Base(a), bundle.ArchivePackageName(filepath.Base(a)), kind})
	}
	for _, a := range b.SystemArchives {
		data = append(data, []string{filepath.Join("system", filepath.Base(a)), "", "system"})
	}

	pterm.Info.Println(fmt.Sprintf("Bundle %s: %d archive(s), %d system archive(s)", b.Dir, len(b.Archives), len(b.SystemArchives)))
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
