package cmd

import (
	"fmt"
	"opi/config"
	"opi/system/mount"

	"github.com/urfave/cli/v2"
)

var systemMounter = func() mount.Mounter {
	return mount.NewSyscallMounter()
}

// loadConfig builds the configuration for a command: the config file and
// environment first, then any flag given explicitly on the command line.
func loadConfig(cCtx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(cCtx.String("config"), cCtx.IsSet("config"))
	if err != nil {
		return nil, err
	}

	overrides := map[string]*string{
		"bundle-root":       &cfg.BundleRoot,
		"os-release":        &cfg.OSRelease,
		"python":            &cfg.Python,
		"mountpoint":        &cfg.Mountpoint,
		"bootstrap-pattern": &cfg.BootstrapPattern,
	}
	for name, dst := range overrides {
		if cCtx.IsSet(name) {
			*dst = cCtx.String(name)
		}
	}
	if cCtx.IsSet("skip-remount") {
		cfg.SkipRemount = cCtx.Bool("skip-remount")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func mounterFor(cfg *config.Config) mount.Mounter {
	if cfg.SkipRemount {
		return mount.Unmanaged{}
	}
	return systemMounter()
}
