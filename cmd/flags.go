package cmd

import (
	"opi/config"

	"github.com/urfave/cli/v2"
)

const categoryBundle = "Bundle location: "
const categoryInstall = "Installation: "
const categoryMount = "Mount: "

func commonFlags() []cli.Flag {
	return []cli.Flag{
		bundleRootFlag(),
		osReleaseFlag(),
		bootstrapPatternFlag(),
	}
}

func bundleRootFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "bundle-root",
		Aliases:     []string{"b"},
		Usage:       "Directory holding one offline bundle per distribution ID",
		EnvVars:     []string{"OPI_BUNDLE_ROOT"},
		DefaultText: config.DefaultBundleRoot,
		Category:    categoryBundle,
	}
}

func osReleaseFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "os-release",
		Usage:       "OS descriptor file to read the distribution ID from",
		EnvVars:     []string{"OPI_OS_RELEASE"},
		DefaultText: config.DefaultOSRelease,
		Category:    categoryBundle,
	}
}

func bootstrapPatternFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "bootstrap-pattern",
		Usage:       "Glob matching the bootstrap pip archive inside the bundle",
		EnvVars:     []string{"OPI_BOOTSTRAP_PATTERN"},
		DefaultText: config.DefaultBootstrapPattern,
		Category:    categoryBundle,
	}
}

func pythonFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "python",
		Usage:       usage,
		EnvVars:     []string{"OPI_PYTHON"},
		DefaultText: config.DefaultPython,
		Category:    categoryInstall,
	}
}

func mountpointFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "mountpoint",
		Aliases:     []string{"m"},
		Usage:       "Mountpoint to make writable during installation",
		EnvVars:     []string{"OPI_MOUNTPOINT"},
		DefaultText: config.DefaultMountpoint,
		Category:    categoryMount,
	}
}

func skipRemountFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:     "skip-remount",
		Usage:    "Leave the mount mode untouched, for filesystems that are already writable",
		EnvVars:  []string{"OPI_SKIP_REMOUNT"},
		Category: categoryMount,
	}
}
