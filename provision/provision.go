// Package provision runs the offline installation sequence: identify the
// distribution, locate its bundle, then install the bundle with the root
// filesystem writable only for the duration of the install.
package provision

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"opi/bundle"
	"opi/config"
	"opi/errors"
	"opi/system"
	"opi/system/command"
	"opi/system/mount"
	"opi/system/syspkg"
	"opi/tools/pip"
	"time"

	"github.com/google/uuid"
)

type Installer interface {
	InstallArgs(opts *pip.InstallOptions) []string
	Install(ctx context.Context, opts *pip.InstallOptions) error
}

type Options struct {
	DryRun         bool
	Upgrade        bool
	ForceReinstall bool
}

type Provisioner struct {
	Config  *config.Config
	Mounter mount.Mounter
	Options Options

	Detect       func(osReleasePath string) (*system.LocalSystem, error)
	NewInstaller func(pythonPath string, b *bundle.Bundle) (Installer, error)
}

type Result struct {
	RunID          string
	Distribution   string
	Bundle         *bundle.Bundle
	Archives       []string
	SystemArchives []string
	InitialMode    mount.Mode
	FinalMode      mount.Mode
	DryRun         bool
	Duration       time.Duration
}

func New(cfg *config.Config, mounter mount.Mounter, opts Options) *Provisioner {
	return &Provisioner{
		Config:  cfg,
		Mounter: mounter,
		Options: opts,
		Detect:  system.GetLocalSystem,
		NewInstaller: func(pythonPath string, b *bundle.Bundle) (Installer, error) {
			return pip.NewManager(pythonPath, b)
		},
	}
}

// plan is everything resolved before the filesystem is touched.
type plan struct {
	system         *system.LocalSystem
	bundle         *bundle.Bundle
	installer      Installer
	installOpts    *pip.InstallOptions
	packageManager syspkg.SystemPackageManager
	systemArchives []string
}

func (p *Provisioner) prepare() (*plan, error) {
	sys, err := p.Detect(p.Config.OSRelease)
	if err != nil {
		return nil, err
	}
	slog.Info("Detected distribution " + sys.String())

	b, err := bundle.Locate(p.Config.BundleRoot, sys.Vendor, bundle.Options{BootstrapPattern: p.Config.BootstrapPattern})
	if err != nil {
		return nil, err
	}

	installer, err := p.NewInstaller(p.Config.Python, b)
	if err != nil {
		return nil, err
	}

	pl := &plan{
		system:    sys,
		bundle:    b,
		installer: installer,
		installOpts: &pip.InstallOptions{
			Upgrade:        p.Options.Upgrade,
			ForceReinstall: p.Options.ForceReinstall,
			Extra:          p.Config.PipOptions,
		},
	}

	if len(b.SystemArchives) > 0 {
		pm, err := sys.RequirePackageManager()
		if err != nil {
			return nil, fmt.Errorf("bundle %s ships system packages: %w", b.Dir, err)
		}
		pl.packageManager = pm
		pl.systemArchives = b.SystemArchivesFor(pm.GetPackageExtension())
		if skipped := len(b.SystemArchives) - len(pl.systemArchives); skipped > 0 {
			slog.Warn(fmt.Sprintf("Ignoring %d system archive(s) not installable by %s", skipped, pm.GetBin()))
		}
	}

	return pl, nil
}

func (p *Provisioner) install(ctx context.Context, pl *plan) error {
	if len(pl.systemArchives) > 0 {
		if err := pl.packageManager.InstallLocal(ctx, pl.systemArchives); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return pl.installer.Install(ctx, pl.installOpts)
}

func (p *Provisioner) logPlan(pl *plan) {
	slog.Info("Bundle directory: " + pl.bundle.Dir)
	slog.Info("Bootstrap archive: " + pl.bundle.BootstrapPath)
	if len(pl.systemArchives) > 0 {
		slog.Info("Would run: " + command.Join(pl.packageManager.GetBin(), pl.systemArchives))
	}
	if pl.bundle.Empty() {
		slog.Info("No package archives to install")
	} else {
		slog.Info("Would run: " + command.Join(p.Config.Python, pl.installer.InstallArgs(pl.installOpts)))
	}
	if p.Config.SkipRemount {
		slog.Info("Would leave " + p.Config.Mountpoint + " mount mode untouched")
	} else {
		slog.Info("Would remount " + p.Config.Mountpoint + " read-write, then restore its mode")
	}
}

// Run performs the whole sequence. Nothing is remounted unless the
// distribution was identified and its bundle found. Once write access was
// acquired the original mount mode is restored on every path out of Run.
func (p *Provisioner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()

	// Every record of this run carries its ID, including those logged by
	// the mount and installer packages.
	prev := slog.Default()
	slog.SetDefault(prev.With("run", runID))
	defer slog.SetDefault(prev)

	pl, err := p.prepare()
	if err != nil {
		return nil, err
	}

	initial, err := p.Mounter.Mode(p.Config.Mountpoint)
	if err != nil {
		return nil, fmt.Errorf(errors.MountModeErrorTpl, p.Config.Mountpoint, err)
	}

	result := &Result{
		RunID:          runID,
		Distribution:   pl.system.Vendor,
		Bundle:         pl.bundle,
		Archives:       pl.bundle.Archives,
		SystemArchives: pl.systemArchives,
		InitialMode:    initial,
		FinalMode:      initial,
		DryRun:         p.Options.DryRun,
	}

	if p.Options.DryRun {
		p.logPlan(pl)
		result.Duration = time.Since(start)
		return result, nil
	}

	err = mount.WithWritable(ctx, p.Mounter, p.Config.Mountpoint, func() error {
		return p.install(ctx, pl)
	})

	final, modeErr := p.Mounter.Mode(p.Config.Mountpoint)
	if modeErr != nil {
		err = stderrors.Join(err, fmt.Errorf(errors.MountModeErrorTpl, p.Config.Mountpoint, modeErr))
	} else if final != initial {
		err = stderrors.Join(err, &errors.ModeMismatchError{
			Target: p.Config.Mountpoint,
			Want:   initial.String(),
			Got:    final.String(),
		})
	}
	result.FinalMode = final
	result.Duration = time.Since(start)

	if err != nil {
		return result, err
	}

	slog.Info(fmt.Sprintf("Installed %d archive(s) for %s in %s, %s is %s",
		len(result.Archives)+len(result.SystemArchives),
		result.Distribution,
		result.Duration.Round(time.Millisecond),
		p.Config.Mountpoint,
		result.FinalMode,
	))

	return result, nil
}
