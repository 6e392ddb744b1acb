package system

import (
	"fmt"
	"log/slog"
	"opi/errors"
	"opi/system/osrelease"
	"opi/system/syspkg"
	"os/user"
	"slices"

	"github.com/zcalusic/sysinfo"
)

var debianFamily = []string{"debian", "ubuntu", "raspbian"}
var rhelFamily = []string{"rhel", "centos", "fedora", "rocky", "rockylinux", "almalinux"}

type LocalSystem struct {
	Vendor         string
	Version        string
	IDLike         []string
	Arch           string
	PackageManager syspkg.SystemPackageManager
}

var sysInfo = func() sysinfo.SysInfo {
	var si sysinfo.SysInfo
	si.GetSysInfo()
	return si
}

// GetLocalSystem identifies the host from the os-release file at
// osReleasePath. A file without an ID is an error, since every bundle path
// is derived from it.
func GetLocalSystem(osReleasePath string) (*LocalSystem, error) {
	release, err := osrelease.Read(osReleasePath)
	if err != nil {
		return nil, err
	}
	if release.ID == "" {
		return nil, &errors.MissingDistributionIDError{Path: osReleasePath}
	}

	si := sysInfo()

	l := &LocalSystem{
		Vendor:  release.ID,
		Version: release.VersionID,
		IDLike:  release.IDLike,
		Arch:    si.OS.Architecture,
	}

	switch {
	case l.inFamily(debianFamily):
		l.PackageManager = syspkg.NewAptManager()
	case l.inFamily(rhelFamily):
		l.PackageManager = syspkg.NewDnfManager()
	default:
		slog.Debug(fmt.Sprintf("No system package manager known for %s", l))
	}

	slog.Debug(fmt.Sprintf("Detected %s (%s)", l, l.Arch))

	return l, nil
}

func (l *LocalSystem) inFamily(family []string) bool {
	if slices.Contains(family, l.Vendor) {
		return true
	}
	for _, like := range l.IDLike {
		if slices.Contains(family, like) {
			return true
		}
	}
	return false
}

// RequirePackageManager returns the system package manager, or an error
// naming the distribution when none is known for it.
func (l *LocalSystem) RequirePackageManager() (syspkg.SystemPackageManager, error) {
	if l.PackageManager == nil {
		return nil, &errors.UnsupportedOSError{Vendor: l.Vendor, Version: l.Version}
	}
	return l.PackageManager, nil
}

func (l *LocalSystem) String() string {
	if l.Version == "" {
		return l.Vendor
	}
	return l.Vendor + " " + l.Version
}

var currentUser = func() (*user.User, error) {
	return user.Current()
}

func RequireSudo() error {
	current, err := currentUser()
	if err != nil {
		return fmt.Errorf("failed to determine current user: %w", err)
	}

	if current.Uid != "0" {
		return fmt.Errorf("this command must be run as root")
	}

	return nil
}
