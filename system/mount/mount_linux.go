//go:build linux

package mount

import (
	"fmt"
	"log/slog"
	"opi/errors"
	"path/filepath"

	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"
)

// Per-mount flags that a plain MS_REMOUNT would otherwise clear.
var preservedFlags = map[string]uintptr{
	"nosuid":      unix.MS_NOSUID,
	"nodev":       unix.MS_NODEV,
	"noexec":      unix.MS_NOEXEC,
	"noatime":     unix.MS_NOATIME,
	"nodiratime":  unix.MS_NODIRATIME,
	"relatime":    unix.MS_RELATIME,
	"strictatime": unix.MS_STRICTATIME,
}

var getMounts = procfs.GetMounts

var mountSyscall = unix.Mount

// SyscallMounter remounts through mount(2) and reads modes from
// /proc/self/mountinfo.
type SyscallMounter struct{}

func NewSyscallMounter() *SyscallMounter {
	return &SyscallMounter{}
}

func (s *SyscallMounter) Mode(target string) (Mode, error) {
	info, err := lookup(target)
	if err != nil {
		return "", err
	}
	if _, ro := info.Options["ro"]; ro {
		return ReadOnly, nil
	}
	return ReadWrite, nil
}

func (s *SyscallMounter) Remount(target string, mode Mode) error {
	info, err := lookup(target)
	if err != nil {
		return err
	}

	flags := uintptr(unix.MS_REMOUNT)
	for opt, flag := range preservedFlags {
		if _, ok := info.Options[opt]; ok {
			flags |= flag
		}
	}
	if mode == ReadOnly {
		flags |= unix.MS_RDONLY
	}

	slog.Debug(fmt.Sprintf("mount(%s, flags=%#x)", info.MountPoint, flags))
	return mountSyscall("", info.MountPoint, "", flags, "")
}

// lookup returns the mountinfo entry visible at target. Stacked mounts on the
// same point are listed in mount order, so the last match wins.
func lookup(target string) (*procfs.MountInfo, error) {
	mounts, err := getMounts()
	if err != nil {
		return nil, fmt.Errorf(errors.MountTableReadErrorTpl, err)
	}

	target = filepath.Clean(target)
	var found *procfs.MountInfo
	for _, m := range mounts {
		if m.MountPoint == target {
			found = m
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%s is not a mountpoint", target)
	}
	return found, nil
}
