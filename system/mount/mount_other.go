//go:build !linux

package mount

import "fmt"

type SyscallMounter struct{}

func NewSyscallMounter() *SyscallMounter {
	return &SyscallMounter{}
}

func (s *SyscallMounter) Mode(target string) (Mode, error) {
	return "", fmt.Errorf("reading mount mode of %s is only supported on Linux", target)
}

func (s *SyscallMounter) Remount(target string, mode Mode) error {
	return fmt.Errorf("remounting %s is only supported on Linux", target)
}
