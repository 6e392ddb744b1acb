package syspkg

import (
	"context"
)

type DnfManager struct {
	binary      string
	installOpts []string
}

func NewDnfManager() *DnfManager {
	return &DnfManager{
		binary: "dnf",
		installOpts: []string{
			"-y", "-q",
			"--disablerepo=*",
			"--setopt=keepcache=False",
			"install",
		},
	}
}

func (m *DnfManager) GetBin() string {
	return m.binary
}

func (m *DnfManager) GetPackageExtension() string {
	return ".rpm"
}

func (m *DnfManager) InstallLocal(ctx context.Context, paths []string) error {
	return installLocal(ctx, m.binary, m.installOpts, nil, paths)
}
