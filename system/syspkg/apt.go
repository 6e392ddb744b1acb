package syspkg

import (
	"context"
)

type AptManager struct {
	binary      string
	installOpts []string
	envVars     []string
}

func NewAptManager() *AptManager {
	return &AptManager{
		binary: "apt-get",
		installOpts: []string{
			"install", "-y", "-q",
			"--no-download",
			"-o", "Dir::Etc::SourceList=/dev/null",
			"-o", "Dir::Etc::SourceParts=/dev/null",
		},
		envVars: []string{"DEBIAN_FRONTEND=noninteractive"},
	}
}

func (m *AptManager) GetBin() string {
	return m.binary
}

func (m *AptManager) GetPackageExtension() string {
	return ".deb"
}

// InstallLocal installs .deb archives by path. apt-get only treats an
// argument as a file when it contains a slash, which absolute paths do.
func (m *AptManager) InstallLocal(ctx context.Context, paths []string) error {
	return installLocal(ctx, m.binary, m.installOpts, m.envVars, paths)
}
