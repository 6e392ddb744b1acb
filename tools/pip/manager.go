package pip

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"opi/bundle"
	"opi/errors"
	"opi/system/command"
	"opi/system/file"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
)

// Flags passed to every pip invocation. The bundled pip runs straight out of
// its wheel, and nothing may be cached on the root filesystem.
var commonOpts = []string{"--disable-pip-version-check", "--no-cache-dir"}

type Manager struct {
	PythonPath string
	Bundle     *bundle.Bundle
}

type InstallOptions struct {
	Upgrade        bool
	ForceReinstall bool
	Extra          []string
}

type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func NewManager(pythonPath string, b *bundle.Bundle) (*Manager, error) {
	if pythonPath == "" {
		return nil, fmt.Errorf("python interpreter path is required")
	}
	if b == nil || b.BootstrapPath == "" {
		return nil, fmt.Errorf("a bundle with a bootstrap archive is required")
	}

	return &Manager{
		PythonPath: pythonPath,
		Bundle:     b,
	}, nil
}

// pipEntrypoint is the pip module inside the bootstrap wheel; python can
// execute it directly since wheels are zip archives.
func (m *Manager) pipEntrypoint() string {
	return filepath.Join(m.Bundle.BootstrapPath, "pip")
}

func (m *Manager) InstallArgs(opts *InstallOptions) []string {
	args := []string{m.pipEntrypoint(), "install", "--no-index", "--find-links", m.Bundle.Dir}
	args = append(args, commonOpts...)
	if opts != nil {
		if opts.Upgrade {
			args = append(args, "--upgrade")
		}
		if opts.ForceReinstall {
			args = append(args, "--force-reinstall")
		}
		args = append(args, opts.Extra...)
	}
	return append(args, m.Bundle.Archives...)
}

func (m *Manager) interpreterInstalled() error {
	isFile, err := file.IsFile(m.PythonPath)
	if err != nil {
		return fmt.Errorf(errors.PathCheckErrorTpl, m.PythonPath, err)
	}
	if !isFile {
		return fmt.Errorf(errors.InterpreterMissingErrorTpl, m.PythonPath)
	}
	return nil
}

// Install installs every archive in the bundle using only the bundle
// directory as a package source.
func (m *Manager) Install(ctx context.Context, opts *InstallOptions) error {
	if m.Bundle.Empty() {
		slog.Info("Bundle " + m.Bundle.Dir + " has no package archives, nothing to install")
		return nil
	}

	if err := m.interpreterInstalled(); err != nil {
		return err
	}

	slog.Info(fmt.Sprintf("Installing %d package archive(s) from %s", len(m.Bundle.Archives), m.Bundle.Dir))
	s, _ := pterm.DefaultSpinner.Start("Installing offline packages for " + m.Bundle.Distribution + "...")

	cmd := command.NewShellCommand(ctx, m.PythonPath, m.InstallArgs(opts), nil, true)
	if err := cmd.Run(); err != nil {
		s.Fail("Installation failed.")
		return fmt.Errorf(errors.PipInstallErrorTpl, m.Bundle.Dir, err)
	}
	s.Success("Installation complete.")

	return nil
}

func (m *Manager) Installed(ctx context.Context) ([]Package, error) {
	if err := m.interpreterInstalled(); err != nil {
		return nil, err
	}

	args := append([]string{m.pipEntrypoint(), "list", "--format=json"}, commonOpts...)
	cmd := command.NewShellCommand(ctx, m.PythonPath, args, nil, true)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf(errors.PipListErrorTpl, err)
	}

	var packages []Package
	if err := json.Unmarshal(out, &packages); err != nil {
		return nil, fmt.Errorf(errors.PipListErrorTpl, err)
	}

	return packages, nil
}

// Missing returns the bundled package names that pip does not report as
// installed.
func (m *Manager) Missing(ctx context.Context) ([]string, error) {
	installed, err := m.Installed(ctx)
	if err != nil {
		return nil, err
	}

	have := map[string]struct{}{}
	for _, p := range installed {
		have[bundle.NormalizeName(p.Name)] = struct{}{}
	}

	var missing []string
	seen := map[string]struct{}{}
	for _, name := range m.Bundle.PackageNames() {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := have[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		slog.Debug("Bundled packages not installed: " + strings.Join(missing, ", "))
	}

	return missing, nil
}
