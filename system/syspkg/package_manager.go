package syspkg

import (
	"context"
	"fmt"
	"log/slog"
	"opi/errors"
	"opi/system/command"
	"opi/system/file"
	"strings"
)

// SystemPackageManager installs package archives that are already on disk,
// without consulting any configured repository.
type SystemPackageManager interface {
	GetBin() string
	GetPackageExtension() string
	InstallLocal(ctx context.Context, paths []string) error
}

func checkLocalPackages(paths []string) error {
	for _, p := range paths {
		isFile, err := file.IsFile(p)
		if err != nil {
			return fmt.Errorf(errors.PathCheckErrorTpl, p, err)
		}
		if !isFile {
			return fmt.Errorf("local package '%s' does not exist", p)
		}
	}
	return nil
}

func installLocal(ctx context.Context, binary string, opts []string, envVars []string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	if err := checkLocalPackages(paths); err != nil {
		return err
	}

	slog.Info("Installing local packages: " + strings.Join(paths, ", "))

	args := append(append([]string{}, opts...), paths...)
	cmd := command.NewShellCommand(ctx, binary, args, envVars, true)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf(errors.SystemLocalPackageInstallErrorTpl, paths, err)
	}

	return nil
}
