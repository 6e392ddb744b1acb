// Package mount switches a mounted filesystem between read-only and
// read-write, and scopes write access to a single operation.
package mount

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"opi/errors"
)

const DefaultTarget = "/"

type Mode string

const (
	ReadOnly  Mode = "ro"
	ReadWrite Mode = "rw"
)

func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case ReadWrite:
		return "read-write"
	}
	return string(m)
}

type Mounter interface {
	Mode(target string) (Mode, error)
	Remount(target string, mode Mode) error
}

// WithWritable runs fn with target mounted read-write. If target was not
// writable to begin with it is put back into its original mode once fn
// returns, whether fn failed or not. fn is never run if write access could
// not be acquired.
func WithWritable(ctx context.Context, m Mounter, target string, fn func() error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	initial, err := m.Mode(target)
	if err != nil {
		return fmt.Errorf(errors.MountModeErrorTpl, target, err)
	}
	slog.Debug(fmt.Sprintf("%s is currently mounted %s", target, initial))

	if initial == ReadWrite {
		slog.Info(target + " is already writable, leaving mount mode untouched")
		return fn()
	}

	slog.Info("Remounting " + target + " read-write")
	if err := m.Remount(target, ReadWrite); err != nil {
		return &errors.RemountError{Target: target, Mode: ReadWrite.String(), Err: err}
	}

	defer func() {
		slog.Info("Remounting " + target + " " + initial.String())
		if restoreErr := m.Remount(target, initial); restoreErr != nil {
			slog.Error(fmt.Sprintf("Failed to restore %s to %s: %s", target, initial, restoreErr))
			err = stderrors.Join(err, fmt.Errorf(errors.MountRestoreErrorTpl, target, initial, restoreErr))
		}
	}()

	return fn()
}

// Unmanaged reports every target as writable and never remounts. It backs
// --skip-remount for hosts whose root filesystem is not read-only.
type Unmanaged struct{}

func (Unmanaged) Mode(string) (Mode, error) {
	return ReadWrite, nil
}

func (Unmanaged) Remount(string, Mode) error {
	return nil
}
