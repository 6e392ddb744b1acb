package errors

import "fmt"

// Generic errors

var FileOpenErrorTpl = "failed to open %s: %w"
var FileStatErrorTpl = "failed to stat %s: %w"
var FileReadErrorTpl = "failed to read %s: %w"
var PathCheckErrorTpl = "failed to check if '%s' exists: %w"

// Detection errors

var OSReleaseReadErrorTpl = "failed to read OS descriptor %s: %w"

// Mount errors

var MountTableReadErrorTpl = "failed to read mount table: %w"
var MountModeErrorTpl = "failed to determine mount mode of %s: %w"
var MountRestoreErrorTpl = "failed to restore %s to %s: %w"

// Bundle errors

var BundleScanErrorTpl = "failed to scan bundle directory %s: %w"
var BundlePatternErrorTpl = "invalid archive pattern '%s': %w"

// Install errors

var SystemLocalPackageInstallErrorTpl = "failed to install local package(s) %v: %w"
var PipInstallErrorTpl = "failed to install packages from %s: %w"
var PipListErrorTpl = "failed to list installed python packages: %w"
var InterpreterMissingErrorTpl = "python interpreter %s does not exist"

type UnsupportedOSError struct {
	Vendor  string
	Version string
}

func (e *UnsupportedOSError) Error() string {
	return fmt.Sprintf("unsupported os %s %s", e.Vendor, e.Version)
}

type MissingDistributionIDError struct {
	Path string
}

func (e *MissingDistributionIDError) Error() string {
	return fmt.Sprintf("no distribution ID found in %s", e.Path)
}

type BundleNotFoundError struct {
	Distribution string
	Path         string
}

func (e *BundleNotFoundError) Error() string {
	return fmt.Sprintf("no offline bundle for %s at %s", e.Distribution, e.Path)
}

type BootstrapArchiveNotFoundError struct {
	Pattern string
	Dir     string
}

func (e *BootstrapArchiveNotFoundError) Error() string {
	return fmt.Sprintf("no bootstrap archive matching '%s' in %s", e.Pattern, e.Dir)
}

type RemountError struct {
	Target string
	Mode   string
	Err    error
}

func (e *RemountError) Error() string {
	return fmt.Sprintf("failed to remount %s %s: %v", e.Target, e.Mode, e.Err)
}

func (e *RemountError) Unwrap() error {
	return e.Err
}

type ModeMismatchError struct {
	Target string
	Want   string
	Got    string
}

func (e *ModeMismatchError) Error() string {
	return fmt.Sprintf("%s is mounted %s, expected %s", e.Target, e.Got, e.Want)
}

type MissingPackagesError struct {
	Packages []string
}

func (e *MissingPackagesError) Error() string {
	return fmt.Sprintf("%d bundled package(s) not installed: %v", len(e.Packages), e.Packages)
}
