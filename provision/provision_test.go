package provision

import (
	"context"
	stderrors "errors"
	"opi/bundle"
	"opi/config"
	"opi/errors"
	mount_mock "opi/mocks/opi/system/mount"
	syspkg_mock "opi/mocks/opi/system/syspkg"
	"opi/opitest"
	"opi/system"
	"opi/system/mount"
	"opi/tools/pip"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const bundleRoot = "/opt/offline-packages"

type fakeInstaller struct {
	calls int
	opts  *pip.InstallOptions
	err   error
}

func (f *fakeInstaller) InstallArgs(opts *pip.InstallOptions) []string {
	return []string{"bootstrap.whl/pip", "install"}
}

func (f *fakeInstaller) Install(ctx context.Context, opts *pip.InstallOptions) error {
	f.calls++
	f.opts = opts
	return f.err
}

// statefulMounter returns a mock whose reported mode follows its remounts.
func statefulMounter(t *testing.T, initial mount.Mode, remountErr map[mount.Mode]error) (*mount_mock.MockMounter, *[]mount.Mode) {
	current := initial
	var remounts []mount.Mode

	m := mount_mock.NewMockMounter(t)
	m.EXPECT().Mode("/").RunAndReturn(func(string) (mount.Mode, error) {
		return current, nil
	}).Maybe()
	m.EXPECT().Remount("/", mock.Anything).RunAndReturn(func(_ string, mode mount.Mode) error {
		remounts = append(remounts, mode)
		if err := remountErr[mode]; err != nil {
			return err
		}
		current = mode
		return nil
	}).Maybe()

	return m, &remounts
}

func newProvisioner(t *testing.T, sys *system.LocalSystem, mounter mount.Mounter, installer *fakeInstaller) *Provisioner {
	p := New(config.Default(), mounter, Options{})
	p.Detect = func(string) (*system.LocalSystem, error) {
		return sys, nil
	}
	p.NewInstaller = func(pythonPath string, b *bundle.Bundle) (Installer, error) {
		assert.Equal(t, config.DefaultPython, pythonPath)
		return installer, nil
	}
	return p
}

func Test_Provisioner_Run(t *testing.T) {
	fs := opitest.UseMemFs(t)
	opitest.WriteBundle(t, fs, bundleRoot, "example", "pip-24.0-py3-none-any.whl", "simplejson-3.19.2.tar.gz")

	mounter, remounts := statefulMounter(t, mount.ReadOnly, nil)
	installer := &fakeInstaller{}
	p := newProvisioner(t, opitest.NewExampleSystem(), mounter, installer)
	p.Config.PipOptions = []string{"--no-deps"}
	p.Options.Upgrade = true

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, installer.calls)
	assert.Equal(t, &pip.InstallOptions{Upgrade: true, Extra: []string{"--no-deps"}}, installer.opts)
	assert.Equal(t, []mount.Mode{mount.ReadWrite, mount.ReadOnly}, *remounts)

	assert.Equal(t, "example", result.Distribution)
	assert.Equal(t, "/opt/offline-packages/example", result.Bundle.Dir)
	assert.Contains(t, result.Bundle.BootstrapPath, "example")
	assert.Len(t, result.Archives, 2)
	assert.Equal(t, mount.ReadOnly, result.InitialMode)
	assert.Equal(t, mount.ReadOnly, result.FinalMode)
	assert.False(t, result.DryRun)

	_, err = uuid.Parse(result.RunID)
	assert.NoError(t, err)
}

func Test_Provisioner_Run_InstallFailure(t *testing.T) {
	fs := opitest.UseMemFs(t)
	opitest.WriteBundle(t, fs, bundleRoot, "example", "pip-24.0-py3-none-any.whl", "simplejson-3.19.2.tar.gz")

	mounter, remounts := statefulMounter(t, mount.ReadOnly, nil)
	installer := &fakeInstaller{err: stderrors.New("failed to install packages from /opt/offline-packages/example: exit status 1")}
	p := newProvisioner(t, opitest.NewExampleSystem(), mounter, installer)

	result, err := p.Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "exit status 1")

	assert.Equal(t, []mount.Mode{mount.ReadWrite, mount.ReadOnly}, *remounts)
	require.NotNil(t, result)
	assert.Equal(t, mount.ReadOnly, result.FinalMode)
}

func Test_Provisioner_Run_NoRemount(t *testing.T) {
	tests := []struct {
		name    string
		sys     *system.LocalSystem
		detect  error
		bundle  []string
		wantErr any
	}{
		{
			name:    "missing distribution ID",
			detect:  &errors.MissingDistributionIDError{Path: "/etc/os-release"},
			wantErr: new(*errors.MissingDistributionIDError),
		},
		{
			name:    "missing bundle",
			sys:     opitest.NewExampleSystem(),
			wantErr: new(*errors.BundleNotFoundError),
		},
		{
			name:    "missing bootstrap archive",
			sys:     opitest.NewExampleSystem(),
			bundle:  []string{"simplejson-3.19.2.tar.gz"},
			wantErr: new(*errors.BootstrapArchiveNotFoundError),
		},
		{
			name:    "system archives without package manager",
			sys:     opitest.NewExampleSystem(),
			bundle:  []string{"pip-24.0-py3-none-any.whl", "system/libffi8_3.4.4-1_armhf.deb"},
			wantErr: new(*errors.UnsupportedOSError),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := opitest.UseMemFs(t)
			if tt.bundle != nil {
				opitest.WriteBundle(t, fs, bundleRoot, "example", tt.bundle...)
			}

			// No expectations: any Mode or Remount call fails the test.
			mounter := mount_mock.NewMockMounter(t)
			installer := &fakeInstaller{}
			p := newProvisioner(t, tt.sys, mounter, installer)
			if tt.detect != nil {
				p.Detect = func(string) (*system.LocalSystem, error) {
					return nil, tt.detect
				}
			}

			result, err := p.Run(context.Background())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorAs(t, err, tt.wantErr)
			assert.Zero(t, installer.calls)
		})
	}
}

func Test_Provisioner_Run_SystemArchives(t *testing.T) {
	fs := opitest.UseMemFs(t)
	opitest.WriteBundle(t, fs, bundleRoot, "debian",
		"pip-24.0-py3-none-any.whl",
		"system/libffi8_3.4.4-1_armhf.deb",
		"system/libffi-3.4.4-1.el9.x86_64.rpm",
	)

	pm := syspkg_mock.NewMockSystemPackageManager(t)
	pm.EXPECT().GetPackageExtension().Return(".deb")
	pm.EXPECT().GetBin().Return("apt-get").Maybe()
	pm.EXPECT().InstallLocal(mock.Anything, []string{"/opt/offline-packages/debian/system/libffi8_3.4.4-1_armhf.deb"}).Return(nil)

	sys := opitest.NewDebianSystem()
	sys.PackageManager = pm

	mounter, remounts := statefulMounter(t, mount.ReadOnly, nil)
	installer := &fakeInstaller{}
	p := newProvisioner(t, sys, mounter, installer)

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, installer.calls)
	assert.Equal(t, []string{"/opt/offline-packages/debian/system/libffi8_3.4.4-1_armhf.deb"}, result.SystemArchives)
	assert.Equal(t, []mount.Mode{mount.ReadWrite, mount.ReadOnly}, *remounts)
}

func Test_Provisioner_Run_SystemArchiveFailure(t *testing.T) {
	fs := opitest.UseMemFs(t)
	opitest.WriteBundle(t, fs, bundleRoot, "debian", "pip-24.0-py3-none-any.whl", "system/libffi8_3.4.4-1_armhf.deb")

	pm := syspkg_mock.NewMockSystemPackageManager(t)
	pm.EXPECT().GetPackageExtension().Return(".deb")
	pm.EXPECT().InstallLocal(mock.Anything, mock.Anything).Return(stderrors.New("dpkg failed"))

	sys := opitest.NewDebianSystem()
	sys.PackageManager = pm

	mounter, remounts := statefulMounter(t, mount.ReadOnly, nil)
	installer := &fakeInstaller{}
	p := newProvisioner(t, sys, mounter, installer)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "dpkg failed")
	assert.Zero(t, installer.calls)
	assert.Equal(t, []mount.Mode{mount.ReadWrite, mount.ReadOnly}, *remounts)
}

func Test_Provisioner_Run_AlreadyWritable(t *testing.T) {
	fs := opitest.UseMemFs(t)
	opitest.WriteBundle(t, fs, bundleRoot, "example", "pip-24.0-py3-none-any.whl")

	mounter, remounts := statefulMounter(t, mount.ReadWrite, nil)
	installer := &fakeInstaller{}
	p := newProvisioner(t, opitest.NewExampleSystem(), mounter, installer)

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, *remounts)
	assert.Equal(t, mount.ReadWrite, result.FinalMode)
}

func Test_Provisioner_Run_RemountFailure(t *testing.T) {
	fs := opitest.UseMemFs(t)
	opitest.WriteBundle(t, fs, bundleRoot, "example", "pip-24.0-py3-none-any.whl")

	mounter, _ := statefulMounter(t, mount.ReadOnly, map[mount.Mode]error{
		mount.ReadWrite: stderrors.New("operation not permitted"),
	})
	installer := &fakeInstaller{}
	p := newProvisioner(t, opitest.NewExampleSystem(), mounter, installer)

	result, err := p.Run(context.Background())
	require.Error(t, err)
	var remountErr *errors.RemountError
	assert.ErrorAs(t, err, &remountErr)
	assert.Zero(t, installer.calls)
	assert.Equal(t, mount.ReadOnly, result.FinalMode)
}

func Test_Provisioner_Run_RestoreFailure(t *testing.T) {
	fs := opitest.UseMemFs(t)
	opitest.WriteBundle(t, fs, bundleRoot, "example", "pip-24.0-py3-none-any.whl")

	mounter, remounts := statefulMounter(t, mount.ReadOnly, map[mount.Mode]error{
		mount.ReadOnly: stderrors.New("device busy"),
	})
	installer := &fakeInstaller{}
	p := newProvisioner(t, opitest.NewExampleSystem(), mounter, installer)

	result, err := p.Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to restore / to read-only: device busy")
	var mismatch *errors.ModeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "read-write", mismatch.Got)
	assert.Equal(t, mount.ReadWrite, result.FinalMode)
	assert.Equal(t, []mount.Mode{mount.ReadWrite, mount.ReadOnly}, *remounts)
}

func Test_Provisioner_Run_DryRun(t *testing.T) {
	fs := opitest.UseMemFs(t)
	opitest.WriteBundle(t, fs, bundleRoot, "example", "pip-24.0-py3-none-any.whl", "simplejson-3.19.2.tar.gz")

	mounter, remounts := statefulMounter(t, mount.ReadOnly, nil)
	installer := &fakeInstaller{}
	p := newProvisioner(t, opitest.NewExampleSystem(), mounter, installer)
	p.Options.DryRun = true

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Zero(t, installer.calls)
	assert.Empty(t, *remounts)
	assert.Equal(t, mount.ReadOnly, result.FinalMode)
}

func Test_Provisioner_Run_Cancelled(t *testing.T) {
	fs := opitest.UseMemFs(t)
	opitest.WriteBundle(t, fs, bundleRoot, "example", "pip-24.0-py3-none-any.whl")

	mounter, remounts := statefulMounter(t, mount.ReadOnly, nil)
	installer := &fakeInstaller{}
	p := newProvisioner(t, opitest.NewExampleSystem(), mounter, installer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *remounts)
	assert.Zero(t, installer.calls)
}

func Test_Provisioner_Run_OSRelease(t *testing.T) {
	fs := opitest.UseMemFs(t)
	opitest.WriteOSRelease(t, fs, config.DefaultOSRelease, "NAME=\"Example OS\"\nID=example\nVERSION_ID=\"1.0\"\n")
	opitest.WriteBundle(t, fs, bundleRoot, "example", "pip-24.0-py3-none-any.whl", "simplejson-3.19.2.tar.gz")

	mounter, remounts := statefulMounter(t, mount.ReadOnly, nil)
	installer := &fakeInstaller{}
	p := New(config.Default(), mounter, Options{})
	p.NewInstaller = func(pythonPath string, b *bundle.Bundle) (Installer, error) {
		return installer, nil
	}

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "example", result.Distribution)
	assert.Equal(t, "/opt/offline-packages/example/pip-24.0-py3-none-any.whl", result.Bundle.BootstrapPath)
	assert.Equal(t, []mount.Mode{mount.ReadWrite, mount.ReadOnly}, *remounts)
}
