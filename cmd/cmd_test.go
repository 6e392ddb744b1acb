package cmd

import (
	"context"
	"opi/config"
	"opi/errors"
	command_mock "opi/mocks/opi/system/command"
	mount_mock "opi/mocks/opi/system/mount"
	"opi/opitest"
	"opi/system/command"
	"opi/system/mount"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const exampleOSRelease = "NAME=\"Example OS\"\nID=example\nVERSION_ID=\"1.0\"\n"

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	for _, c := range app.Commands {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("command %s not found", name)
	return nil
}

func Test_Cli_Commands(t *testing.T) {
	app := Cli()

	for _, name := range []string{"provision", "detect", "bundle", "mount", "verify"} {
		assert.NotNil(t, findCommand(t, app, name))
	}
	assert.Equal(t, "list", findCommand(t, app, "bundle").Subcommands[0].Name)
	assert.Equal(t, "status", findCommand(t, app, "mount").Subcommands[0].Name)
}

func Test_loadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		args    []string
		want    func(c *config.Config)
		wantErr string
	}{
		{
			name: "defaults",
			args: []string{"opi", "provision"},
			want: func(c *config.Config) {},
		},
		{
			name: "file, environment and flags",
			file: "bundle_root: /srv/bundles\npython: /usr/local/bin/python3\nmountpoint: /data\n",
			env:  map[string]string{"OPI_PYTHON": "/opt/python/bin/python3"},
			args: []string{"opi", "-c", "/etc/opi/config.yaml", "provision", "--mountpoint", "/sysroot", "--skip-remount"},
			want: func(c *config.Config) {
				c.BundleRoot = "/srv/bundles"
				c.Python = "/opt/python/bin/python3"
				c.Mountpoint = "/sysroot"
				c.SkipRemount = true
			},
		},
		{
			name:    "missing explicit config file",
			args:    []string{"opi", "-c", "/etc/opi/missing.yaml", "provision"},
			wantErr: "failed to read configuration file /etc/opi/missing.yaml",
		},
		{
			name:    "relative bundle root",
			args:    []string{"opi", "provision", "--bundle-root", "bundles"},
			wantErr: "bundle_root must be an absolute path",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := opitest.UseMemFs(t)
			if tt.file != "" {
				require.NoError(t, afero.WriteFile(fs, config.DefaultPath, []byte(tt.file), 0644))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			app := Cli()
			var got *config.Config
			findCommand(t, app, "provision").Action = func(cCtx *cli.Context) error {
				var err error
				got, err = loadConfig(cCtx)
				return err
			}

			err := app.Run(tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			want := config.Default()
			tt.want(want)
			assert.Equal(t, want, got)
		})
	}
}

func Test_mounterFor(t *testing.T) {
	cfg := config.Default()
	assert.IsType(t, &mount.SyscallMounter{}, mounterFor(cfg))

	cfg.SkipRemount = true
	assert.Equal(t, mount.Unmanaged{}, mounterFor(cfg))
}

func Test_bundleList(t *testing.T) {
	fs := opitest.UseMemFs(t)
	opitest.WriteBundle(t, fs, config.DefaultBundleRoot, "example", "pip-24.0-py3-none-any.whl", "simplejson-3.19.2.tar.gz")

	err := Cli().Run([]string{"opi", "bundle", "list", "--distribution", "example"})
	assert.NoError(t, err)

	err = Cli().Run([]string{"opi", "bundle", "list", "--distribution", "other"})
	var notFound *errors.BundleNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func Test_mountStatus(t *testing.T) {
	opitest.UseMemFs(t)

	oldMounter := systemMounter
	t.Cleanup(func() {
		systemMounter = oldMounter
	})
	m := mount_mock.NewMockMounter(t)
	m.EXPECT().Mode("/sysroot").Return(mount.ReadOnly, nil)
	systemMounter = func() mount.Mounter {
		return m
	}

	err := Cli().Run([]string{"opi", "mount", "status", "--mountpoint", "/sysroot"})
	assert.NoError(t, err)
}

func Test_provision_DryRun(t *testing.T) {
	fs := opitest.UseMemFs(t)
	opitest.WriteOSRelease(t, fs, config.DefaultOSRelease, exampleOSRelease)
	opitest.WriteBundle(t, fs, config.DefaultBundleRoot, "example", "pip-24.0-py3-none-any.whl", "simplejson-3.19.2.tar.gz")

	oldMounter := systemMounter
	t.Cleanup(func() {
		systemMounter = oldMounter
	})
	// Dry runs only read the mount mode.
	m := mount_mock.NewMockMounter(t)
	m.EXPECT().Mode("/").Return(mount.ReadOnly, nil)
	systemMounter = func() mount.Mounter {
		return m
	}

	err := Cli().RunContext(context.Background(), []string{"opi", "provision", "--dry-run"})
	assert.NoError(t, err)
}

func Test_verify(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		missing []string
	}{
		{
			name:   "all installed",
			output: `[{"name": "pip", "version": "24.0"}, {"name": "simplejson", "version": "3.19.2"}]`,
		},
		{
			name:    "missing package",
			output:  `[{"name": "pip", "version": "24.0"}]`,
			missing: []string{"simplejson"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := opitest.UseMemFs(t)
			opitest.WriteOSRelease(t, fs, config.DefaultOSRelease, exampleOSRelease)
			opitest.WriteBundle(t, fs, config.DefaultBundleRoot, "example", "pip-24.0-py3-none-any.whl", "simplejson-3.19.2.tar.gz")
			opitest.WriteExecutable(t, fs, config.DefaultPython)

			oldNSC := command.NewShellCommand
			t.Cleanup(func() {
				command.NewShellCommand = oldNSC
			})
			command.NewShellCommand = func(ctx context.Context, name string, args []string, envVars []string, inheritEnvVars bool) command.ShellCommandRunner {
				opitest.CommonShellCalls["pipList"].Equal(t, name, args, envVars, inheritEnvVars)

				mockShellCommand := command_mock.NewMockShellCommandRunner(t)
				mockShellCommand.EXPECT().Output().Return([]byte(tt.output), nil)
				return mockShellCommand
			}

			err := Cli().RunContext(context.Background(), []string{"opi", "verify"})
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			var missingErr *errors.MissingPackagesError
			require.ErrorAs(t, err, &missingErr)
			assert.Equal(t, tt.missing, missingErr.Packages)
		})
	}
}

func Test_detect(t *testing.T) {
	fs := opitest.UseMemFs(t)
	opitest.WriteOSRelease(t, fs, config.DefaultOSRelease, exampleOSRelease)

	// A missing bundle is reported, not an error.
	err := Cli().Run([]string{"opi", "detect"})
	assert.NoError(t, err)

	opitest.WriteBundle(t, fs, config.DefaultBundleRoot, "example", "pip-24.0-py3-none-any.whl")
	err = Cli().Run([]string{"opi", "detect"})
	assert.NoError(t, err)

	opitest.WriteOSRelease(t, fs, config.DefaultOSRelease, "NAME=\"Example OS\"\n")
	err = Cli().Run([]string{"opi", "detect"})
	var missingID *errors.MissingDistributionIDError
	assert.ErrorAs(t, err, &missingID)
}
