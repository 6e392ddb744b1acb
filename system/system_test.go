package system

import (
	"fmt"
	"opi/errors"
	"opi/system/file"
	"os/user"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zcalusic/sysinfo"
)

type MockOSInfo struct {
	Architecture string
}

type MockSysInfo struct {
	OS MockOSInfo
}

func TestGetLocalSystem(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tests := []struct {
		name        string
		osRelease   string
		sysInfo     MockSysInfo
		wantVendor  string
		wantVersion string
		wantPmBin   string
		wantErr     bool
		wantErrType any
	}{
		{
			name:        "Test Ubuntu",
			osRelease:   "ID=ubuntu\nID_LIKE=debian\nVERSION_ID=\"22.04\"\n",
			sysInfo:     MockSysInfo{OS: MockOSInfo{Architecture: "amd64"}},
			wantVendor:  "ubuntu",
			wantVersion: "22.04",
			wantPmBin:   "apt-get",
		},
		{
			name:        "Test Rocky",
			osRelease:   "ID=\"rocky\"\nID_LIKE=\"rhel centos fedora\"\nVERSION_ID=\"9.3\"\n",
			sysInfo:     MockSysInfo{OS: MockOSInfo{Architecture: "amd64"}},
			wantVendor:  "rocky",
			wantVersion: "9.3",
			wantPmBin:   "dnf",
		},
		{
			name:       "Test derivative via ID_LIKE",
			osRelease:  "ID=openmotics\nID_LIKE=debian\n",
			sysInfo:    MockSysInfo{OS: MockOSInfo{Architecture: "arm"}},
			wantVendor: "openmotics",
			wantPmBin:  "apt-get",
		},
		{
			name:       "Test unknown family",
			osRelease:  "ID=example\n",
			wantVendor: "example",
			wantPmBin:  "",
		},
		{
			name:        "Test missing ID",
			osRelease:   "NAME=\"Nameless\"\n",
			wantErr:     true,
			wantErrType: &errors.MissingDistributionIDError{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldSysInfo, oldFs := sysInfo, file.AppFs
			t.Cleanup(func() {
				sysInfo = oldSysInfo
				file.AppFs = oldFs
			})
			sysInfo = func() sysinfo.SysInfo {
				return sysinfo.SysInfo{
					OS: sysinfo.OS{
						Architecture: tt.sysInfo.OS.Architecture,
					},
				}
			}
			file.AppFs = afero.NewMemMapFs()
			require.NoError(afero.WriteFile(file.AppFs, "/etc/os-release", []byte(tt.osRelease), 0644))

			ls, err := GetLocalSystem("/etc/os-release")

			require.Equal(tt.wantErr, err != nil, "GetLocalSystem() error = %v, wantErr %v", err, tt.wantErr)
			if err != nil {
				assert.IsType(tt.wantErrType, err)
				return
			}
			assert.Equal(tt.wantVendor, ls.Vendor)
			assert.Equal(tt.wantVersion, ls.Version)
			assert.Equal(tt.sysInfo.OS.Architecture, ls.Arch)
			if tt.wantPmBin == "" {
				assert.Nil(ls.PackageManager)
				_, err := ls.RequirePackageManager()
				assert.ErrorContains(err, "unsupported os "+tt.wantVendor)
			} else {
				assert.Equal(tt.wantPmBin, ls.PackageManager.GetBin())
			}
		})
	}
}

func TestGetLocalSystem_MissingFile(t *testing.T) {
	old := file.AppFs
	file.AppFs = afero.NewMemMapFs()
	t.Cleanup(func() {
		file.AppFs = old
	})

	_, err := GetLocalSystem("/etc/os-release")
	assert.ErrorContains(t, err, "failed to read OS descriptor /etc/os-release")
}

func TestLocalSystem_String(t *testing.T) {
	assert.Equal(t, "debian 12", (&LocalSystem{Vendor: "debian", Version: "12"}).String())
	assert.Equal(t, "arch", (&LocalSystem{Vendor: "arch"}).String())
}

type MockUser struct {
	Uid string
}

func TestRequireSudo(t *testing.T) {
	tests := []struct {
		name        string
		currentUser MockUser
		userErr     error
		wantErr     bool
	}{
		{
			name: "Test as user",
			currentUser: MockUser{
				Uid: "1000",
			},
			wantErr: true,
		},
		{
			name: "Test as root",
			currentUser: MockUser{
				Uid: "0",
			},
			wantErr: false,
		},
		{
			name:    "Test lookup failure",
			userErr: fmt.Errorf("no such user"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := currentUser
			defer func() {
				currentUser = old
			}()
			currentUser = func() (*user.User, error) {
				if tt.userErr != nil {
					return nil, tt.userErr
				}
				return &user.User{
					Uid: tt.currentUser.Uid,
				}, nil
			}
			err := RequireSudo()
			if (err != nil) != tt.wantErr {
				t.Errorf("RequireSudo() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
