package opitest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type FakeShellCallError struct {
	OnCall int
	Err    error
}

type ShellCall struct {
	Binary         string
	ContainsArgs   []string
	EnvVars        []string
	InheritEnvVars bool
}

func (s *ShellCall) Equal(t *testing.T, name string, args []string, envVars []string, inheritEnvVars bool) {
	assert := assert.New(t)
	assert.Equal(s.Binary, name)
	for _, arg := range s.ContainsArgs {
		assert.Contains(args, arg)
	}
	for _, v := range s.EnvVars {
		assert.Contains(envVars, v)
	}
	assert.Equal(s.InheritEnvVars, inheritEnvVars)
}

var CommonShellCalls = map[string]*ShellCall{
	"pipInstall": {
		Binary:         "/usr/bin/python3",
		ContainsArgs:   []string{"install", "--no-index", "--find-links", "--no-cache-dir"},
		EnvVars:        nil,
		InheritEnvVars: true,
	},
	"pipList": {
		Binary:         "/usr/bin/python3",
		ContainsArgs:   []string{"list", "--format=json"},
		EnvVars:        nil,
		InheritEnvVars: true,
	},
	"aptInstallLocal": {
		Binary:         "apt-get",
		ContainsArgs:   []string{"install", "-y", "--no-download"},
		EnvVars:        []string{"DEBIAN_FRONTEND=noninteractive"},
		InheritEnvVars: true,
	},
	"dnfInstallLocal": {
		Binary:         "dnf",
		ContainsArgs:   []string{"install", "-y", "--disablerepo=*"},
		EnvVars:        nil,
		InheritEnvVars: true,
	},
}
