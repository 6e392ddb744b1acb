package opitest

import (
	"opi/system"
	"opi/system/syspkg"
)

func NewDebianSystem() *system.LocalSystem {
	return &system.LocalSystem{
		Vendor:         "debian",
		Version:        "12",
		Arch:           "arm",
		PackageManager: syspkg.NewAptManager(),
	}
}

func NewRockySystem() *system.LocalSystem {
	return &system.LocalSystem{
		Vendor:         "rocky",
		Version:        "9.3",
		IDLike:         []string{"rhel", "centos", "fedora"},
		Arch:           "amd64",
		PackageManager: syspkg.NewDnfManager(),
	}
}

// NewExampleSystem is a distribution with no known system package manager.
func NewExampleSystem() *system.LocalSystem {
	return &system.LocalSystem{
		Vendor:  "example",
		Version: "1.0",
		Arch:    "arm",
	}
}
