package file

import (
	"fmt"
	"log/slog"
	"opi/errors"
	"os"
	"sort"

	"github.com/spf13/afero"
)

var AppFs = afero.NewOsFs()

func IsPathExist(path string) (bool, error) {
	return afero.Exists(AppFs, path)
}

func IsDir(path string) (bool, error) {
	exists, err := IsPathExist(path)
	if err != nil || !exists {
		return false, err
	}
	return afero.IsDir(AppFs, path)
}

func IsFile(path string) (bool, error) {
	exists, err := IsPathExist(path)
	if err != nil || !exists {
		return false, err
	}
	i, err := Stat(path)
	if err != nil {
		return false, err
	}
	return i.Mode().IsRegular(), nil
}

func Stat(path string) (os.FileInfo, error) {
	i, err := AppFs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf(errors.FileStatErrorTpl, path, err)
	}
	return i, nil
}

func Open(path string) (afero.File, error) {
	fh, err := AppFs.Open(path)
	if err != nil {
		return nil, fmt.Errorf(errors.FileOpenErrorTpl, path, err)
	}
	return fh, nil
}

// ListFiles returns the names of the regular files directly inside dir,
// sorted lexically. Subdirectories are skipped.
func ListFiles(dir string) ([]string, error) {
	slog.Debug("Listing files in " + dir)

	entries, err := afero.ReadDir(AppFs, dir)
	if err != nil {
		return nil, fmt.Errorf(errors.FileReadErrorTpl, dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.Mode().IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	return names, nil
}
