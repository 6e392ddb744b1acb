// Package bundle locates the offline package set shipped for a distribution.
//
// A bundle root holds one directory per os-release ID:
//
//	<root>/<id>/pip-<version>-py3-none-any.whl   bootstrap archive
//	<root>/<id>/*.whl, *.tar.gz, *.tgz, *.zip    package archives
//	<root>/<id>/system/*.deb, *.rpm              optional system packages
package bundle

import (
	"fmt"
	"log/slog"
	"opi/errors"
	"opi/system/file"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/hashicorp/go-version"
)

const systemDir = "system"

var archivePattern = glob.MustCompile("*.{whl,tar.gz,tgz,zip}")
var eggPattern = glob.MustCompile("*.egg")
var systemArchivePattern = glob.MustCompile("*.{deb,rpm}")

var sdistExtensions = []string{".tar.gz", ".tgz", ".zip"}

type Options struct {
	BootstrapPattern string
}

type Bundle struct {
	Root           string
	Distribution   string
	Dir            string
	BootstrapPath  string
	Archives       []string
	SystemArchives []string
}

func Locate(root, distribution string, opts Options) (*Bundle, error) {
	if distribution == "" {
		return nil, &errors.MissingDistributionIDError{Path: root}
	}

	bootstrapGlob, err := glob.Compile(opts.BootstrapPattern)
	if err != nil {
		return nil, fmt.Errorf(errors.BundlePatternErrorTpl, opts.BootstrapPattern, err)
	}

	dir := filepath.Join(root, distribution)
	slog.Debug("Looking for bundle in " + dir)

	isDir, err := file.IsDir(dir)
	if err != nil {
		return nil, fmt.Errorf(errors.PathCheckErrorTpl, dir, err)
	}
	if !isDir {
		return nil, &errors.BundleNotFoundError{Distribution: distribution, Path: dir}
	}

	names, err := file.ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf(errors.BundleScanErrorTpl, dir, err)
	}

	b := &Bundle{
		Root:         root,
		Distribution: distribution,
		Dir:          dir,
	}

	var bootstrap string
	var eggs []string
	latest := map[string]string{}
	for _, name := range names {
		if bootstrapGlob.Match(name) && (bootstrap == "" || newerArchive(name, bootstrap)) {
			bootstrap = name
		}

		switch {
		case eggPattern.Match(name):
			eggs = append(eggs, name)
		case archivePattern.Match(name):
			project, _ := ParseArchiveName(name)
			if project == "" {
				project = name
			}
			current, ok := latest[project]
			if !ok {
				latest[project] = name
				continue
			}
			keep, drop := current, name
			if newerArchive(name, current) {
				keep, drop = name, current
			}
			slog.Warn(fmt.Sprintf("Bundle %s has several archives of %s, ignoring %s", dir, project, drop))
			latest[project] = keep
		}
	}
	if bootstrap == "" {
		return nil, &errors.BootstrapArchiveNotFoundError{Pattern: opts.BootstrapPattern, Dir: dir}
	}
	b.BootstrapPath = filepath.Join(dir, bootstrap)

	if len(eggs) > 0 {
		slog.Warn(fmt.Sprintf("Ignoring %d egg archive(s) in %s, pip cannot install eggs: %s", len(eggs), dir, strings.Join(eggs, ", ")))
	}

	// The packaging tool reinstalls itself from the bootstrap archive only.
	if project, _ := ParseArchiveName(bootstrap); project != "" && archivePattern.Match(bootstrap) {
		latest[project] = bootstrap
	}
	for _, name := range latest {
		b.Archives = append(b.Archives, filepath.Join(dir, name))
	}
	sort.Strings(b.Archives)

	b.SystemArchives, err = scanSystemArchives(filepath.Join(dir, systemDir))
	if err != nil {
		return nil, err
	}

	slog.Debug(fmt.Sprintf("Bundle %s: bootstrap %s, %d archive(s), %d system archive(s)",
		dir, filepath.Base(b.BootstrapPath), len(b.Archives), len(b.SystemArchives)))

	return b, nil
}

func scanSystemArchives(dir string) ([]string, error) {
	isDir, err := file.IsDir(dir)
	if err != nil {
		return nil, fmt.Errorf(errors.PathCheckErrorTpl, dir, err)
	}
	if !isDir {
		return nil, nil
	}

	names, err := file.ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf(errors.BundleScanErrorTpl, dir, err)
	}

	var archives []string
	for _, name := range names {
		if systemArchivePattern.Match(name) {
			archives = append(archives, filepath.Join(dir, name))
		}
	}
	return archives, nil
}

func (b *Bundle) Empty() bool {
	return len(b.Archives) == 0
}

// SystemArchivesFor returns the system archives with the given extension,
// e.g. ".deb".
func (b *Bundle) SystemArchivesFor(ext string) []string {
	var out []string
	for _, a := range b.SystemArchives {
		if strings.HasSuffix(a, ext) {
			out = append(out, a)
		}
	}
	return out
}

// PackageNames returns the distribution names of the bundled archives,
// normalised the way pip reports them.
func (b *Bundle) PackageNames() []string {
	var names []string
	for _, a := range b.Archives {
		if n := ArchivePackageName(filepath.Base(a)); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// ArchivePackageName returns the normalised project name of a wheel or
// sdist file name, or "" when name is neither.
func ArchivePackageName(name string) string {
	project, _ := ParseArchiveName(name)
	return project
}

// ParseArchiveName splits a wheel or sdist file name into its project name,
// normalised per PEP 503, and its version.
func ParseArchiveName(name string) (project, ver string) {
	if base, ok := strings.CutSuffix(name, ".whl"); ok {
		parts := strings.Split(base, "-")
		if len(parts) < 2 || parts[0] == "" {
			return "", ""
		}
		return NormalizeName(parts[0]), parts[1]
	}

	for _, ext := range sdistExtensions {
		base, ok := strings.CutSuffix(name, ext)
		if !ok {
			continue
		}
		i := strings.LastIndex(base, "-")
		if i <= 0 {
			return "", ""
		}
		return NormalizeName(base[:i]), base[i+1:]
	}

	return "", ""
}

// newerArchive reports whether archive a carries a higher version than b.
// Names whose versions do not parse are compared lexically.
func newerArchive(a, b string) bool {
	_, av := ParseArchiveName(a)
	_, bv := ParseArchiveName(b)

	va, errA := version.NewVersion(av)
	vb, errB := version.NewVersion(bv)
	if errA != nil || errB != nil || va.Equal(vb) {
		return a > b
	}
	return va.GreaterThan(vb)
}

var nameSeparators = regexp.MustCompile(`[-_.]+`)

func NormalizeName(name string) string {
	return nameSeparators.ReplaceAllString(strings.ToLower(name), "-")
}
