// Package osrelease reads the operating system identification file
// described by os-release(5).
package osrelease

import (
	"bufio"
	"fmt"
	"io"
	"opi/errors"
	"opi/system/file"
	"strings"
)

const DefaultPath = "/etc/os-release"

type Release struct {
	ID         string
	IDLike     []string
	VersionID  string
	Name       string
	PrettyName string
	fields     map[string]string
}

// Get returns the raw value of key, or "" if it is not set.
func (r *Release) Get(key string) string {
	return r.fields[key]
}

func Read(path string) (*Release, error) {
	fh, err := file.Open(path)
	if err != nil {
		return nil, fmt.Errorf(errors.OSReleaseReadErrorTpl, path, err)
	}
	defer fh.Close()

	r, err := Parse(fh)
	if err != nil {
		return nil, fmt.Errorf(errors.OSReleaseReadErrorTpl, path, err)
	}
	return r, nil
}

func Parse(reader io.Reader) (*Release, error) {
	fields := map[string]string{}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			continue
		}
		fields[key] = unquote(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	r := &Release{
		ID:         fields["ID"],
		VersionID:  fields["VERSION_ID"],
		Name:       fields["NAME"],
		PrettyName: fields["PRETTY_NAME"],
		fields:     fields,
	}
	if like := fields["ID_LIKE"]; like != "" {
		r.IDLike = strings.Fields(like)
	}

	return r, nil
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}

	switch q := value[0]; {
	case q == '\'' && value[len(value)-1] == '\'':
		return value[1 : len(value)-1]
	case q == '"' && value[len(value)-1] == '"':
		inner := value[1 : len(value)-1]
		var b strings.Builder
		for i := 0; i < len(inner); i++ {
			if inner[i] == '\\' && i+1 < len(inner) && strings.IndexByte("\"\\$`", inner[i+1]) >= 0 {
				i++
			}
			b.WriteByte(inner[i])
		}
		return b.String()
	}

	return value
}
