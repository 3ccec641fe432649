// Copyright (C) 2021-2025 Chronicle Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package vfs

import (
	"errors"
	"fmt"
	netURL "net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	// filePrefix is stripped from locator paths that embed a file URL,
	// e.g. "vfszip:file:/app.jar".
	filePrefix = "file:"

	// nestedSeparator marks the start of a path inside an archive.
	nestedSeparator = '!'
)

// IdentifyDeployment returns the real file or directory that backs the URL.
//
// The "file:" prefix and everything from the first '!' on are removed from
// the URL path, so only the outermost container remains. The result is then
// passed to FindExisting. The returned bool reports whether the path exists;
// a false value must be treated as "not found".
func IdentifyDeployment(fs afero.Fs, url *netURL.URL) (string, bool, error) {
	p, err := deploymentPath(url)
	if err != nil {
		return "", false, err
	}
	path, ok := FindExisting(fs, p)
	return path, ok, nil
}

// FindExisting walks up from path until it finds an entry that exists.
//
// The path is truncated at its last separator after every miss. The walk
// stops when a candidate exists or when the last separator is the first
// character, so the filesystem root is never tested unless it is the
// input itself. It returns the last tested path and whether it exists.
// An empty path never exists.
func FindExisting(fs afero.Fs, path string) (string, bool) {
	if path == "" {
		return "", false
	}
	for {
		if exists(fs, path) {
			return path, true
		}
		i := strings.LastIndexByte(path, filepath.Separator)
		if i <= 0 {
			return path, false
		}
		path = path[:i]
	}
}

// deploymentPath extracts the container path from the URL.
func deploymentPath(url *netURL.URL) (string, error) {
	if url == nil {
		return "", errResolverNilURL
	}
	p, err := locatorPath(url)
	if err != nil {
		return "", errResolverFn(err)
	}
	p = strings.TrimPrefix(p, filePrefix)
	if i := strings.IndexByte(p, nestedSeparator); i != -1 {
		p = p[:i]
	}
	if strings.IndexByte(p, 0) != -1 {
		return "", errResolverInvalidPathFn(p)
	}
	return filepath.FromSlash(p), nil
}

// locatorPath returns the path component of the URL. Opaque URLs, such as
// "vfszip:file:/app.jar", report their unescaped opaque part instead.
func locatorPath(url *netURL.URL) (string, error) {
	if url.Opaque != "" {
		return netURL.PathUnescape(url.Opaque)
	}
	return url.Path, nil
}

func exists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

var errResolverNilURL = errors.New("vfs.resolver: nil URL")

func errResolverFn(err error) error {
	return fmt.Errorf("vfs.resolver: %w", err)
}

func errResolverInvalidPathFn(path string) error {
	return fmt.Errorf("vfs.resolver: invalid path: %q", path)
}
