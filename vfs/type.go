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
	netURL "net/url"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type TypeOption func(*typeConfig)

// WithVirtualBackend enables the virtual filesystem branch of the VFS type.
// Without it, URLs are always read from the real filesystem.
func WithVirtualBackend(b VirtualBackend) TypeOption {
	return func(c *typeConfig) {
		c.virtual = b
	}
}

// WithHostFs sets the filesystem deployments are resolved against. The
// default is the operating system filesystem.
func WithHostFs(fs afero.Fs) TypeOption {
	return func(c *typeConfig) {
		c.fs = fs
	}
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(log *zap.SugaredLogger) TypeOption {
	return func(c *typeConfig) {
		c.log = log
	}
}

// WithDirOptions sets the options passed to every Dir created by the type.
func WithDirOptions(opts ...DirOption) TypeOption {
	return func(c *typeConfig) {
		c.dirOpts = append(c.dirOpts, opts...)
	}
}

type typeConfig struct {
	virtual VirtualBackend
	fs      afero.Fs
	log     *zap.SugaredLogger
	dirOpts []DirOption
}

func newTypeConfig(opts []TypeOption) typeConfig {
	var c typeConfig
	for _, opt := range opts {
		opt(&c)
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}
	c.dirOpts = append([]DirOption{WithDirLogger(c.log)}, c.dirOpts...)
	return c
}

// identify resolves the deployment backing the URL.
func (c typeConfig) identify(url *netURL.URL) (string, error) {
	path, ok, err := IdentifyDeployment(c.fs, url)
	if err != nil {
		return "", errMalformedLocatorFn(url.String(), err)
	}
	c.log.Debugw("Scanning inside", "url", url.String(), "path", path, "found", ok)
	if !ok {
		return "", errDeploymentNotFoundFn(url.String())
	}
	return path, nil
}

// open creates a SystemDir for a directory and a ZipDir for anything else.
func (c typeConfig) open(url *netURL.URL, path string) (Dir, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errMalformedLocatorFn(url.String(), err)
	}
	info, err := c.fs.Stat(abs)
	if err != nil {
		return nil, errBackendReadFn(url.String(), err)
	}
	if info.IsDir() {
		c.log.Debugw("Listing directory", "url", url.String(), "path", abs)
		return NewSystemDir(c.fs, abs, c.dirOpts...), nil
	}
	f, err := c.fs.Open(abs)
	if err != nil {
		return nil, errBackendReadFn(url.String(), err)
	}
	d, err := NewZipDir(f, c.dirOpts...)
	if err != nil {
		_ = f.Close()
		return nil, errBackendReadFn(url.String(), err)
	}
	c.log.Debugw("Listing archive", "url", url.String(), "path", abs)
	return d, nil
}
