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
	"io"
	"iter"
	netURL "net/url"
	"sync"
	"sync/atomic"

	"github.com/spf13/afero"
)

// VirtualDir lists content served by a host virtual filesystem.
type VirtualDir struct {
	url    *netURL.URL
	fs     afero.Fs
	root   string
	closer io.Closer
	cfg    dirConfig

	once     sync.Once
	closed   atomic.Bool
	closeErr error
}

// NewVirtualDir creates a Dir for the URL over the virtual filesystem,
// listing everything below root. The filesystem is not owned by the
// VirtualDir and stays open after Close.
func NewVirtualDir(url *netURL.URL, fs afero.Fs, root string, opts ...DirOption) *VirtualDir {
	return &VirtualDir{url: url, fs: fs, root: root, cfg: newDirConfig(opts)}
}

// newProbedDir creates a VirtualDir from a probe result. The VirtualDir owns
// the probe's Closer, if any.
func newProbedDir(url *netURL.URL, p Probe, opts ...DirOption) *VirtualDir {
	d := NewVirtualDir(url, p.Fs, p.Path, opts...)
	d.closer = p.Closer
	return d
}

// Path implements the Dir interface. It returns the URL the Dir was created
// from.
func (d *VirtualDir) Path() string {
	return d.url.String()
}

// Files implements the Dir interface.
func (d *VirtualDir) Files() iter.Seq[File] {
	return walkFiles(d.fs, d.root, d.cfg, &d.closed)
}

// Close implements the Dir interface.
func (d *VirtualDir) Close() error {
	d.once.Do(func() {
		d.closed.Store(true)
		if d.closer != nil {
			d.closeErr = d.closer.Close()
		}
	})
	return d.closeErr
}
