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
	"io"
	"io/fs"
	netURL "net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ProbeKind tells whether a virtual backend serves the content of a URL.
type ProbeKind int

const (
	ProbeNotApplicable ProbeKind = iota
	ProbeVirtualObject
)

// Probe is the result of VirtualBackend.Probe. Fs and Path are only set
// for ProbeVirtualObject.
//
// Fs may be shared by every result of a backend and is never closed by the
// Dir built from the probe. A backend that opens a resource for a single
// result sets Closer; that Dir then owns it and closes it in Close.
type Probe struct {
	Kind   ProbeKind
	Fs     afero.Fs
	Path   string
	Closer io.Closer
}

// NotApplicable returns a Probe telling that the backend does not serve
// the URL.
func NotApplicable() Probe {
	return Probe{Kind: ProbeNotApplicable}
}

// VirtualObject returns a Probe telling that the URL content lives at path
// inside fs.
func VirtualObject(fs afero.Fs, path string) Probe {
	return Probe{Kind: ProbeVirtualObject, Fs: fs, Path: path}
}

// VirtualBackend is a host virtual filesystem that may serve URL content
// directly. Implementations must be safe for concurrent use.
type VirtualBackend interface {
	Probe(url *netURL.URL) (Probe, error)
}

// NewAferoBackend returns a VirtualBackend backed by an afero filesystem.
//
// The virtual filesystem mounts archives as directories, so the URL path is
// looked up with every '!' separator turned into a plain path segment, e.g.
// "/app.ear/app.jar!/com" becomes "/app.ear/app.jar/com". A directory at
// that location is a virtual object; anything else is not applicable.
func NewAferoBackend(fs afero.Fs) VirtualBackend {
	return &aferoBackend{fs: fs}
}

type aferoBackend struct {
	fs afero.Fs
}

// Probe implements the VirtualBackend interface.
func (b *aferoBackend) Probe(url *netURL.URL) (Probe, error) {
	if url == nil {
		return Probe{}, errAferoBackendNilURL
	}
	p, err := locatorPath(url)
	if err != nil {
		return Probe{}, errAferoBackendFn(err)
	}
	p = filepath.FromSlash(mountPath(strings.TrimPrefix(p, filePrefix)))
	info, err := b.fs.Stat(p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return NotApplicable(), nil
	case err != nil:
		return Probe{}, errAferoBackendFn(err)
	case !info.IsDir():
		return NotApplicable(), nil
	}
	return VirtualObject(b.fs, p), nil
}

// mountPath joins the segments around nested separators into one path.
func mountPath(p string) string {
	if strings.IndexByte(p, nestedSeparator) == -1 {
		return p
	}
	return path.Join(strings.Split(p, string(nestedSeparator))...)
}

var errAferoBackendNilURL = errors.New("vfs.aferoBackend: nil URL")

func errAferoBackendFn(err error) error {
	return fmt.Errorf("vfs.aferoBackend: %w", err)
}
