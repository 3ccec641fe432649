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

	"github.com/chronicleprotocol/go-vfs/sliceutil"
)

const (
	SchemeVFS     = "vfs"
	SchemeVFSZip  = "vfszip"
	SchemeVFSFile = "vfsfile"
)

var vfsSchemes = []string{SchemeVFS, SchemeVFSZip, SchemeVFSFile}

// NewVFSType returns the URLType for deployments served through a
// container virtual filesystem ("vfs", "vfszip" and "vfsfile" URLs).
//
// The URL is first resolved to the real file or directory that contains
// it. If a virtual backend is configured and serves the URL, the listing
// comes from the backend. Otherwise unpacked deployments are listed as
// directories and packed ones as zip archives.
func NewVFSType(opts ...TypeOption) URLType {
	return &vfsType{cfg: newTypeConfig(opts)}
}

type vfsType struct {
	cfg typeConfig
}

// Matches implements the URLType interface.
func (t *vfsType) Matches(url *netURL.URL) bool {
	return url != nil && sliceutil.Contains(vfsSchemes, url.Scheme)
}

// CreateDir implements the URLType interface.
func (t *vfsType) CreateDir(url *netURL.URL) (Dir, error) {
	if url == nil {
		return nil, errMalformedLocatorFn("", errVFSTypeNilURL)
	}
	if !t.Matches(url) {
		return nil, errMalformedLocatorFn(url.String(), errVFSTypeUnexpectedSchemeFn(url.Scheme))
	}
	deployment, err := t.cfg.identify(url)
	if err != nil {
		return nil, err
	}
	if t.cfg.virtual != nil {
		p, err := t.cfg.virtual.Probe(url)
		if err != nil {
			return nil, errBackendReadFn(url.String(), errVFSTypeFn(err))
		}
		if p.Kind == ProbeVirtualObject {
			t.cfg.log.Debugw("Listing virtual filesystem", "url", url.String(), "path", p.Path)
			return newProbedDir(url, p, t.cfg.dirOpts...), nil
		}
	}
	return t.cfg.open(url, deployment)
}

var errVFSTypeNilURL = errors.New("vfs.vfsType: nil URL")

func errVFSTypeFn(err error) error {
	return fmt.Errorf("vfs.vfsType: %w", err)
}

func errVFSTypeUnexpectedSchemeFn(scheme string) error {
	return fmt.Errorf("vfs.vfsType: unexpected scheme: %s", scheme)
}
