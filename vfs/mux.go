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
)

// DefaultTypes returns the VFS type followed by the file type, both created
// with the given options.
func DefaultTypes(opts ...TypeOption) []URLType {
	return []URLType{NewVFSType(opts...), NewFileType(opts...)}
}

// NewMux creates a URL multiplexer that routes URLs to the first of the
// given types that matches them.
//
// As a special case, a URL without a scheme is treated as a file URL.
func NewMux(types ...URLType) *Mux {
	return &Mux{types: types}
}

// Mux is itself a URLType.
type Mux struct {
	types []URLType
}

// Matches implements the URLType interface.
func (m *Mux) Matches(url *netURL.URL) bool {
	if url == nil {
		return false
	}
	url = withDefaultScheme(url)
	for _, t := range m.types {
		if t.Matches(url) {
			return true
		}
	}
	return false
}

// CreateDir implements the URLType interface.
func (m *Mux) CreateDir(url *netURL.URL) (Dir, error) {
	if url == nil {
		return nil, errMalformedLocatorFn("", errMuxNilURL)
	}
	url = withDefaultScheme(url)
	for _, t := range m.types {
		if t.Matches(url) {
			return t.CreateDir(url)
		}
	}
	return nil, errMuxUnknownSchemeFn(url.Scheme)
}

// FromString parses the URL and creates a Dir for it.
func (m *Mux) FromString(url string) (Dir, error) {
	u, err := netURL.Parse(url)
	if err != nil {
		return nil, errMalformedLocatorFn(url, errMuxFn(err))
	}
	return m.CreateDir(u)
}

func withDefaultScheme(url *netURL.URL) *netURL.URL {
	if url.Scheme != "" {
		return url
	}
	c := *url
	c.Scheme = SchemeFile
	return &c
}

var (
	errMuxNilURL        = errors.New("vfs.mux: nil URL")
	errMuxUnknownScheme = errors.New("vfs.mux: unknown scheme")
)

// IsUnknownScheme reports whether err was returned because no URLType
// matched the URL.
func IsUnknownScheme(err error) bool {
	return errors.Is(err, errMuxUnknownScheme)
}

func errMuxFn(err error) error {
	return fmt.Errorf("vfs.mux: %w", err)
}

func errMuxUnknownSchemeFn(scheme string) error {
	return fmt.Errorf("%w: %s", errMuxUnknownScheme, scheme)
}
