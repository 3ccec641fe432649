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
	SchemeFile = "file"
	SchemeJar  = "jar"
)

var fileSchemes = []string{SchemeFile, SchemeJar}

// NewFileType returns the URLType for plain "file" URLs and "jar" URLs
// such as "jar:file:/lib/app.jar!/com/foo". Directories are listed as
// they are; any other file is read as a zip archive. The virtual backend
// option is ignored.
func NewFileType(opts ...TypeOption) URLType {
	return &fileType{cfg: newTypeConfig(opts)}
}

type fileType struct {
	cfg typeConfig
}

// Matches implements the URLType interface.
func (t *fileType) Matches(url *netURL.URL) bool {
	return url != nil && sliceutil.Contains(fileSchemes, url.Scheme)
}

// CreateDir implements the URLType interface.
func (t *fileType) CreateDir(url *netURL.URL) (Dir, error) {
	if url == nil {
		return nil, errMalformedLocatorFn("", errFileTypeNilURL)
	}
	if !t.Matches(url) {
		return nil, errMalformedLocatorFn(url.String(), errFileTypeUnexpectedSchemeFn(url.Scheme))
	}
	if url.Host != "" && url.Host != "localhost" {
		return nil, errMalformedLocatorFn(url.String(), errFileTypeUnexpectedHostFn(url.Host))
	}
	deployment, err := t.cfg.identify(url)
	if err != nil {
		return nil, err
	}
	return t.cfg.open(url, deployment)
}

var errFileTypeNilURL = errors.New("vfs.fileType: nil URL")

func errFileTypeUnexpectedSchemeFn(scheme string) error {
	return fmt.Errorf("vfs.fileType: unexpected scheme: %s", scheme)
}

func errFileTypeUnexpectedHostFn(host string) error {
	return fmt.Errorf("vfs.fileType: unexpected host: %s, must be empty or 'localhost'", host)
}
