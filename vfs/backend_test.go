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
	"io/fs"
	netURL "net/url"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statErrFs struct {
	afero.Fs
	err error
}

func (s *statErrFs) Stat(string) (fs.FileInfo, error) {
	return nil, s.err
}

func TestAferoBackend_Probe(t *testing.T) {
	mem := afero.NewMemMapFs()
	writeMemFiles(t, mem, "/deployments/app.ear", map[string]string{
		"app.jar/com/foo/Bar.class": "bar",
		"lib/packed.jar":            "PK",
	})
	b := NewAferoBackend(mem)
	tc := []struct {
		name     string
		uri      string
		wantKind ProbeKind
		wantPath string
	}{
		{
			name:     "mounted directory",
			uri:      "vfs:/deployments/app.ear",
			wantKind: ProbeVirtualObject,
			wantPath: "/deployments/app.ear",
		},
		{
			name:     "nested entry of a mounted archive",
			uri:      "vfszip:/deployments/app.ear/app.jar!/com/foo",
			wantKind: ProbeVirtualObject,
			wantPath: "/deployments/app.ear/app.jar/com/foo",
		},
		{
			name:     "embedded file URL",
			uri:      "vfsfile:file:/deployments/app.ear/app.jar",
			wantKind: ProbeVirtualObject,
			wantPath: "/deployments/app.ear/app.jar",
		},
		{
			name:     "regular file",
			uri:      "vfszip:/deployments/app.ear/lib/packed.jar",
			wantKind: ProbeNotApplicable,
		},
		{
			name:     "missing",
			uri:      "vfs:/deployments/other.ear",
			wantKind: ProbeNotApplicable,
		},
	}
	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			u, err := netURL.Parse(tt.uri)
			require.NoError(t, err)
			p, err := b.Probe(u)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, p.Kind)
			if tt.wantKind == ProbeVirtualObject {
				assert.Equal(t, tt.wantPath, p.Path)
				assert.Same(t, mem, p.Fs)
			}
		})
	}
}

func TestAferoBackend_ProbeErrors(t *testing.T) {
	_, err := NewAferoBackend(afero.NewMemMapFs()).Probe(nil)
	require.Error(t, err)

	statErr := errors.New("mount is stale")
	_, err = NewAferoBackend(&statErrFs{Fs: afero.NewMemMapFs(), err: statErr}).Probe(&netURL.URL{Scheme: "vfs", Path: "/app.ear"})
	assert.ErrorIs(t, err, statErr)
}
