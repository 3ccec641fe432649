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
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeploymentsFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/deployments/app.ear/classes/com/foo", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/deployments/app.ear/app.jar", []byte("PK"), 0o600))
	require.NoError(t, fs.MkdirAll("/deployments/app dir", 0o755))
	return fs
}

func TestFindExisting(t *testing.T) {
	fs := newDeploymentsFs(t)
	tc := []struct {
		name     string
		path     string
		wantPath string
		wantOK   bool
	}{
		{
			name:     "existing directory",
			path:     "/deployments/app.ear/classes",
			wantPath: "/deployments/app.ear/classes",
			wantOK:   true,
		},
		{
			name:     "existing file",
			path:     "/deployments/app.ear/app.jar",
			wantPath: "/deployments/app.ear/app.jar",
			wantOK:   true,
		},
		{
			name:     "missing leaf stops at parent",
			path:     "/deployments/app.ear/classes/Missing.class",
			wantPath: "/deployments/app.ear/classes",
			wantOK:   true,
		},
		{
			name:     "missing levels below an archive",
			path:     "/deployments/app.ear/app.jar/com/foo/Bar.class",
			wantPath: "/deployments/app.ear/app.jar",
			wantOK:   true,
		},
		{
			name:     "no ancestor exists",
			path:     "/nothing/here/at/all",
			wantPath: "/nothing",
			wantOK:   false,
		},
		{
			name:     "relative path without ancestor",
			path:     "nothing/here",
			wantPath: "nothing",
			wantOK:   false,
		},
		{
			name:     "empty path",
			path:     "",
			wantPath: "",
			wantOK:   false,
		},
	}
	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindExisting(fs, tt.path)
			assert.Equal(t, tt.wantPath, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestIdentifyDeployment(t *testing.T) {
	fs := newDeploymentsFs(t)
	tc := []struct {
		name     string
		url      *netURL.URL
		wantPath string
		wantOK   bool
		wantErr  bool
	}{
		{
			name:     "plain directory",
			url:      &netURL.URL{Scheme: "vfs", Path: "/deployments/app.ear/classes"},
			wantPath: "/deployments/app.ear/classes",
			wantOK:   true,
		},
		{
			name:     "nested archive entry",
			url:      &netURL.URL{Scheme: "vfszip", Path: "/deployments/app.ear/app.jar!/com/foo/Bar.class"},
			wantPath: "/deployments/app.ear/app.jar",
			wantOK:   true,
		},
		{
			name:     "embedded file URL",
			url:      &netURL.URL{Scheme: "vfsfile", Opaque: "file:/deployments/app.ear/classes"},
			wantPath: "/deployments/app.ear/classes",
			wantOK:   true,
		},
		{
			name:     "embedded file URL with nested entry",
			url:      &netURL.URL{Scheme: "vfszip", Opaque: "file:/deployments/app.ear/app.jar!/META-INF/MANIFEST.MF"},
			wantPath: "/deployments/app.ear/app.jar",
			wantOK:   true,
		},
		{
			name:     "escaped opaque path",
			url:      &netURL.URL{Scheme: "vfs", Opaque: "file:/deployments/app%20dir"},
			wantPath: "/deployments/app dir",
			wantOK:   true,
		},
		{
			name:     "missing path inside a directory",
			url:      &netURL.URL{Scheme: "vfs", Path: "/deployments/app.ear/classes/com/foo/Bar.class"},
			wantPath: "/deployments/app.ear/classes/com/foo",
			wantOK:   true,
		},
		{
			name:     "nothing exists",
			url:      &netURL.URL{Scheme: "vfs", Path: "/nothing/here"},
			wantPath: "/nothing",
			wantOK:   false,
		},
		{
			name:    "nil URL",
			wantErr: true,
		},
		{
			name:    "NUL byte in path",
			url:     &netURL.URL{Scheme: "vfs", Path: "/deployments/a\x00b"},
			wantErr: true,
		},
		{
			name:    "invalid escape in opaque path",
			url:     &netURL.URL{Scheme: "vfs", Opaque: "file:/deployments/%zz"},
			wantErr: true,
		},
	}
	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := IdentifyDeployment(fs, tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
