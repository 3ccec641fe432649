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
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// writeZip creates a zip archive at path with the given files and
// directory entries.
func writeZip(t *testing.T, path string, files map[string]string, dirs ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for _, d := range dirs {
		_, err := w.Create(d)
		require.NoError(t, err)
	}
	names := make([]string, 0, len(files))
	for n := range files {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		e, err := w.Create(n)
		require.NoError(t, err)
		_, err = e.Write([]byte(files[n]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

// writeFiles creates the files below root on the host filesystem.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for n, c := range files {
		p := filepath.Join(root, filepath.FromSlash(n))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(c), 0o600))
	}
}

// writeMemFiles creates the files in an afero filesystem.
func writeMemFiles(t *testing.T, fs afero.Fs, root string, files map[string]string) {
	t.Helper()
	for n, c := range files {
		p := filepath.Join(root, filepath.FromSlash(n))
		require.NoError(t, fs.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, afero.WriteFile(fs, p, []byte(c), 0o600))
	}
}

// relPaths returns the sorted relative paths of all files in d.
func relPaths(d Dir) []string {
	var s []string
	for f := range d.Files() {
		s = append(s, f.RelativePath())
	}
	sort.Strings(s)
	return s
}

// trackingFs counts files opened through it that were not closed yet.
type trackingFs struct {
	afero.Fs
	open atomic.Int32
}

func (t *trackingFs) Open(name string) (afero.File, error) {
	f, err := t.Fs.Open(name)
	if err != nil {
		return nil, err
	}
	t.open.Add(1)
	return &trackedFile{File: f, fs: t}, nil
}

type trackedFile struct {
	afero.File
	fs     *trackingFs
	closed atomic.Bool
}

func (f *trackedFile) Close() error {
	if f.closed.CompareAndSwap(false, true) {
		f.fs.open.Add(-1)
	}
	return f.File.Close()
}

// failingFs fails to open one path.
type failingFs struct {
	afero.Fs
	fail string
	err  error
}

func (f *failingFs) Open(name string) (afero.File, error) {
	if name == f.fail {
		return nil, f.err
	}
	return f.Fs.Open(name)
}
