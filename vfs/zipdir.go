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
	"fmt"
	"io"
	"io/fs"
	"iter"
	"path"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
)

// ZipDir lists the entries of a zip archive, such as a jar or war file.
// Entries whose name is not a valid slash separated relative path, such as
// "../a.class" or "com//A.class", are skipped and reported.
type ZipDir struct {
	file   afero.File
	reader *zip.Reader
	cfg    dirConfig

	once     sync.Once
	closed   atomic.Bool
	closeErr error
}

// NewZipDir reads the central directory of the archive in file.
//
// On success the ZipDir owns file and closes it in Close. On failure the
// file is left open and stays with the caller.
func NewZipDir(file afero.File, opts ...DirOption) (*ZipDir, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, errZipDirFn(err)
	}
	r, err := zip.NewReader(file, info.Size())
	if err != nil {
		return nil, errZipDirFn(err)
	}
	return &ZipDir{file: file, reader: r, cfg: newDirConfig(opts)}, nil
}

// Path implements the Dir interface.
func (d *ZipDir) Path() string {
	return filepath.ToSlash(d.file.Name())
}

// Files implements the Dir interface.
func (d *ZipDir) Files() iter.Seq[File] {
	return func(yield func(File) bool) {
		if d.closed.Load() {
			return
		}
		for _, f := range d.reader.File {
			if f.FileInfo().IsDir() {
				continue
			}
			if !fs.ValidPath(f.Name) {
				d.cfg.skipped(f.Name, errZipDirInvalidNameFn(f.Name))
				continue
			}
			if !yield(&zipFile{f: f}) {
				return
			}
		}
	}
}

// Close implements the Dir interface.
func (d *ZipDir) Close() error {
	d.once.Do(func() {
		d.closed.Store(true)
		if err := d.file.Close(); err != nil {
			d.closeErr = errZipDirFn(err)
		}
	})
	return d.closeErr
}

type zipFile struct {
	f *zip.File
}

func (z *zipFile) Name() string                 { return path.Base(z.f.Name) }
func (z *zipFile) RelativePath() string         { return z.f.Name }
func (z *zipFile) Open() (io.ReadCloser, error) { return z.f.Open() }

func errZipDirInvalidNameFn(name string) error {
	return fmt.Errorf("vfs.zipDir: invalid entry name: %q", name)
}

func errZipDirFn(err error) error {
	return fmt.Errorf("vfs.zipDir: %w", err)
}
