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
	"io"
	"iter"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/spf13/afero"
)

// SystemDir lists an unpacked directory tree.
type SystemDir struct {
	fs     afero.Fs
	path   string
	cfg    dirConfig
	closed atomic.Bool
}

// NewSystemDir creates a Dir over the directory at path.
func NewSystemDir(fs afero.Fs, path string, opts ...DirOption) *SystemDir {
	return &SystemDir{fs: fs, path: path, cfg: newDirConfig(opts)}
}

// Path implements the Dir interface.
func (d *SystemDir) Path() string {
	return filepath.ToSlash(d.path)
}

// Files implements the Dir interface.
func (d *SystemDir) Files() iter.Seq[File] {
	return walkFiles(d.fs, d.path, d.cfg, &d.closed)
}

// Close implements the Dir interface.
func (d *SystemDir) Close() error {
	d.closed.Store(true)
	return nil
}

// fsFile is a File stored in an afero filesystem.
type fsFile struct {
	fs   afero.Fs
	path string
	rel  string
}

func (f *fsFile) Name() string         { return filepath.Base(f.path) }
func (f *fsFile) RelativePath() string { return f.rel }

func (f *fsFile) Open() (io.ReadCloser, error) {
	return f.fs.Open(f.path)
}

// walkFiles yields every non-directory entry below root. Errors for single
// entries are reported to cfg and the walk goes on. Nothing is yielded once
// closed is set.
func walkFiles(fs afero.Fs, root string, cfg dirConfig, closed *atomic.Bool) iter.Seq[File] {
	return func(yield func(File) bool) {
		if closed.Load() {
			return
		}
		err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				cfg.skipped(path, err)
				return nil
			}
			if info.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				cfg.skipped(path, err)
				return nil
			}
			if !yield(&fsFile{fs: fs, path: path, rel: filepath.ToSlash(rel)}) {
				return errStopWalk
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopWalk) {
			cfg.skipped(root, err)
		}
	}
}

var errStopWalk = errors.New("vfs: stop walk")
