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

	"go.uber.org/zap"
)

// Dir is a listable view over the files a URL denotes. It may be backed by
// a plain directory, a zip archive or a host virtual filesystem; callers do
// not need to know which.
type Dir interface {
	// Path returns the location the listing is relative to.
	Path() string

	// Files returns the regular files under Path. The sequence is lazy and
	// can be ranged over more than once; every range starts a new walk.
	// Entries that cannot be read are skipped.
	Files() iter.Seq[File]

	// Close releases the backend resource. Calling Close more than once
	// has no further effect.
	Close() error
}

// File is a single entry of a Dir.
type File interface {
	// Name returns the base name of the entry.
	Name() string

	// RelativePath returns the slash separated path of the entry relative
	// to the Dir it came from.
	RelativePath() string

	// Open opens the entry content for reading.
	Open() (io.ReadCloser, error)
}

// URLType creates a Dir for the URLs it recognizes.
type URLType interface {
	Matches(url *netURL.URL) bool
	CreateDir(url *netURL.URL) (Dir, error)
}

type DirOption func(*dirConfig)

// WithDiagnostics sets a function that is called for every entry skipped
// while listing a Dir.
func WithDiagnostics(fn func(path string, err error)) DirOption {
	return func(c *dirConfig) {
		c.diag = fn
	}
}

// WithDirLogger sets the logger used to report skipped entries.
func WithDirLogger(log *zap.SugaredLogger) DirOption {
	return func(c *dirConfig) {
		c.log = log
	}
}

type dirConfig struct {
	log  *zap.SugaredLogger
	diag func(path string, err error)
}

func newDirConfig(opts []DirOption) dirConfig {
	var c dirConfig
	for _, opt := range opts {
		opt(&c)
	}
	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}
	return c
}

// skipped reports an entry that was left out of a listing.
func (c dirConfig) skipped(path string, err error) {
	c.log.Warnw("Skipping unreadable entry", "path", path, "error", err)
	if c.diag != nil {
		c.diag(path, err)
	}
}
