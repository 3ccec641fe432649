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
	"iter"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter returns the files of dir whose relative path matches at least one
// of the patterns. Patterns use the doublestar syntax, e.g. "**/*.class".
// With no patterns, every file is returned.
func Filter(dir Dir, patterns ...string) iter.Seq[File] {
	return func(yield func(File) bool) {
		for f := range dir.Files() {
			if !matchAny(patterns, f.RelativePath()) {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// ValidPatterns returns an error for the first malformed pattern.
func ValidPatterns(patterns ...string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return errFilterInvalidPatternFn(p)
		}
	}
	return nil
}

func matchAny(patterns []string, name string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

func errFilterInvalidPatternFn(pattern string) error {
	return fmt.Errorf("vfs.filter: invalid pattern: %q", pattern)
}
