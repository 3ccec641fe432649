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

// Package sliceutil contains small generic helpers for slices.
package sliceutil

// Copy returns a copy of the slice.
func Copy[T any](s []T) []T {
	c := make([]T, len(s))
	copy(c, s)
	return c
}

// Contains returns true if s contains e.
func Contains[T comparable](s []T, e T) bool {
	for _, x := range s {
		if x == e {
			return true
		}
	}
	return false
}

// Filter returns a new slice with the elements of s for which f returns
// true.
func Filter[T any](s []T, f func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, x := range s {
		if f(x) {
			out = append(out, x)
		}
	}
	return out
}

// AppendUnique appends the elements of ee that are not yet present in s.
func AppendUnique[T comparable](s []T, ee ...T) []T {
	for _, e := range ee {
		if !Contains(s, e) {
			s = append(s, e)
		}
	}
	return s
}
