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

// Package vfs turns classpath resource URLs into listable directories.
//
// A URL produced by a classloader may point at a plain directory, a zip
// archive, or a location inside a container-managed virtual filesystem
// (the "vfs", "vfszip" and "vfsfile" schemes). The URLType interface
// recognizes a set of schemes and creates a Dir for a URL; the Dir lists
// the files the URL denotes through a single interface regardless of the
// backend that reads them.
//
// To support several schemes at once, the package provides the Mux, which
// delegates a URL to the first URLType that matches it.
//
// Example:
//
//	mux := vfs.NewMux(vfs.DefaultTypes()...)
//
//	dir, err := mux.FromString("vfszip:/deployments/app.ear/app.jar!/com/foo/Bar.class")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dir.Close()
//
//	for f := range dir.Files() {
//		fmt.Println(f.RelativePath())
//	}
package vfs
