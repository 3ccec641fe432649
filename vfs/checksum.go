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

	"github.com/defiweb/go-eth/types"
	"golang.org/x/crypto/sha3"

	"github.com/chronicleprotocol/go-vfs/errutil"
)

// Checksum returns the Keccak-256 hash of the file content.
func Checksum(f File) (h types.Hash, err error) {
	r, err := f.Open()
	if err != nil {
		return types.ZeroHash, errChecksumFn(f.RelativePath(), err)
	}
	defer func() {
		if cErr := r.Close(); cErr != nil {
			err = errutil.Append(err, errChecksumFn(f.RelativePath(), cErr))
		}
	}()
	hash := sha3.NewLegacyKeccak256()
	if _, err := io.Copy(hash, r); err != nil {
		return types.ZeroHash, errChecksumFn(f.RelativePath(), err)
	}
	return types.Hash(hash.Sum(nil)), nil
}

func errChecksumFn(path string, err error) error {
	return fmt.Errorf("vfs.checksum: %s: %w", path, err)
}
