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
	"testing"

	"github.com/defiweb/go-eth/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenFile struct {
	rel      string
	openErr  error
	closeErr error
}

func (f *brokenFile) Name() string         { return f.rel }
func (f *brokenFile) RelativePath() string { return f.rel }

func (f *brokenFile) Open() (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &brokenReader{err: f.closeErr}, nil
}

type brokenReader struct {
	err error
}

func (r *brokenReader) Read([]byte) (int, error) { return 0, io.EOF }
func (r *brokenReader) Close() error             { return r.err }

func TestChecksum(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeMemFiles(t, fs, "/classes", map[string]string{
		"empty.txt": "",
		"hello.txt": "hello",
	})
	d := NewSystemDir(fs, "/classes")
	defer d.Close()

	want := map[string]string{
		"empty.txt": "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		"hello.txt": "0x1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8",
	}
	n := 0
	for f := range d.Files() {
		h, err := Checksum(f)
		require.NoError(t, err)
		w, err := types.HashFromHex(want[f.RelativePath()], types.PadNone)
		require.NoError(t, err)
		assert.Equal(t, w, h, f.RelativePath())
		n++
	}
	assert.Equal(t, len(want), n)
}

func TestChecksum_Errors(t *testing.T) {
	openErr := errors.New("permission denied")
	_, err := Checksum(&brokenFile{rel: "com/Foo.class", openErr: openErr})
	assert.ErrorIs(t, err, openErr)
	assert.Contains(t, err.Error(), "com/Foo.class")

	closeErr := errors.New("stale handle")
	_, err = Checksum(&brokenFile{rel: "com/Foo.class", closeErr: closeErr})
	assert.ErrorIs(t, err, closeErr)
}
