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
	"fmt"

	"github.com/chronicleprotocol/go-vfs/errutil"
)

// ErrorKind classifies failures returned by URLType.CreateDir.
type ErrorKind int

const (
	// DeploymentNotFound means no existing file or directory backs the URL.
	DeploymentNotFound ErrorKind = iota + 1

	// MalformedLocator means the URL cannot be turned into a filesystem path.
	MalformedLocator

	// BackendReadError means a path was resolved but the backend failed to
	// read it.
	BackendReadError
)

func (k ErrorKind) String() string {
	switch k {
	case DeploymentNotFound:
		return "deployment not found"
	case MalformedLocator:
		return "malformed locator"
	case BackendReadError:
		return "backend read error"
	default:
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
}

var (
	ErrDeploymentNotFound = errors.New("vfs: deployment not found")
	ErrMalformedLocator   = errors.New("vfs: malformed locator")
	ErrBackendRead        = errors.New("vfs: backend read error")
)

// Error is the single failure type returned while creating a Dir. It carries
// the kind, the URL being resolved and the underlying cause, if any.
type Error struct {
	Kind ErrorKind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("vfs: %s: %s", e.Kind, e.URL)
	}
	return fmt.Sprintf("vfs: %s: %s: %v", e.Kind, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes the kind sentinels usable with errors.Is.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrDeploymentNotFound:
		return e.Kind == DeploymentNotFound
	case ErrMalformedLocator:
		return e.Kind == MalformedLocator
	case ErrBackendRead:
		return e.Kind == BackendReadError
	}
	return false
}

// KindOf returns the kind of the first Error in err's chain, or zero if
// there is none.
func KindOf(err error) ErrorKind {
	if e, ok := errutil.As[*Error](err); ok {
		return e.Kind
	}
	return 0
}

func errDeploymentNotFoundFn(url string) error {
	return &Error{Kind: DeploymentNotFound, URL: url}
}

func errMalformedLocatorFn(url string, err error) error {
	return &Error{Kind: MalformedLocator, URL: url, Err: err}
}

func errBackendReadFn(url string, err error) error {
	return &Error{Kind: BackendReadError, URL: url, Err: err}
}
