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

// Package errutil helps to combine and inspect errors.
package errutil

import (
	"errors"
	"strings"
)

// Append adds errs to err. Nil errors are dropped and nested MultiErrors
// are flattened. It returns nil when nothing is left, the single error
// when only one is left, and a MultiError otherwise.
func Append(err error, errs ...error) error {
	var m MultiError
	// A type assertion instead of errors.As, so only a top level MultiError
	// is flattened.
	if e, ok := err.(MultiError); ok {
		m = append(m, e...)
	} else if err != nil {
		m = append(m, err)
	}
	for _, e := range errs {
		switch e := e.(type) {
		case nil:
		case MultiError:
			m = append(m, e...)
		default:
			m = append(m, e)
		}
	}
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	default:
		return m
	}
}

// MultiError is a list of errors reported as one.
type MultiError []error

// Error implements the error interface.
func (m MultiError) Error() string {
	if len(m) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("following errors occurred: [")
	for i, err := range m {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(err.Error())
	}
	b.WriteString("]")
	return b.String()
}

// Unwrap lets errors.Is and errors.As look into every error of the list.
func (m MultiError) Unwrap() []error {
	return m
}

// As is a generic version of errors.As.
func As[T error](err error) (target T, ok bool) {
	ok = errors.As(err, &target)
	return
}
