/*
 * interfaces.go, part of chemsel.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chemsel

import (
	"errors"

	"github.com/rmera/chemsel/atoms"
	"github.com/rmera/chemsel/bonds"
	"github.com/rmera/chemsel/sel"
)

//Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
//error, without changing its type or wrapping it around something else.
//The decorate slice contains a list of functions in the calling stack, plus, for each function any relevant information, or nothing.
type Error interface {
	Error() string
	Decorate(string) []string
	Critical() bool
}

//the error types of the engines.
var (
	_ Error = (*sel.SyntaxError)(nil)
	_ Error = (*atoms.DataError)(nil)
	_ Error = (*bonds.GeometryError)(nil)
)

//IsSyntaxError returns true if err is, or wraps, a *sel.SyntaxError.
func IsSyntaxError(err error) bool {
	var e *sel.SyntaxError
	return errors.As(err, &e)
}

//IsDataError returns true if err is, or wraps, an *atoms.DataError.
func IsDataError(err error) bool {
	return atoms.IsDataError(err)
}

//IsGeometryError returns true if err is, or wraps, a *bonds.GeometryError.
func IsGeometryError(err error) bool {
	var e *bonds.GeometryError
	return errors.As(err, &e)
}

//errDecorate decorates err with the caller's name, if err supports decorations,
//and returns it.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
	}
	return err
}
