/*
 * errors.go, part of chemsel.
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

package bonds

import "fmt"

//GeometryError is returned when the coordinates can't be used at all to
//guess bonds (i.e. all of them are NaN).
type GeometryError struct {
	message string
	deco    []string
}

func newGeometryError(caller, format string, v ...interface{}) *GeometryError {
	return &GeometryError{message: fmt.Sprintf(format, v...), deco: []string{caller}}
}

func (err *GeometryError) Error() string {
	return "chemsel: geometry error: " + err.message
}

//Decorate adds dec to the decoration slice of the error, and returns the resulting slice.
//If dec is empty, it just returns the current slice.
func (err *GeometryError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical always returns true for a GeometryError
func (err *GeometryError) Critical() bool { return true }

type decorator interface {
	Decorate(string) []string
}

func errDecorate(err error, caller string) error {
	if err2, ok := err.(decorator); ok {
		err2.Decorate(caller)
	}
	return err
}
