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

package atoms

import (
	"errors"
	"fmt"
	"strings"
)

//DataError is returned when the data given doesn't have the expected shape: columns of the wrong
//length, frames that don't match the atoms, missing coordinates, invalid bonds.
//DataErrors are always critical.
type DataError struct {
	message string
	deco    []string
}

//NewDataError returns a DataError with a message built from format and v, decorated
//with the name of the caller.
func NewDataError(caller, format string, v ...interface{}) *DataError {
	return &DataError{message: fmt.Sprintf(format, v...), deco: []string{caller}}
}

func (err *DataError) Error() string {
	return "chemsel: data error: " + err.message
}

//Decorate adds dec to the decoration slice of the error, and returns the resulting slice.
//If dec is empty, it just returns the current slice.
func (err *DataError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical always returns true for a DataError
func (err *DataError) Critical() bool { return true }

//IsDataError returns true if err is, or wraps, a DataError
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}

//decorator is the interface for the errors in this library that can be decorated.
type decorator interface {
	Decorate(string) []string
}

//errDecorate decorates err with the caller's name, if err supports decorations,
//and returns it.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(decorator); ok {
		err2.Decorate(caller)
	}
	return err
}

//Warning codes
const (
	WarnSegnameIgnored   = "segname-ignored"
	WarnSegnameTruncated = "segname-truncated"
	WarnElementGuessed   = "element-guessed"
	WarnElementUnknown   = "element-unknown"
	WarnNonFinite        = "non-finite-coordinates"
	WarnDefaultRadius    = "default-radius"
)

//Warning is a non-fatal condition found while building or processing the data.
//The operation that records a Warning still completes.
type Warning struct {
	Code   string
	Detail string
}

func (w Warning) String() string {
	return w.Code + ": " + w.Detail
}

//JoinWarnings returns a single string with all the warnings in ws.
func JoinWarnings(ws []Warning) string {
	s := make([]string, len(ws))
	for i, w := range ws {
		s[i] = w.String()
	}
	return strings.Join(s, "; ")
}
