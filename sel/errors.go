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

package sel

import "fmt"

//SyntaxError is returned when a selection can't be compiled. Pos is the byte offset
//in the selection of the offending token, which is given in Token ("" at the end of the selection).
type SyntaxError struct {
	Pos   int
	Token string
	Msg   string
	deco  []string
}

func (err *SyntaxError) Error() string {
	if err.Token == "" {
		return fmt.Sprintf("chemsel: syntax error at %d: %s", err.Pos, err.Msg)
	}
	return fmt.Sprintf("chemsel: syntax error at %d near '%s': %s", err.Pos, err.Token, err.Msg)
}

//Decorate adds dec to the decoration slice of the error, and returns the resulting slice.
//If dec is empty, it just returns the current slice.
func (err *SyntaxError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical always returns true for a SyntaxError
func (err *SyntaxError) Critical() bool { return true }

func errorAt(it item, format string, v ...interface{}) *SyntaxError {
	tok := it.val
	if it.typ == itemEOF || it.typ == itemError {
		tok = ""
	}
	return &SyntaxError{Pos: it.pos, Token: tok, Msg: fmt.Sprintf(format, v...), deco: []string{"Compile"}}
}
