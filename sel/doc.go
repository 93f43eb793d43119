/*
 * doc.go, part of chemsel.
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

/*
Package sel compiles and evaluates atom selections, in a language similar to VMD's.

A selection is a boolean expression over the attributes of the atoms:

	resname ALA GLY and name CA
	resid 1 to 10 or (chain B and not hydrogen)
	beta > 0.5 and name =~ "C.*"
	within 5 of resname HEM
	same residue as exwithin 3.5 of resname LIG
	withinbonds 2 of index 10

The keywords are name, type, resname, chain, segname (or segid), insertion, altloc
and element (strings), resid, index, serial, residue and fragment (integers), and
beta, occupancy, x, y and z (floats). A keyword followed by values selects the atoms
that have any of them. For numeric keywords, "a to b" and "a:b" are inclusive ranges.
A keyword followed by an operator (= == != < <= > >=) and a value is a comparison,
and =~ matches the whole string value against a regular expression. Quoted strings are
always literals.

not binds tighter than and, which binds tighter than or. within, exwithin, same and
withinbonds apply to everything to their right, up to the closing parenthesis.

The macros protein, nucleic, water, ion, hydrogen, noh, heavy, backbone and sidechain
are predefined, as are all and none.
*/
package sel
