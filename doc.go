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

/*Package chemsel answers two questions about a molecular structure: which atoms
satisfy a selection, and which pairs of atoms are covalently bonded.

The structure is given as an atoms.AtomSet (per-atom attributes such as names, residue
names and ids, chains and elements) and zero or more atoms.Frame values, each one with
the coordinates of every atom for one snapshot. A selection is compiled once with
CompileSelection, and can then be evaluated on any number of frames and atom sets:

	s, err := chemsel.CompileSelection("protein and within 5 of resname HEM")
	if err != nil {
		//err is a *sel.SyntaxError
	}
	res, err := chemsel.Evaluate(ctx, s, set, frames)
	//res.Masks[i][j] is true if atom j is selected in frame i.

Frames are evaluated concurrently, each one with its own cell list. Bonds are guessed
from the distances between atoms and their covalent radii:

	b, err := chemsel.GuessBonds(set, frames[:1])
	//b.Bonds contains pairs [i,j], i<j.

Errors are *sel.SyntaxError for selections that can't be compiled, *atoms.DataError for
data of the wrong shape and *bonds.GeometryError when bonds can't be guessed at all.
Problems that don't prevent the calculation are returned as Warnings in the
results, and logged.

The packages atoms, cells, sel, bonds and chemgraph can be used on their own.
*/
package chemsel
