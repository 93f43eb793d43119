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

//Package atoms contains the data consumed by the selection and bond-guessing engines:
//AtomSet, a read-only columnar store of per-atom attributes, and Frame, the coordinates
//of all atoms for one snapshot.
//
//An AtomSet is validated once, when built. Every column supplied must have one
//element per atom, and missing columns are filled with empty strings or zeros.
//Problems that don't prevent the use of the data (a segname column that is too wide,
//elements that had to be guessed) are recorded as Warnings.
package atoms
