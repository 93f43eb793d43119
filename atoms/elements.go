/*
 * elements.go, part of chemsel.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
	"strings"
	"unicode"
)

//two-letter symbols that are recognized when the atom name is the same as the residue
//name, which is how ions are usually written in PDB files (i.e. CA CA is calcium, CA ALA is not).
var ionSymbols = map[string]string{
	"NA": "Na",
	"CL": "Cl",
	"MG": "Mg",
	"CA": "Ca",
	"ZN": "Zn",
	"FE": "Fe",
	"CU": "Cu",
	"CO": "Co",
	"MN": "Mn",
	"NI": "Ni",
	"CD": "Cd",
	"BR": "Br",
	"LI": "Li",
	"CS": "Cs",
	"RB": "Rb",
	"SR": "Sr",
	"BA": "Ba",
	"HG": "Hg",
	"AL": "Al",
}

//NormalizeSymbol returns s with standard element capitalization ("CL" becomes "Cl").
//Spaces and non-letters are removed.
func NormalizeSymbol(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if b.Len() == 0 {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

//SymbolFromName tries to guess a chemical element symbol from a PDB atom name. Mostly based on AMBER names,
//It only deals with common bio-elements. The residue name is used to recognize ions.
//It returns false if no guess could be made.
func SymbolFromName(name, resname string) (string, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	name = strings.TrimLeftFunc(name, unicode.IsDigit) //i.e. 1HB
	if name == "" {
		return "", false
	}
	if s, ok := ionSymbols[name]; ok && name == strings.ToUpper(strings.TrimSpace(resname)) {
		return s, true
	}
	symbol := ""
	switch name[0] {
	case 'H':
		symbol = "H"
	case 'C':
		if name == "CL" {
			symbol = "Cl"
		} else {
			symbol = "C" //Ca is not considered here
		}
	case 'N':
		if name == "NA" {
			symbol = "Na"
		} else {
			symbol = "N"
		}
	case 'O':
		symbol = "O"
	case 'P':
		symbol = "P"
	case 'S':
		if name == "SE" {
			symbol = "Se"
		} else {
			symbol = "S"
		}
	case 'F':
		if name == "FE" {
			symbol = "Fe"
		} else {
			symbol = "F"
		}
	case 'K':
		symbol = "K"
	case 'I':
		symbol = "I"
	}
	switch {
	case strings.HasPrefix(name, "ZN"):
		symbol = "Zn"
	case strings.HasPrefix(name, "MG"):
		symbol = "Mg"
	case strings.HasPrefix(name, "BR"):
		symbol = "Br"
	}
	return symbol, symbol != ""
}
