/*
 * ast.go, part of chemsel.
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

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rmera/chemsel/atoms"
)

//keyword is an attribute that can be used in a selection. Coordinates are not
//atom attributes, so they have an axis (0, 1, 2) instead. axis is -1 for the others.
type keyword struct {
	name string
	kind atoms.Kind
	attr atoms.Attr
	axis int
}

var keywords = map[string]keyword{
	"name":      {"name", atoms.KindString, atoms.AttrName, -1},
	"type":      {"type", atoms.KindString, atoms.AttrType, -1},
	"resname":   {"resname", atoms.KindString, atoms.AttrResname, -1},
	"chain":     {"chain", atoms.KindString, atoms.AttrChain, -1},
	"segname":   {"segname", atoms.KindString, atoms.AttrSegname, -1},
	"segid":     {"segname", atoms.KindString, atoms.AttrSegname, -1},
	"insertion": {"insertion", atoms.KindString, atoms.AttrInsertion, -1},
	"altloc":    {"altloc", atoms.KindString, atoms.AttrAltloc, -1},
	"element":   {"element", atoms.KindString, atoms.AttrElement, -1},
	"resid":     {"resid", atoms.KindInt, atoms.AttrResid, -1},
	"index":     {"index", atoms.KindInt, atoms.AttrIndex, -1},
	"serial":    {"serial", atoms.KindInt, atoms.AttrSerial, -1},
	"residue":   {"residue", atoms.KindInt, atoms.AttrResidue, -1},
	"fragment":  {"fragment", atoms.KindInt, atoms.AttrFragment, -1},
	"beta":      {"beta", atoms.KindFloat, atoms.AttrBeta, -1},
	"occupancy": {"occupancy", atoms.KindFloat, atoms.AttrOccupancy, -1},
	"x":         {"x", atoms.KindFloat, 0, 0},
	"y":         {"y", atoms.KindFloat, 0, 1},
	"z":         {"z", atoms.KindFloat, 0, 2},
}

func (k keyword) coordinate() bool {
	return k.axis >= 0
}

//Node is a node of the syntax tree of a selection. Nodes are never modified
//once built.
type Node interface {
	//String returns the canonical form of the node, which compiles
	//to the same tree.
	String() string
	node()
}

//Bool is either "all" or "none".
type Bool struct {
	Value bool
}

//Macro is a named selection, such as "protein".
type Macro struct {
	Name string
	Expr Node
}

type Not struct {
	X Node
}

type And struct {
	L, R Node
}

type Or struct {
	L, R Node
}

//Value is a literal in a selection. For numeric keywords, Num (and Hi, for ranges)
//hold the values. For string keywords, Str does.
type Value struct {
	Str   string
	Num   float64
	Hi    float64
	Range bool
}

//Compare is a comparison between an attribute and a literal, i.e. "beta > 0.5".
//Op is one of = != < <= > >=.
type Compare struct {
	Key   string
	Op    string
	Value Value
}

//Match selects the atoms where the attribute is equal to any of Values,
//or in any of the Value ranges, i.e. "resid 1 to 5 7".
type Match struct {
	Key    string
	Values []Value
}

//Regex selects the atoms where the attribute matches the complete Pattern.
type Regex struct {
	Key     string
	Pattern string
	re      *regexp.Regexp
}

//Within selects the atoms at Radius or less from any atom of X. If
//Exclusive is true, the atoms in X are not included.
type Within struct {
	Radius    float64
	Exclusive bool
	X         Node
}

//Same selects the atoms that have, for attribute Key, any of the values present in X.
type Same struct {
	Key string
	X   Node
}

//WithinBonds selects the atoms that are at most K bonds away from X.
type WithinBonds struct {
	K int
	X Node
}

func (Bool) node()        {}
func (Macro) node()       {}
func (Not) node()         {}
func (And) node()         {}
func (Or) node()          {}
func (Compare) node()     {}
func (Match) node()       {}
func (Regex) node()       {}
func (Within) node()      {}
func (Same) node()        {}
func (WithinBonds) node() {}

func (B Bool) String() string {
	if B.Value {
		return "all"
	}
	return "none"
}

func (M Macro) String() string { return M.Name }

func (N Not) String() string { return "(not " + N.X.String() + ")" }

func (A And) String() string { return "(" + A.L.String() + " and " + A.R.String() + ")" }

func (O Or) String() string { return "(" + O.L.String() + " or " + O.R.String() + ")" }

func (C Compare) String() string {
	return "(" + C.Key + " " + C.Op + " " + C.Value.format(keywords[C.Key].kind) + ")"
}

func (M Match) String() string {
	kind := keywords[M.Key].kind
	s := make([]string, 0, len(M.Values)+1)
	s = append(s, M.Key)
	for _, v := range M.Values {
		s = append(s, v.format(kind))
	}
	return "(" + strings.Join(s, " ") + ")"
}

func (R Regex) String() string {
	return "(" + R.Key + " =~ " + quote(R.Pattern) + ")"
}

func (W Within) String() string {
	op := "within"
	if W.Exclusive {
		op = "exwithin"
	}
	return "(" + op + " " + formatNum(W.Radius) + " of " + W.X.String() + ")"
}

func (S Same) String() string { return "(same " + S.Key + " as " + S.X.String() + ")" }

func (W WithinBonds) String() string {
	return "(withinbonds " + strconv.Itoa(W.K) + " of " + W.X.String() + ")"
}

func (v Value) format(kind atoms.Kind) string {
	if kind == atoms.KindString {
		return quote(v.Str)
	}
	num := formatNum
	if kind == atoms.KindInt {
		num = formatInt
	}
	if v.Range {
		return num(v.Num) + " to " + num(v.Hi)
	}
	return num(v.Num)
}

//formatInt writes integer values in plain decimal. 'g' switches to an exponent at 1e6.
func formatInt(f float64) string {
	return strconv.FormatInt(int64(f), 10)
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

//quote uses double quotes unless the string contains one. Strings can't contain both
//kinds of quotes.
func quote(s string) string {
	if strings.ContainsRune(s, dquote) {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}
