/*
 * parse.go, part of chemsel.
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
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rmera/chemsel/atoms"
)

//reserved words can't be used as unquoted values.
var reserved = map[string]bool{
	"and": true, "or": true, "not": true, "of": true, "as": true, "to": true,
	"within": true, "exwithin": true, "same": true, "withinbonds": true, "all": true, "none": true,
}

//macro definitions, in an order such that every macro only uses the ones before it.
var macroDefs = [][2]string{
	{"protein", "resname ALA ARG ASN ASP CYS CYX GLN GLU GLY HIS HSD HSE HSP HID HIE HIP ILE LEU LYS MET PHE PRO SER THR TRP TYR VAL ASH GLH LYN MSE"},
	{"nucleic", "resname A C G T U DA DC DG DT RA RC RG RU ADE GUA CYT THY URA"},
	{"water", "resname HOH WAT TIP3 TIP4 TIP5 SPC SOL H2O T3P T4P"},
	{"ion", "resname NA CL K CA MG ZN SOD CLA POT CAL LIT RB CS CD FE CU MN NI CO BR IOD"},
	{"hydrogen", "element H"},
	{"noh", "not hydrogen"},
	{"heavy", "not hydrogen"},
	{"backbone", "protein and name N CA C O"},
	{"sidechain", "protein and not backbone and not hydrogen"},
}

var macros = make(map[string]Node, len(macroDefs))

func init() {
	for _, m := range macroDefs {
		p, err := newParser(m[1])
		if err != nil {
			panic(fmt.Sprintf("BUG: macro %s: %v", m[0], err))
		}
		expr, err := p.parseSelection()
		if err != nil {
			panic(fmt.Sprintf("BUG: macro %s: %v", m[0], err))
		}
		macros[m[0]] = expr
	}
}

//parser is a recursive descent parser. The precedence, from lowest to highest is:
//the prefix operators (within, exwithin, same, withinbonds), which take everything
//to their right, then or, and, not.
type parser struct {
	items     []item
	pos       int
	warnings  []atoms.Warning
	coords    bool
	maxRadius float64
}

func newParser(text string) (*parser, error) {
	items := lex(text)
	last := items[len(items)-1]
	if last.typ == itemError {
		return nil, &SyntaxError{Pos: last.pos, Token: tokenAt(text, last.pos), Msg: last.val, deco: []string{"Compile"}}
	}
	return &parser{items: items}, nil
}

//tokenAt returns the text from pos to the next blank.
func tokenAt(text string, pos int) string {
	t := text[pos:]
	if i := strings.IndexAny(t, " \t\n\r"); i >= 0 {
		t = t[:i]
	}
	return t
}

func (p *parser) peek() item {
	return p.items[p.pos]
}

func (p *parser) next() item {
	it := p.items[p.pos]
	if it.typ != itemEOF {
		p.pos++
	}
	return it
}

func (p *parser) isWord(val string) bool {
	it := p.peek()
	return it.typ == itemWord && it.val == val
}

func (p *parser) parseSelection() (Node, error) {
	if p.peek().typ == itemEOF {
		return nil, errorAt(p.peek(), "empty selection")
	}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	switch it := p.peek(); it.typ {
	case itemEOF:
	case itemRParen:
		return nil, errorAt(it, "unbalanced parentheses: unexpected ')'")
	default:
		return nil, errorAt(it, "unexpected '%s' after a complete selection", it.val)
	}
	return n, nil
}

func (p *parser) parseOr() (Node, error) {
	l, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isWord("or") {
		p.next()
		r, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		l = Or{L: l, R: r}
	}
	return l, nil
}

func (p *parser) parseAnd() (Node, error) {
	l, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isWord("and") {
		p.next()
		r, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		l = And{L: l, R: r}
	}
	return l, nil
}

func (p *parser) parseUnary() (Node, error) {
	it := p.peek()
	if it.typ != itemWord {
		return p.parsePrimary()
	}
	switch it.val {
	case "not":
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not{X: x}, nil
	case "within", "exwithin":
		p.next()
		ri := p.next()
		r, err := parseNumber(ri)
		if err != nil || r < 0 {
			return nil, errorAt(ri, "%s needs a non-negative distance", it.val)
		}
		x, err := p.parseOf("of")
		if err != nil {
			return nil, err
		}
		p.coords = true
		p.maxRadius = math.Max(p.maxRadius, r)
		return Within{Radius: r, Exclusive: it.val == "exwithin", X: x}, nil
	case "same":
		p.next()
		ki := p.next()
		k, ok := keywords[ki.val]
		if ki.typ != itemWord || !ok {
			return nil, errorAt(ki, "same needs an attribute keyword")
		}
		if k.coordinate() {
			return nil, errorAt(ki, "coordinates can't be used with same")
		}
		x, err := p.parseOf("as")
		if err != nil {
			return nil, err
		}
		return Same{Key: k.name, X: x}, nil
	case "withinbonds":
		p.next()
		ki := p.next()
		k, err := strconv.Atoi(ki.val)
		if ki.typ != itemWord || err != nil || k < 0 {
			return nil, errorAt(ki, "withinbonds needs a non-negative integer")
		}
		x, err := p.parseOf("of")
		if err != nil {
			return nil, err
		}
		return WithinBonds{K: k, X: x}, nil
	}
	return p.parsePrimary()
}

//parseOf expects the word sep ("of" or "as"), followed by a selection.
func (p *parser) parseOf(sep string) (Node, error) {
	it := p.next()
	if it.typ != itemWord || it.val != sep {
		return nil, errorAt(it, "expected '%s'", sep)
	}
	if t := p.peek().typ; t == itemEOF || t == itemRParen {
		return nil, errorAt(p.peek(), "empty selection after '%s'", sep)
	}
	return p.parseOr()
}

func (p *parser) parsePrimary() (Node, error) {
	it := p.next()
	switch it.typ {
	case itemEOF:
		return nil, errorAt(it, "unexpected end of selection")
	case itemRParen:
		return nil, errorAt(it, "unbalanced parentheses: unexpected ')'")
	case itemLParen:
		if p.peek().typ == itemRParen {
			return nil, errorAt(p.peek(), "empty parentheses")
		}
		x, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if cl := p.next(); cl.typ != itemRParen {
			return nil, errorAt(cl, "unbalanced parentheses: expected ')'")
		}
		return x, nil
	case itemOp:
		return nil, errorAt(it, "unexpected operator")
	case itemString:
		return nil, errorAt(it, "unexpected string, expected a keyword")
	}
	switch it.val {
	case "all":
		return Bool{Value: true}, nil
	case "none":
		return Bool{Value: false}, nil
	}
	if m, ok := macros[it.val]; ok {
		return Macro{Name: it.val, Expr: m}, nil
	}
	k, ok := keywords[it.val]
	if !ok {
		if reserved[it.val] {
			return nil, errorAt(it, "unexpected '%s'", it.val)
		}
		return nil, errorAt(it, "unknown keyword")
	}
	if k.coordinate() {
		p.coords = true
	}
	if p.peek().typ == itemOp {
		return p.parseCompare(k)
	}
	return p.parseMatch(k, it)
}

func (p *parser) parseCompare(k keyword) (Node, error) {
	opi := p.next()
	vi := p.next()
	if vi.typ != itemWord && vi.typ != itemString {
		return nil, errorAt(vi, "operator %s needs a value", opi.val)
	}
	if opi.val == "=~" {
		if k.kind != atoms.KindString {
			return nil, errorAt(opi, "=~ can only be used with string keywords")
		}
		re, err := regexp.Compile("^(?:" + vi.val + ")$")
		if err != nil {
			return nil, errorAt(vi, "invalid regular expression: %v", err)
		}
		return Regex{Key: k.name, Pattern: vi.val, re: re}, nil
	}
	v, err := p.parseValue(k, vi)
	if err != nil {
		return nil, err
	}
	if v.Range {
		return nil, errorAt(vi, "operator %s can't be used with a range", opi.val)
	}
	op := opi.val
	if op == "==" {
		op = "="
	}
	return Compare{Key: k.name, Op: op, Value: v}, nil
}

//parseMatch reads the list of values after keyword k. Values end at a reserved word,
//a parenthesis or the end of the selection.
func (p *parser) parseMatch(k keyword, kw item) (Node, error) {
	values := make([]Value, 0, 4)
	for {
		it := p.peek()
		if it.typ == itemString || (it.typ == itemWord && !reserved[it.val]) {
			p.next()
			v, err := p.parseValue(k, it)
			if err != nil {
				return nil, err
			}
			if p.isWord("to") {
				to := p.next()
				if k.kind == atoms.KindString {
					return nil, errorAt(to, "ranges can't be used with string keyword %s", k.name)
				}
				if v.Range {
					return nil, errorAt(to, "unexpected 'to' after a range")
				}
				hi := p.next()
				if hi.typ != itemWord && hi.typ != itemString {
					return nil, errorAt(hi, "range needs an upper limit")
				}
				h, err := p.parseValue(k, hi)
				if err != nil {
					return nil, err
				}
				if h.Range {
					return nil, errorAt(hi, "malformed range")
				}
				v = Value{Num: v.Num, Hi: h.Num, Range: true}
			}
			values = append(values, v)
			continue
		}
		if it.typ == itemOp {
			return nil, errorAt(it, "unexpected operator after a list of values")
		}
		break
	}
	if len(values) == 0 {
		return nil, errorAt(kw, "keyword %s needs at least one value", k.name)
	}
	return Match{Key: k.name, Values: values}, nil
}

//parseValue reads a literal for keyword k. For numeric keywords, a:b is a range.
func (p *parser) parseValue(k keyword, it item) (Value, error) {
	switch k.kind {
	case atoms.KindString:
		s := it.val
		//the width is counted in characters, so multi-byte names are never cut mid-rune.
		if r := []rune(s); k.attr == atoms.AttrSegname && len(r) > atoms.MaxSegnameLen {
			t := string(r[:atoms.MaxSegnameLen])
			p.warnings = append(p.warnings, atoms.Warning{Code: atoms.WarnSegnameTruncated,
				Detail: fmt.Sprintf("segname %q in selection truncated to %q", s, t)})
			s = t
		}
		return Value{Str: s}, nil
	}
	if lo, hi, ok := strings.Cut(it.val, ":"); ok && it.typ == itemWord {
		l, err1 := parseNumberKind(lo, k.kind)
		h, err2 := parseNumberKind(hi, k.kind)
		if err1 != nil || err2 != nil {
			return Value{}, errorAt(it, "malformed range for %s", k.name)
		}
		return Value{Num: l, Hi: h, Range: true}, nil
	}
	n, err := parseNumberKind(it.val, k.kind)
	if err != nil {
		return Value{}, errorAt(it, "malformed number for %s", k.name)
	}
	return Value{Num: n}, nil
}

func parseNumber(it item) (float64, error) {
	if it.typ != itemWord {
		return 0, fmt.Errorf("not a number: %s", it.val)
	}
	return parseNumberKind(it.val, atoms.KindFloat)
}

//parseNumberKind parses s, which must be an integer if kind is KindInt.
//Non-finite numbers are not accepted.
func parseNumberKind(s string, kind atoms.Kind) (float64, error) {
	if kind == atoms.KindInt {
		i, err := strconv.Atoi(s)
		return float64(i), err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite number: %s", s)
	}
	return f, nil
}
