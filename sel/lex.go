/*
 * lex.go, part of chemsel.
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
	"strings"
	"unicode"
	"unicode/utf8"
)

type itemType int

const (
	itemError itemType = iota
	itemEOF
	itemWord
	itemString
	itemOp
	itemLParen
	itemRParen
)

const (
	eof       = -1
	lParen    = '('
	rParen    = ')'
	dquote    = '"'
	squote    = '\''
	opChars   = "=<>!~"
	wordBreak = "()\"=<>!"
)

//the operators accepted. "==" is the same as "=".
var operators = map[string]bool{"=": true, "==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true, "=~": true}

type stateFn func(lx *lexer) stateFn

//lexer splits a selection into items. The whole selection is lexed
//before parsing, so the items are kept in a slice.
type lexer struct {
	input string
	start int
	pos   int
	width int
	items []item
}

//item is a token. pos is the byte offset of its first character in the selection.
type item struct {
	typ itemType
	val string
	pos int
}

//lex returns the items in input. The last item is always an itemEOF or an itemError.
func lex(input string) []item {
	lx := &lexer{input: input, items: make([]item, 0, 16)}
	for state := lexAny; state != nil; {
		state = state(lx)
	}
	return lx.items
}

func (lx *lexer) current() string {
	return lx.input[lx.start:lx.pos]
}

func (lx *lexer) emit(typ itemType) {
	lx.emitVal(typ, lx.current())
}

func (lx *lexer) emitVal(typ itemType, val string) {
	lx.items = append(lx.items, item{typ, val, lx.start})
	lx.start = lx.pos
}

func (lx *lexer) next() (r rune) {
	if lx.pos >= len(lx.input) {
		lx.width = 0
		return eof
	}
	r, lx.width = utf8.DecodeRuneInString(lx.input[lx.pos:])
	lx.pos += lx.width
	return r
}

// ignore skips over the pending input before this point.
func (lx *lexer) ignore() {
	lx.start = lx.pos
}

// backup steps back one rune. Can be called only once per call of next.
func (lx *lexer) backup() {
	lx.pos -= lx.width
}

// peek returns but does not consume the next rune in the input.
func (lx *lexer) peek() rune {
	r := lx.next()
	lx.backup()
	return r
}

// errorf stops all lexing by emitting an error and returning `nil`.
func (lx *lexer) errorf(format string, values ...interface{}) stateFn {
	lx.items = append(lx.items, item{itemError, fmt.Sprintf(format, values...), lx.start})
	return nil
}

func lexAny(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case r == eof:
		lx.emit(itemEOF)
		return nil
	case unicode.IsSpace(r):
		lx.ignore()
		return lexAny
	case r == lParen:
		lx.emit(itemLParen)
		return lexAny
	case r == rParen:
		lx.emit(itemRParen)
		return lexAny
	case r == dquote || r == squote:
		return lexQuoted(r)
	case strings.ContainsRune(opChars, r):
		return lexOp
	}
	return lexWord
}

func lexOp(lx *lexer) stateFn {
	for strings.ContainsRune(opChars, lx.peek()) {
		lx.next()
	}
	if !operators[lx.current()] {
		return lx.errorf("unknown operator '%s'", lx.current())
	}
	lx.emit(itemOp)
	return lexAny
}

//lexWord reads until a blank, a parenthesis, a double quote or an operator character.
//Single quotes are allowed inside words, as in the nucleic acid atom name O5'.
func lexWord(lx *lexer) stateFn {
	for {
		r := lx.next()
		if r == eof || unicode.IsSpace(r) || strings.ContainsRune(wordBreak, r) {
			lx.backup()
			break
		}
	}
	lx.emit(itemWord)
	return lexAny
}

//lexQuoted returns the state function that reads a string delimited by quote.
//There are no escapes in quoted strings.
func lexQuoted(quote rune) stateFn {
	return func(lx *lexer) stateFn {
		for {
			r := lx.next()
			if r == eof {
				return lx.errorf("unterminated quoted string")
			}
			if r == quote {
				break
			}
		}
		raw := lx.current()
		lx.emitVal(itemString, raw[1:len(raw)-1])
		return lexAny
	}
}

func (itype itemType) String() string {
	switch itype {
	case itemError:
		return "Error"
	case itemEOF:
		return "EOF"
	case itemWord:
		return "Word"
	case itemString:
		return "String"
	case itemOp:
		return "Operator"
	case itemLParen:
		return "("
	case itemRParen:
		return ")"
	}
	panic(fmt.Sprintf("BUG: Unknown type '%d'.", int(itype)))
}

func (item item) String() string {
	return fmt.Sprintf("(%s, %s)", item.typ.String(), item.val)
}
