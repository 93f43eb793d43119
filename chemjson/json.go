/*
 * json.go, part of chemsel.
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

//Package chemjson implements the line-based JSON protocol used by the atomsel
//program to receive a structure and send back selections and bonds, so atomsel
//can be driven by programs written in other languages, for instance via UNIX pipes.
//
//The input is a Header in the first line, followed by one Atom per line, and then by the
//coordinates of each frame, one Coords per atom and line. The input can be compressed
//with zstd or gzip. Each result is sent as one JSON object per line.
package chemjson

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rmera/chemsel/atoms"
	"github.com/rmera/chemsel/v3"
)

//Header is the first line of the input. It describes what follows and what is to be done with it.
type Header struct {
	Atoms      int
	Frames     int
	Selections []string
	Bonds      [][2]int //known bonds, used by fragment and withinbonds.
	GuessBonds bool
}

//Atom is a ready-to-serialize container for the attributes of an atom.
type Atom struct {
	Name      string
	Type      string  `json:",omitempty"`
	Resname   string  `json:",omitempty"`
	Resid     int     `json:",omitempty"`
	Chain     string  `json:",omitempty"`
	Segname   string  `json:",omitempty"`
	Insertion string  `json:",omitempty"`
	Altloc    string  `json:",omitempty"`
	Beta      float64 `json:",omitempty"`
	Occupancy float64 `json:",omitempty"`
	Element   string  `json:",omitempty"`
}

//Coords is a ready-to-serialize container for the coordinates of an atom.
type Coords struct {
	Coords []float64
}

//SelectionResult holds the indexes of the atoms selected in each frame.
type SelectionResult struct {
	Selection string
	Canonical string
	Frames    [][]int
	Warnings  []string `json:",omitempty"`
}

//BondsResult holds the bonds guessed for the first frame.
type BondsResult struct {
	Bonds     [][2]int
	Distances []float64
	Warnings  []string `json:",omitempty"`
}

//Error is an easily JSON-serializable error type.
type Error struct {
	deco        []string
	IsError     bool //If this is false (no error) all the other fields will be at their zero-values.
	InHeader    bool
	InStructure bool
	InSelection bool
	InBonds     bool
	Selection   string //Which selection?
	Function    string //which go function gave the error
	Message     string //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Critical always returns true.
func (J *Error) Critical() bool { return true }

//Marshal serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//NewError takes an error and some additional info to create a json-marshal-able error.
//where is one of "header", "structure", "selection" or "bonds".
func NewError(where, function string, err error) *Error {
	jerr := &Error{IsError: true, Function: function, Message: err.Error(), deco: []string{function}}
	switch where {
	case "header":
		jerr.InHeader = true
	case "structure":
		jerr.InStructure = true
	case "bonds":
		jerr.InBonds = true
	default:
		jerr.InSelection = true
	}
	return jerr
}

//DecodeHeader reads the header from the first line of stream.
func DecodeHeader(stream *bufio.Reader) (*Header, *Error) {
	line, err := stream.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		return nil, NewError("header", "DecodeHeader", err)
	}
	ret := new(Header)
	if err = json.Unmarshal(line, ret); err != nil {
		return nil, NewError("header", "DecodeHeader", err)
	}
	if ret.Atoms < 0 || ret.Frames < 0 {
		return nil, NewError("header", "DecodeHeader", fmt.Errorf("invalid number of atoms (%d) or frames (%d)", ret.Atoms, ret.Frames))
	}
	return ret, nil
}

//readLine returns the next non-empty line of stream.
func readLine(stream *bufio.Reader) ([]byte, error) {
	for {
		line, err := stream.ReadBytes('\n')
		if len(strings.TrimSpace(string(line))) > 0 {
			return line, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

//DecodeStructure reads the atoms and frames announced in h from stream.
//The columns returned can be given directly to atoms.NewAtomSet.
func DecodeStructure(stream *bufio.Reader, h *Header) (atoms.Columns, []*atoms.Frame, *Error) {
	const funcname = "DecodeStructure" //for the error
	n := h.Atoms
	//The header is not trusted to size the columns, they grow as the atoms are actually read.
	c := prealloc(n)
	cols := atoms.Columns{
		Name:      make([]string, 0, c),
		Type:      make([]string, 0, c),
		Resname:   make([]string, 0, c),
		Resid:     make([]int, 0, c),
		Chain:     make([]string, 0, c),
		Segname:   make([]string, 0, c),
		Insertion: make([]string, 0, c),
		Altloc:    make([]string, 0, c),
		Beta:      make([]float64, 0, c),
		Occupancy: make([]float64, 0, c),
		Element:   make([]string, 0, c),
		Bonds:     h.Bonds,
	}
	for i := 0; i < n; i++ {
		line, err := readLine(stream)
		if err != nil {
			return cols, nil, NewError("structure", funcname, fmt.Errorf("reading atom %d: %w", i, err))
		}
		at := new(Atom)
		if err = json.Unmarshal(line, at); err != nil {
			return cols, nil, NewError("structure", funcname, fmt.Errorf("atom %d: %w", i, err))
		}
		cols.Name = append(cols.Name, at.Name)
		cols.Type = append(cols.Type, at.Type)
		cols.Resname = append(cols.Resname, at.Resname)
		cols.Resid = append(cols.Resid, at.Resid)
		cols.Chain = append(cols.Chain, at.Chain)
		cols.Segname = append(cols.Segname, at.Segname)
		cols.Insertion = append(cols.Insertion, at.Insertion)
		cols.Altloc = append(cols.Altloc, at.Altloc)
		cols.Beta = append(cols.Beta, at.Beta)
		cols.Occupancy = append(cols.Occupancy, at.Occupancy)
		cols.Element = append(cols.Element, at.Element)
	}
	frames := make([]*atoms.Frame, 0, prealloc(h.Frames))
	for f := 0; f < h.Frames; f++ {
		F, err := DecodeCoords(stream, n)
		if err != nil {
			err.Decorate(fmt.Sprintf("%s: frame %d", funcname, f))
			return cols, frames, err
		}
		frames = append(frames, F)
	}
	return cols, frames, nil
}

//maxPrealloc is the largest number of elements allocated ahead of reading them.
const maxPrealloc = 1 << 16

func prealloc(n int) int {
	return max(0, min(n, maxPrealloc))
}

//DecodeCoords decodes atomnumber lines from stream, each containing a Coords, into a Frame.
func DecodeCoords(stream *bufio.Reader, atomnumber int) (*atoms.Frame, *Error) {
	const funcname = "DecodeCoords"
	raw := make([]float64, 0, 3*prealloc(atomnumber))
	ctemp := new(Coords)
	for i := 0; i < atomnumber; i++ {
		line, err := readLine(stream)
		if err != nil {
			return nil, NewError("structure", funcname, fmt.Errorf("reading coordinates of atom %d: %w", i, err))
		}
		ctemp.Coords = ctemp.Coords[:0]
		if err = json.Unmarshal(line, ctemp); err != nil {
			return nil, NewError("structure", funcname, err)
		}
		if len(ctemp.Coords) != 3 {
			return nil, NewError("structure", funcname, fmt.Errorf("atom %d has %d coordinates", i, len(ctemp.Coords)))
		}
		raw = append(raw, ctemp.Coords...)
	}
	M, err := v3.NewMatrix(raw)
	if err != nil {
		return nil, NewError("structure", funcname, err)
	}
	return atoms.FrameFromMatrix(M), nil
}

//EncodeStructure writes h, the atoms in cols and the frames to out, in the format read by DecodeHeader
//and DecodeStructure. h.Atoms and h.Frames are set from the data.
func EncodeStructure(out io.Writer, h Header, n int, cols atoms.Columns, frames []*atoms.Frame) *Error {
	const funcname = "EncodeStructure"
	h.Atoms, h.Frames = n, len(frames)
	if h.Bonds == nil {
		h.Bonds = cols.Bonds
	}
	enc := json.NewEncoder(out)
	if err := enc.Encode(h); err != nil {
		return NewError("header", funcname, err)
	}
	str := func(c []string, i int) string {
		if c == nil {
			return ""
		}
		return c[i]
	}
	for i := 0; i < n; i++ {
		at := Atom{Name: str(cols.Name, i), Type: str(cols.Type, i), Resname: str(cols.Resname, i),
			Chain: str(cols.Chain, i), Segname: str(cols.Segname, i), Insertion: str(cols.Insertion, i),
			Altloc: str(cols.Altloc, i), Element: str(cols.Element, i)}
		if cols.Resid != nil {
			at.Resid = cols.Resid[i]
		}
		if cols.Beta != nil {
			at.Beta = cols.Beta[i]
		}
		if cols.Occupancy != nil {
			at.Occupancy = cols.Occupancy[i]
		}
		if err := enc.Encode(at); err != nil {
			return NewError("structure", funcname, err)
		}
	}
	for _, F := range frames {
		if err := EncodeCoords(F, enc); err != nil {
			return err
		}
	}
	return nil
}

//EncodeCoords encodes the coordinates of a frame, one atom per line.
func EncodeCoords(F *atoms.Frame, enc *json.Encoder) *Error {
	c := &Coords{Coords: make([]float64, 3)}
	M := F.Matrix()
	for i := 0; i < M.NVecs(); i++ {
		v := M.Vec(i)
		c.Coords[0], c.Coords[1], c.Coords[2] = v.X, v.Y, v.Z
		if err := enc.Encode(c); err != nil {
			return NewError("structure", "EncodeCoords", err)
		}
	}
	return nil
}

//Send marshals v and writes it to out as a single line.
func Send(out io.Writer, v interface{}) *Error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(v); err != nil {
		return NewError("selection", "Send", err)
	}
	return nil
}

//WarningStrings returns the warnings as strings, or nil if there are none.
func WarningStrings(ws []atoms.Warning) []string {
	if len(ws) == 0 {
		return nil
	}
	ret := make([]string, len(ws))
	for i, w := range ws {
		ret[i] = w.String()
	}
	return ret
}
