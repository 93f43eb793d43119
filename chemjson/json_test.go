/*
 * json_test.go, part of chemsel.
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

package chemjson

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/rmera/chemsel/atoms"
)

func testStructure(Te *testing.T) (atoms.Columns, []*atoms.Frame) {
	cols := atoms.Columns{
		Name:    []string{"N", "CA", "C"},
		Resname: []string{"GLY", "GLY", "GLY"},
		Resid:   []int{1, 1, 1},
		Element: []string{"N", "C", "C"},
		Beta:    []float64{1.5, 0, 2},
		Bonds:   [][2]int{{0, 1}, {1, 2}},
	}
	frames, err := atoms.SplitFrames(3, []float32{0, 0, 0, 1.5, 0, 0, 2.5, 1, 0, 0, 0, 1, 1.5, 0, 1, 2.5, 1, 1})
	if err != nil {
		Te.Fatal(err)
	}
	return cols, frames
}

func roundTrip(Te *testing.T, format string, gz bool) {
	cols, frames := testStructure(Te)
	var buf bytes.Buffer
	var w interface {
		Write([]byte) (int, error)
		Close() error
	}
	var err error
	if gz {
		w = gzip.NewWriter(&buf)
	} else if w, err = NewWriter(&buf, format); err != nil {
		Te.Fatal(err)
	}
	if err := EncodeStructure(w, Header{Selections: []string{"name CA"}, GuessBonds: true}, 3, cols, frames); err != nil {
		Te.Fatal(err)
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
	in, closer, err := NewReader(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	defer closer.Close()
	h, jerr := DecodeHeader(in)
	if jerr != nil {
		Te.Fatal(jerr)
	}
	if h.Atoms != 3 || h.Frames != 2 || !h.GuessBonds || !reflect.DeepEqual(h.Selections, []string{"name CA"}) {
		Te.Errorf("Wrong header: %+v", h)
	}
	cols2, frames2, jerr := DecodeStructure(in, h)
	if jerr != nil {
		Te.Fatal(jerr)
	}
	if !reflect.DeepEqual(cols2.Name, cols.Name) || !reflect.DeepEqual(cols2.Resid, cols.Resid) ||
		!reflect.DeepEqual(cols2.Beta, cols.Beta) || !reflect.DeepEqual(cols2.Bonds, cols.Bonds) {
		Te.Errorf("Columns changed in the round trip: %+v", cols2)
	}
	if len(frames2) != 2 {
		Te.Fatalf("Expected 2 frames, got %d", len(frames2))
	}
	for i := range frames {
		if !reflect.DeepEqual(frames[i].Coords(), frames2[i].Coords()) {
			Te.Errorf("Frame %d changed: %v %v", i, frames[i].Coords(), frames2[i].Coords())
		}
	}
}

func TestRoundTrip(Te *testing.T) {
	roundTrip(Te, "", false)
}

func TestRoundTripZstd(Te *testing.T) {
	roundTrip(Te, "zstd", false)
}

func TestRoundTripGzip(Te *testing.T) {
	roundTrip(Te, "", true)
}

func TestRoundTripLz4(Te *testing.T) {
	roundTrip(Te, "lz4", false)
}

func TestDecodeErrors(Te *testing.T) {
	in, _, _ := NewReader(bytes.NewBufferString(`{"Atoms":2,"Frames":1}` + "\n" + `{"Name":"CA"}` + "\n" + `{"Name":"CB"}` + "\n" + `{"Coords":[0,0]}` + "\n"))
	h, err := DecodeHeader(in)
	if err != nil {
		Te.Fatal(err)
	}
	_, _, err = DecodeStructure(in, h)
	if err == nil || !err.InStructure {
		Te.Errorf("Expected a structure error, got %v", err)
	}
	in, _, _ = NewReader(bytes.NewBufferString(`{"Atoms":-1}` + "\n"))
	if _, err := DecodeHeader(in); err == nil || !err.InHeader {
		Te.Errorf("Expected a header error, got %v", err)
	}
	if m := NewError("bonds", "Test", err).Marshal(); !bytes.Contains(m, []byte(`"InBonds":true`)) {
		Te.Errorf("Wrong serialized error: %s", m)
	}
}

//A header announcing far more atoms or frames than the stream contains gives a structure
//error once the data runs out, without sizing anything after the announced numbers.
func TestDecodeOversizedHeader(Te *testing.T) {
	for _, header := range []string{`{"Atoms":1000000000000000,"Frames":1}`, `{"Atoms":1,"Frames":1000000000000000}`} {
		in, _, _ := NewReader(bytes.NewBufferString(header + "\n" + `{"Name":"CA"}` + "\n" + `{"Coords":[1,2,3]}` + "\n"))
		h, err := DecodeHeader(in)
		if err != nil {
			Te.Fatal(err)
		}
		cols, frames, err := DecodeStructure(in, h)
		if err == nil || !err.InStructure {
			Te.Errorf("%s: expected a structure error, got %v", header, err)
		}
		if h.Atoms == 1 && (len(frames) != 1 || frames[0].Vec(0).Z != 3 || cols.Name[0] != "CA") {
			Te.Errorf("%s: the complete data should have been read, got %v %v", header, cols.Name, frames)
		}
	}
}
