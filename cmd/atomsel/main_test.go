/*
 * main_test.go, part of chemsel.
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

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/rmera/chemsel/chemjson"
)

const input = `{"Atoms":3,"Frames":1,"Selections":["resname ALA and name C1"]}
{"Name":"C1","Resname":"ALA","Resid":1,"Element":"C"}
{"Name":"C2","Resname":"ALA","Resid":1,"Element":"C"}
{"Name":"O1","Resname":"ALA","Resid":1,"Element":"O"}
{"Coords":[0,0,0]}
{"Coords":[1.5,0,0]}
{"Coords":[11.5,0,0]}
`

func TestRun(Te *testing.T) {
	var out, errout bytes.Buffer
	code := run([]string{"-log", "none", "-bonds", "-s", "within 2 of index 0"}, strings.NewReader(input), &out, &errout)
	if code != exitSuccess {
		Te.Fatalf("Exit code %d: %s", code, errout.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		Te.Fatalf("Expected 3 lines of output, got %d: %s", len(lines), out.String())
	}
	var s1, s2 chemjson.SelectionResult
	if err := json.Unmarshal([]byte(lines[0]), &s1); err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(s1.Frames, [][]int{{0}}) {
		Te.Errorf("Wrong selection: %+v", s1)
	}
	if err := json.Unmarshal([]byte(lines[1]), &s2); err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(s2.Frames, [][]int{{0, 1}}) {
		Te.Errorf("Wrong within selection: %+v", s2)
	}
	var b chemjson.BondsResult
	if err := json.Unmarshal([]byte(lines[2]), &b); err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(b.Bonds, [][2]int{{0, 1}}) {
		Te.Errorf("Wrong bonds: %+v", b)
	}
}

func TestRunErrors(Te *testing.T) {
	var out, errout bytes.Buffer
	if code := run([]string{"-log", "none", "-s", "name CA and ("}, strings.NewReader(input), &out, &errout); code != exitFailure {
		Te.Errorf("Expected failure for a bad selection, got %d", code)
	}
	var jerr chemjson.Error
	if err := json.Unmarshal(out.Bytes()[strings.LastIndex(strings.TrimSpace(out.String()), "\n")+1:], &jerr); err != nil {
		Te.Fatal(err)
	}
	if !jerr.IsError || !jerr.InSelection || jerr.Selection != "name CA and (" {
		Te.Errorf("Wrong error: %+v", jerr)
	}
	if code := run([]string{"-log", "xml"}, strings.NewReader(input), &out, &errout); code != exitUsageError {
		Te.Errorf("Expected usage error, got %d", code)
	}
	if code := run([]string{"-log", "none", "-z", "bzip2"}, strings.NewReader(input), &out, &errout); code != exitUsageError {
		Te.Errorf("Expected usage error for an unknown compression, got %d", code)
	}
}

//decompressed returns the lines of the compressed output in out.
func decompressed(Te *testing.T, out *bytes.Buffer) []string {
	r, closer, err := chemjson.NewReader(out)
	if err != nil {
		Te.Fatal(err)
	}
	defer closer.Close()
	plain, err := io.ReadAll(r)
	if err != nil {
		Te.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(plain)), "\n")
}

func TestRunCompressed(Te *testing.T) {
	for _, format := range []string{"zstd", "lz4"} {
		var out, errout bytes.Buffer
		code := run([]string{"-log", "none", "-z", format, "-bonds"}, strings.NewReader(input), &out, &errout)
		if code != exitSuccess {
			Te.Fatalf("%s: exit code %d: %s", format, code, errout.String())
		}
		if bytes.HasPrefix(out.Bytes(), []byte("{")) {
			Te.Errorf("%s: the output was not compressed", format)
		}
		lines := decompressed(Te, &out)
		if len(lines) != 2 {
			Te.Fatalf("%s: expected 2 lines of output, got %d: %v", format, len(lines), lines)
		}
		var s chemjson.SelectionResult
		if err := json.Unmarshal([]byte(lines[0]), &s); err != nil {
			Te.Fatal(err)
		}
		if !reflect.DeepEqual(s.Frames, [][]int{{0}}) {
			Te.Errorf("%s: wrong selection: %+v", format, s)
		}
		//errors are compressed along with the rest of the output.
		out.Reset()
		if code := run([]string{"-log", "none", "-z", format, "-s", "name CA and ("}, strings.NewReader(input), &out, &errout); code != exitFailure {
			Te.Errorf("%s: expected failure for a bad selection, got %d", format, code)
		}
		lines = decompressed(Te, &out)
		var jerr chemjson.Error
		if err := json.Unmarshal([]byte(lines[len(lines)-1]), &jerr); err != nil {
			Te.Fatal(err)
		}
		if !jerr.IsError || jerr.Selection != "name CA and (" {
			Te.Errorf("%s: wrong error: %+v", format, jerr)
		}
	}
}
