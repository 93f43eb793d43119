/*
 * main.go, part of chemsel.
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

//atomsel reads a structure in the chemjson format, evaluates atom selections on each
//of its frames and/or guesses its bonds, and writes the results as JSON lines.
//
//	atomsel [-s selection]... [-bonds] [-table radii.toml] [-prune] [-cpus n] [-log text|json|none] [-z zstd|lz4] [file]
//
//The structure is read from file, or from the standard input if file is "-" or not given.
//The input can be compressed. With -z, the output is compressed too.
//Selections given with -s are evaluated after the ones in the header of the input.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rmera/chemsel"
	"github.com/rmera/chemsel/atoms"
	"github.com/rmera/chemsel/bonds"
	"github.com/rmera/chemsel/chemjson"
)

const (
	exitSuccess    = 0
	exitFailure    = 1
	exitUsageError = 2
)

//selFlags collects the repeated -s flags.
type selFlags []string

func (s *selFlags) String() string { return strings.Join(*s, "; ") }

func (s *selFlags) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type args struct {
	sels     selFlags
	bonds    bool
	table    string
	prune    bool
	cpus     int
	logStyle string
	compress string
	infile   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	f := flag.NewFlagSet("atomsel", flag.ContinueOnError)
	f.SetOutput(stderr)
	var a args
	f.Var(&a.sels, "s", "selection to evaluate (can be repeated)")
	f.BoolVar(&a.bonds, "bonds", false, "guess the bonds for the first frame")
	f.StringVar(&a.table, "table", "", "TOML file with covalent radii and thresholds for -bonds")
	f.BoolVar(&a.prune, "prune", false, "remove bonds in excess of the maximum for each element")
	f.IntVar(&a.cpus, "cpus", 0, "frames evaluated at the same time (default: number of CPUs)")
	f.StringVar(&a.logStyle, "log", "text", "format of the warnings in the standard error: text, json or none")
	f.StringVar(&a.compress, "z", "", "compress the output with zstd or lz4 (default: no compression)")
	if err := f.Parse(argv); err != nil {
		return exitUsageError
	}
	if f.NArg() > 1 {
		fmt.Fprintln(stderr, "Too many args\natomsel [..] [file]")
		f.Usage()
		return exitUsageError
	}
	if f.NArg() == 1 {
		a.infile = f.Arg(0)
	}
	o, err := options(&a, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsageError
	}
	var in io.Reader = stdin
	if a.infile != "" && a.infile != "-" {
		fp, err := os.Open(a.infile)
		if err != nil {
			fmt.Fprintln(stderr, "Input file:", err)
			return exitFailure
		}
		defer fp.Close()
		in = fp
	}
	w, err := chemjson.NewWriter(stdout, a.compress)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsageError
	}
	code := exitSuccess
	if jerr := process(context.Background(), &a, o, in, w); jerr != nil {
		w.Write(append(jerr.Marshal(), '\n'))
		fmt.Fprintln(stderr, jerr)
		code = exitFailure
	}
	//the error line, if any, also goes through the compressor.
	if err := w.Close(); err != nil {
		fmt.Fprintln(stderr, "Output:", err)
		return exitFailure
	}
	return code
}

//options builds the library options from the command line arguments.
func options(a *args, stderr io.Writer) (*chemsel.Options, error) {
	o := chemsel.DefaultOptions()
	o.Cpus(a.cpus)
	o.Prune(a.prune)
	switch a.logStyle {
	case "text":
		o.Logger(chemsel.NewTextLogger(stderr, slog.LevelInfo))
	case "json":
		o.Logger(chemsel.NewJSONLogger(stderr, slog.LevelInfo))
	case "none":
		o.Logger(chemsel.NoopLogger())
	default:
		return nil, fmt.Errorf("unknown log format %q", a.logStyle)
	}
	if a.table == "" {
		return o, nil
	}
	fp, err := os.Open(a.table)
	if err != nil {
		return nil, fmt.Errorf("radii table: %w", err)
	}
	defer fp.Close()
	t, err := bonds.ReadTable(fp)
	if err != nil {
		return nil, err
	}
	o.Table(t)
	return o, nil
}

func process(ctx context.Context, a *args, o *chemsel.Options, in io.Reader, out io.Writer) *chemjson.Error {
	stream, closer, err := chemjson.NewReader(in)
	if err != nil {
		return chemjson.NewError("header", "process", err)
	}
	defer closer.Close()
	h, jerr := chemjson.DecodeHeader(stream)
	if jerr != nil {
		return jerr
	}
	cols, frames, jerr := chemjson.DecodeStructure(stream, h)
	if jerr != nil {
		return jerr
	}
	set, err := atoms.NewAtomSet(h.Atoms, cols)
	if err != nil {
		return chemjson.NewError("structure", "process", err)
	}
	for _, text := range append(h.Selections, a.sels...) {
		s, err := chemsel.CompileSelection(text)
		if err != nil {
			jerr := chemjson.NewError("selection", "process", err)
			jerr.Selection = text
			return jerr
		}
		res, err := chemsel.Evaluate(ctx, s, set, frames, o)
		if err != nil {
			jerr := chemjson.NewError("selection", "process", err)
			jerr.Selection = text
			return jerr
		}
		sr := &chemjson.SelectionResult{Selection: text, Canonical: s.String(), Frames: make([][]int, len(res.Masks)),
			Warnings: chemjson.WarningStrings(res.Warnings)}
		for i := range res.Masks {
			sr.Frames[i] = res.Indexes(i)
		}
		if jerr := chemjson.Send(out, sr); jerr != nil {
			return jerr
		}
	}
	if !a.bonds && !h.GuessBonds {
		return nil
	}
	if len(frames) == 0 {
		return chemjson.NewError("bonds", "process", atoms.NewDataError("process", "no coordinates to guess bonds"))
	}
	b, err := chemsel.GuessBonds(set, frames[:1], o)
	if err != nil {
		return chemjson.NewError("bonds", "process", err)
	}
	return chemjson.Send(out, &chemjson.BondsResult{Bonds: b.Bonds, Distances: b.Distances, Warnings: chemjson.WarningStrings(b.Warnings)})
}
