/*
 * compress.go, part of chemsel.
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
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

//zstd.Decoder doesn't implement io.ReadCloser, as its Close returns nothing.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//NewReader returns a buffered reader for r, which is decompressed if it starts
//with the zstd, gzip or lz4 frame magic numbers, and read as is otherwise. The returned
//closer releases the decompressor, and doesn't close r.
func NewReader(r io.Reader) (*bufio.Reader, io.Closer, error) {
	in := bufio.NewReader(r)
	magic, _ := in.Peek(len(zstdMagic))
	switch {
	case bytes.HasPrefix(magic, zstdMagic):
		d, err := zstd.NewReader(in)
		if err != nil {
			return nil, nil, NewError("header", "NewReader", err)
		}
		return bufio.NewReader(d), zstdCloser{d}, nil
	case bytes.HasPrefix(magic, gzipMagic):
		d, err := gzip.NewReader(in)
		if err != nil {
			return nil, nil, NewError("header", "NewReader", err)
		}
		return bufio.NewReader(d), d, nil
	case bytes.HasPrefix(magic, lz4Magic):
		return bufio.NewReader(lz4.NewReader(in)), io.NopCloser(nil), nil
	}
	return in, io.NopCloser(nil), nil
}

//NewWriter returns a writer that compresses with the given format, "zstd" or "lz4",
//or writes directly to w if format is empty. The returned writer must be closed
//to flush the data.
func NewWriter(w io.Writer, format string) (io.WriteCloser, error) {
	switch format {
	case "":
		return nopWriteCloser{w}, nil
	case "zstd":
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case "lz4":
		return lz4.NewWriter(w), nil
	}
	return nil, fmt.Errorf("unknown compression format %q", format)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
