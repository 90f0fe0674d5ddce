// Copyright (c) 2013 Uwe Hoffmann. All rights reserved.

/*
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are
met:

   * Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.
   * Redistributions in binary form must reproduce the above
copyright notice, this list of conditions and the following disclaimer
in the documentation and/or other materials provided with the
distribution.
   * Neither the name of Google Inc. nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

package reader

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"strings"
)

// ZipReader walks a ZIP central directory in its on-disk order (spec.md
// 5: entry order is preserved, not re-sorted, unlike the directory-tree
// reader which imposes its own). A trailing-slash name is treated as a
// directory marker even though archive/zip's own IsDir only looks at the
// mode bits, since hand-built archives often omit them (spec.md 4, edge
// cases).
type ZipReader struct {
	f   *os.File
	zr  *zip.Reader
	pos int
}

// NewZip opens path as a ZIP archive.
func NewZip(path string) (*ZipReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	zr, err := zip.NewReader(f, st.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reader: zip: %w", err)
	}
	return &ZipReader{f: f, zr: zr}, nil
}

func (r *ZipReader) Len() int { return len(r.zr.File) }

func (r *ZipReader) Next() (Handle, bool, error) {
	if r.pos >= len(r.zr.File) {
		return Handle{}, false, nil
	}
	f := r.zr.File[r.pos]
	r.pos++

	if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
		return Handle{Name: f.Name, Dir: true}, true, nil
	}

	return Handle{
		Name: f.Name,
		data: func() ([]byte, error) { return readZipEntry(f) },
	}, true, nil
}

// readZipEntry pre-sizes its read buffer from the central directory's
// declared uncompressed size, the same exact-capacity reservation
// discipline the original implementation's zip reader follows (see
// SPEC_FULL.md).
func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("reader: zip: %w", err)
	}
	defer rc.Close()

	buf := &sliceWriter{s: make([]byte, 0, f.UncompressedSize64)}
	if _, err := io.Copy(buf, rc); err != nil {
		return nil, fmt.Errorf("reader: zip: %w", err)
	}
	return buf.s, nil
}

func (r *ZipReader) Close() error {
	return r.f.Close()
}

// sliceWriter appends into a pre-capacitated slice, avoiding
// bytes.Buffer's doubling growth when the exact final size is already
// known from the ZIP central directory.
type sliceWriter struct {
	s []byte
}

func (w *sliceWriter) Write(p []byte) (int, error) {
	w.s = append(w.s, p...)
	return len(p), nil
}
