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

package minify

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/ardenfel/packrat/config"
	"github.com/ardenfel/packrat/oracle"
	"github.com/ardenfel/packrat/zopfli"
)

// jarCompressMin is the oracle threshold a nested JAR's entries are
// measured against (spec.md 4.4.6); nested entries are never further
// classified by name or extension, only store-vs-deflate decided.
const jarCompressMin = 24

// zopfliCompressor registers a zip.Deflate compressor backed by the
// zopfli package instead of archive/zip's default flate.Writer: zopfli
// buffers everything written to it and only runs its iterative encode on
// Close, producing a smaller raw DEFLATE stream than a single-pass
// flate.Writer at the cost of doing the encode in one shot.
type zopfliCompressor struct {
	out        io.Writer
	buf        bytes.Buffer
	iterations int
}

func (c *zopfliCompressor) Write(p []byte) (int, error) { return c.buf.Write(p) }

func (c *zopfliCompressor) Close() error {
	deflated, err := zopfli.Encode(c.buf.Bytes(), c.iterations)
	if err != nil {
		return err
	}
	_, err = c.out.Write(deflated)
	return err
}

// JAR implements the nested-JAR minifier (spec.md 4.4.6): re-zip every
// entry of an embedded JAR, skipping directory entries when KeepDirs is
// false, and for each file entry run the same compress-or-store oracle
// the outer archive uses. Nested entries are not recursively minified —
// a JAR inside a JAR is repacked once at the outer pass and left alone
// here.
func JAR(store *config.Store, input []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(input), int64(len(input)))
	if err != nil {
		return nil, fmt.Errorf("minify: jar: %w", err)
	}

	cfg := store.JAR()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if cfg.UseZopfli.Enabled() {
		iterations := cfg.UseZopfli.Iterations()
		zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return &zopfliCompressor{out: out, iterations: iterations}, nil
		})
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			if !cfg.KeepDirs {
				continue
			}
			if _, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Store}); err != nil {
				return nil, fmt.Errorf("minify: jar: %w", err)
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("minify: jar: %w", err)
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("minify: jar: %w", err)
		}

		if err := writeJarEntry(zw, f.Name, body); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("minify: jar: %w", err)
	}
	return buf.Bytes(), nil
}

func writeJarEntry(zw *zip.Writer, name string, body []byte) error {
	hdr := &zip.FileHeader{Name: name}
	if oracle.ShouldDeflate(body, jarCompressMin) {
		hdr.Method = zip.Deflate
	} else {
		hdr.Method = zip.Store
	}

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("minify: jar: %w", err)
	}
	_, err = w.Write(body)
	return err
}
