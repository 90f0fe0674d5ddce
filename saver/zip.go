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

package saver

import (
	"archive/zip"
	"bytes"
	"io"
	"os"

	"github.com/ardenfel/packrat/config"
	"github.com/ardenfel/packrat/entry"
	"github.com/ardenfel/packrat/oracle"
	"github.com/ardenfel/packrat/zopfli"
)

// cacheDirEntry is the one directory name the ZIP saver special-cases:
// an exact match (not a prefix match — entries actually nested under
// .cache/ never reach the saver, since the classifier already dropped
// them) gets skipped so a repacked archive never carries an empty
// .cache/ marker forward.
const cacheDirEntry = ".cache/"

// zipZopfliCompressor mirrors minify/jar.go's compressor: buffer
// everything, zopfli-encode once on Close.
type zipZopfliCompressor struct {
	out        io.Writer
	buf        bytes.Buffer
	iterations int
}

func (c *zipZopfliCompressor) Write(p []byte) (int, error) { return c.buf.Write(p) }

func (c *zipZopfliCompressor) Close() error {
	deflated, err := zopfli.Encode(c.buf.Bytes(), c.iterations)
	if err != nil {
		return err
	}
	_, err = c.out.Write(deflated)
	return err
}

// ZipSaver writes entries into a fresh ZIP archive at path, deciding
// store vs. deflate per entry via the same oracle the minifiers use.
type ZipSaver struct {
	f       *os.File
	zw      *zip.Writer
	keepDirs bool
}

// NewZip creates path and opens a ZIP writer over it. When zopfli is
// enabled, the writer's Deflate compressor is swapped for the zopfli
// package's iterative encoder, the same registration jar.go's minifier
// performs for nested-JAR re-zips.
func NewZip(path string, cfg *config.JarConfig) (*ZipSaver, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	zw := zip.NewWriter(f)
	if cfg.UseZopfli.Enabled() {
		iterations := cfg.UseZopfli.Iterations()
		zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return &zipZopfliCompressor{out: out, iterations: iterations}, nil
		})
	}
	return &ZipSaver{f: f, zw: zw, keepDirs: cfg.KeepDirs}, nil
}

func (s *ZipSaver) Save(e entry.Saving) error {
	if e.Dir {
		if e.Name == cacheDirEntry || !s.keepDirs {
			return nil
		}
		_, err := s.zw.CreateHeader(&zip.FileHeader{Name: e.Name, Method: zip.Store})
		return err
	}

	hdr := &zip.FileHeader{Name: e.Name}
	if oracle.ShouldDeflate(e.Body, e.CompressMin) {
		hdr.Method = zip.Deflate
	} else {
		hdr.Method = zip.Store
	}

	w, err := s.zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = w.Write(e.Body)
	return err
}

func (s *ZipSaver) Close() error {
	if err := s.zw.Close(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
