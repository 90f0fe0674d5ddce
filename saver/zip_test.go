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
	"path/filepath"
	"testing"

	"github.com/ardenfel/packrat/config"
	"github.com/ardenfel/packrat/entry"
)

func openWrittenZip(t *testing.T, path string) *zip.ReadCloser {
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("opening written zip: %v", err)
	}
	return zr
}

func TestZipSaverStoresLowEntropyBelowThresholdAsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.zip")
	s, err := NewZip(path, &config.JarConfig{})
	if err != nil {
		t.Fatalf("NewZip() error: %v", err)
	}

	body := []byte("tiny")
	if err := s.Save(entry.Saving{Name: "small.txt", Body: body, CompressMin: 64}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	zr := openWrittenZip(t, path)
	defer zr.Close()
	if len(zr.File) != 1 {
		t.Fatalf("got %d entries, want 1", len(zr.File))
	}
	if zr.File[0].Method != zip.Store {
		t.Fatalf("method = %v, want Store for a below-threshold entry", zr.File[0].Method)
	}
}

func TestZipSaverCacheDirEntryIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.zip")
	s, err := NewZip(path, &config.JarConfig{KeepDirs: true})
	if err != nil {
		t.Fatalf("NewZip() error: %v", err)
	}

	if err := s.Save(entry.Saving{Name: ".cache/", Dir: true}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Save(entry.Saving{Name: "kept/", Dir: true}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	zr := openWrittenZip(t, path)
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name == ".cache/" {
			t.Fatalf("expected .cache/ to be skipped, found it")
		}
	}
}

func TestZipSaverDropsDirectoriesWithoutKeepDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.zip")
	s, err := NewZip(path, &config.JarConfig{KeepDirs: false})
	if err != nil {
		t.Fatalf("NewZip() error: %v", err)
	}
	if err := s.Save(entry.Saving{Name: "some/dir/", Dir: true}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	zr := openWrittenZip(t, path)
	defer zr.Close()
	if len(zr.File) != 0 {
		t.Fatalf("got %d entries, want 0", len(zr.File))
	}
}

func TestZipSaverHighEntropyOverThresholdStoresRatherThanDeflate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.zip")
	s, err := NewZip(path, &config.JarConfig{})
	if err != nil {
		t.Fatalf("NewZip() error: %v", err)
	}

	body := make([]byte, 4096)
	x := uint32(98765)
	for i := range body {
		x = x*1664525 + 1013904223
		body[i] = byte(x >> 24)
	}

	if err := s.Save(entry.Saving{Name: "noise.bin", Body: body, CompressMin: 8}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	zr := openWrittenZip(t, path)
	defer zr.Close()
	if zr.File[0].Method != zip.Store {
		t.Fatalf("method = %v, want Store for noise that doesn't compress", zr.File[0].Method)
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("opening saved entry: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("reading saved entry: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Fatalf("saved body mismatch")
	}
}

func TestZipSaverCreateFailsForBadPath(t *testing.T) {
	if _, err := NewZip(filepath.Join(t.TempDir(), "missing-dir", "out.zip"), &config.JarConfig{}); err == nil {
		t.Fatalf("expected error creating zip under a nonexistent directory")
	}
}
