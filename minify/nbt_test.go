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
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"io"
	"testing"

	"github.com/ardenfel/packrat/config"
)

func checkNBTRoundTrips(t *testing.T, store *config.Store, input []byte, want []byte) {
	out, err := NBT(store, input)
	if err != nil {
		t.Fatalf("NBT() error: %v", err)
	}
	r, err := gzip.NewReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("NBT() output isn't valid gzip: %v", err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading NBT() gzip output: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("NBT() round-trip = %v, want %v", got, want)
	}
}

func TestNBTRawTagStreamRewrappedAsGzip(t *testing.T) {
	store := config.NewStore()
	raw := []byte{0x0a, 'h', 'e', 'l', 'l', 'o', 0x00}
	checkNBTRoundTrips(t, store, raw, raw)
}

func TestNBTGzipInputRewrapped(t *testing.T) {
	store := config.NewStore()
	raw := []byte{0x0a, 1, 2, 3, 4, 5}
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(raw); err != nil {
		t.Fatalf("fixture setup: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("fixture setup: %v", err)
	}
	checkNBTRoundTrips(t, store, buf.Bytes(), raw)
}

func TestNBTZlibInputRewrapped(t *testing.T) {
	store := config.NewStore()
	raw := []byte{0x0a, 9, 8, 7, 6}
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(raw); err != nil {
		t.Fatalf("fixture setup: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("fixture setup: %v", err)
	}
	checkNBTRoundTrips(t, store, buf.Bytes(), raw)
}

func TestNBTUnrecognizedContainerByteErrors(t *testing.T) {
	store := config.NewStore()
	if _, err := NBT(store, []byte{0xAB, 1, 2, 3}); err == nil {
		t.Fatalf("expected error for unrecognized container byte")
	}
}

func TestNBTEmptyInputErrors(t *testing.T) {
	store := config.NewStore()
	if _, err := NBT(store, nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestNBTUsesZopfliWhenEnabled(t *testing.T) {
	store := config.NewStore()
	cfg := store.NBT()
	cfg.UseZopfli = config.On(1)
	store.SetNBT(cfg)

	raw := []byte{0x0a, 'z', 'o', 'p', 'f', 'l', 'i'}
	checkNBTRoundTrips(t, store, raw, raw)
}
