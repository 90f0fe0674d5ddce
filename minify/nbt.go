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
	"fmt"
	"io"

	kgzip "github.com/klauspost/compress/gzip"

	"github.com/ardenfel/packrat/config"
	"github.com/ardenfel/packrat/zopfli"
)

// NBT implements the NBT minifier (spec.md 4.4.5). This does not parse
// the NBT tag tree at all: the only thing this module ever re-encodes is
// the container framing a .dat/.nbt file is wrapped in. The container is
// auto-detected from its first byte (31 -> GZip, 120 -> Zlib, anything in
// 0..=12 -> a raw, unwrapped tag stream) and re-emitted as GZip, using the
// zopfli encoder when config asks for it.
func NBT(store *config.Store, input []byte) ([]byte, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("minify: nbt: empty input")
	}

	var raw []byte
	switch {
	case input[0] == 0x1f:
		r, err := gzip.NewReader(bytes.NewReader(input))
		if err != nil {
			return nil, fmt.Errorf("minify: nbt: %w", err)
		}
		defer r.Close()
		raw, err = io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("minify: nbt: %w", err)
		}
	case input[0] == 0x78:
		r, err := zlib.NewReader(bytes.NewReader(input))
		if err != nil {
			return nil, fmt.Errorf("minify: nbt: %w", err)
		}
		defer r.Close()
		raw, err = io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("minify: nbt: %w", err)
		}
	case input[0] <= 12:
		raw = input
	default:
		return nil, fmt.Errorf("minify: nbt: unrecognized container byte 0x%02x", input[0])
	}

	cfg := store.NBT()
	return gzipEncode(raw, cfg.UseZopfli)
}

// gzipEncode re-wraps raw in a fresh GZip container, either via the
// zopfli encoder's best-effort DEFLATE stream (spliced behind a
// hand-written GZip header/trailer, the same member-framing
// klauspost/compress/gzip and stdlib compress/gzip both emit) or via
// klauspost/compress/gzip at its best compression level.
func gzipEncode(raw []byte, useZopfli config.ZopfliSwitch) ([]byte, error) {
	if !useZopfli.Enabled() {
		var buf bytes.Buffer
		w, err := kgzip.NewWriterLevel(&buf, kgzip.BestCompression)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(raw); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	deflated, err := zopfli.Encode(raw, useZopfli.Iterations())
	if err != nil {
		return nil, err
	}
	return wrapGzip(deflated, raw), nil
}
