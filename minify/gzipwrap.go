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
	"encoding/binary"

	"github.com/klauspost/crc32"
)

// gzipHeader is the fixed 10-byte GZip member header this tree always
// emits: magic, DEFLATE method, no flags, zero mtime, no extra flags, and
// an "unknown" OS byte (0xff) so re-packed archives don't leak the
// machine that repacked them.
var gzipHeader = []byte{0x1f, 0x8b, 8, 0, 0, 0, 0, 0, 0, 0xff}

// wrapGzip wraps a raw DEFLATE stream (as produced by the zopfli package)
// in a GZip member: fixed header, the stream itself, then the CRC32 and
// size-mod-2^32 trailer every GZip reader expects. This uses gzip's
// standard reflected CRC32 (unlike Ogg's non-reflected variant in
// oggcrc.go), so klauspost/crc32 applies directly here.
func wrapGzip(rawDeflate []byte, uncompressed []byte) []byte {
	out := make([]byte, 0, len(gzipHeader)+len(rawDeflate)+8)
	out = append(out, gzipHeader...)
	out = append(out, rawDeflate...)

	h := crc32.NewIEEE()
	h.Write(uncompressed)

	var trailer [8]byte
	binary.LittleEndian.PutUint32(trailer[0:4], h.Sum32())
	binary.LittleEndian.PutUint32(trailer[4:8], uint32(len(uncompressed)))
	return append(out, trailer[:]...)
}
