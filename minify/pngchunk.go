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
	"hash/adler32"
	"hash/crc32"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// writePNGChunk appends a length-prefixed, CRC32-trailed PNG chunk
// (typ + data) to buf.
func writePNGChunk(buf []byte, typ string, data []byte) []byte {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	buf = append(buf, lenBuf[:]...)

	start := len(buf)
	buf = append(buf, typ...)
	buf = append(buf, data...)

	crc := crc32.NewIEEE()
	crc.Write(buf[start:])

	var crcBuf [4]byte
	binary.BigEndian.PutUint32(crcBuf[:], crc.Sum32())
	return append(buf, crcBuf[:]...)
}

// wrapZlib wraps a raw DEFLATE stream (as produced by the zopfli package
// or klauspost/compress/flate) in the two-byte header + Adler32 trailer a
// PNG IDAT stream requires. The header byte pair matches what
// compress/zlib's NewWriterLevel(BestCompression) emits: CMF=0x78,
// FLG chosen so (CMF<<8|FLG) % 31 == 0.
func wrapZlib(rawDeflate []byte, uncompressed []byte) []byte {
	out := make([]byte, 0, len(rawDeflate)+6)
	out = append(out, 0x78, 0xDA)
	out = append(out, rawDeflate...)

	var sumBuf [4]byte
	binary.BigEndian.PutUint32(sumBuf[:], adler32.Checksum(uncompressed))
	return append(out, sumBuf[:]...)
}
