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
	"fmt"

	"github.com/ardenfel/packrat/config"
)

// ErrOgg is returned for malformed Ogg/Vorbis input.
var ErrOgg = fmt.Errorf("minify: ogg: malformed stream")

type oggSegment struct {
	data       []byte
	terminated bool // lacing run ended with a value < 255: packet ends here
}

type oggPage struct {
	serial     uint32
	granulePos uint64
	bos        bool
	eos        bool
	segments   []oggSegment
}

// parseOggPages splits a byte stream into its constituent pages. Packet
// boundaries within a page follow the standard lacing rule: consecutive
// 255-valued lacing bytes accumulate into one run, closed by the first
// value less than 255 (or left open, continuing onto the next page, if
// the page's lacing table ends on a 255).
func parseOggPages(b []byte) ([]oggPage, error) {
	var pages []oggPage
	for len(b) > 0 {
		if len(b) < 27 || string(b[0:4]) != "OggS" {
			return nil, ErrOgg
		}
		headerType := b[5]
		granulePos := binary.LittleEndian.Uint64(b[6:14])
		serial := binary.LittleEndian.Uint32(b[14:18])
		segCount := int(b[26])
		if len(b) < 27+segCount {
			return nil, ErrOgg
		}
		lacing := b[27 : 27+segCount]

		start := 27 + segCount
		pos := start
		var segments []oggSegment
		run := 0
		runStart := pos
		for _, v := range lacing {
			if len(b) < pos+int(v) {
				return nil, ErrOgg
			}
			run += int(v)
			pos += int(v)
			if v < 255 {
				segments = append(segments, oggSegment{data: b[runStart:pos], terminated: true})
				run = 0
				runStart = pos
			}
		}
		if run > 0 {
			segments = append(segments, oggSegment{data: b[runStart:pos], terminated: false})
		}

		pages = append(pages, oggPage{
			serial:     serial,
			granulePos: granulePos,
			bos:        headerType&0x02 != 0,
			eos:        headerType&0x04 != 0,
			segments:   segments,
		})

		b = b[pos:]
	}
	return pages, nil
}

// packet is one reassembled Ogg packet plus the granule position of the
// page that terminated it (needed so re-paging can preserve audio
// timing information).
type packet struct {
	bytes      []byte
	granulePos uint64
}

// reassemblePackets walks the pages of a single logical stream and
// reconstructs the packet sequence, joining segments across page
// boundaries wherever a page's final run was left unterminated.
func reassemblePackets(pages []oggPage) []packet {
	var packets []packet
	var cur []byte

	for _, p := range pages {
		for _, seg := range p.segments {
			cur = append(cur, seg.data...)
			if seg.terminated {
				packets = append(packets, packet{bytes: cur, granulePos: p.granulePos})
				cur = nil
			}
		}
	}
	if len(cur) > 0 {
		packets = append(packets, packet{bytes: cur})
	}
	return packets
}

// OGG implements the OGG/Vorbis minifier (spec.md 4.4.4): remux through a
// Vorbis comment-header rewrite. If RemoveComments is set, delete every
// comment field and empty the vendor string; otherwise copy them
// verbatim (a no-op remux). Only the comment header packet (packet #1)
// is modified; every other packet, including the identification and
// setup headers and all audio packets, passes through unchanged.
func OGG(store *config.Store, input []byte) ([]byte, error) {
	pages, err := parseOggPages(input)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, ErrOgg
	}
	serial := pages[0].serial
	for _, p := range pages {
		if p.serial != serial {
			return nil, fmt.Errorf("minify: ogg: multiplexed streams not supported")
		}
	}

	packets := reassemblePackets(pages)
	if len(packets) < 2 {
		return nil, ErrOgg
	}
	if !isVorbisHeaderPacket(packets[1].bytes, 3) {
		return nil, ErrOgg
	}

	cfg := store.OGG()
	packets[1].bytes, err = rewriteVorbisComment(packets[1].bytes, cfg.RemoveComments)
	if err != nil {
		return nil, err
	}

	return remuxOggPages(serial, packets), nil
}

func isVorbisHeaderPacket(b []byte, packetType byte) bool {
	return len(b) >= 7 && b[0] == packetType && string(b[1:7]) == "vorbis"
}

// rewriteVorbisComment parses a Vorbis comment header packet
// (type 3: 1 byte type + "vorbis" + vendor_length + vendor + comment
// count + comments + 1-byte framing bit) and either strips the comments
// and vendor string, or rebuilds the identical packet.
func rewriteVorbisComment(b []byte, removeComments bool) ([]byte, error) {
	if len(b) < 7+4 {
		return nil, ErrOgg
	}
	pos := 7
	vendorLen := int(binary.LittleEndian.Uint32(b[pos : pos+4]))
	pos += 4
	if len(b) < pos+vendorLen+4 {
		return nil, ErrOgg
	}
	vendor := b[pos : pos+vendorLen]
	pos += vendorLen

	commentCount := int(binary.LittleEndian.Uint32(b[pos : pos+4]))
	pos += 4

	comments := make([][]byte, 0, commentCount)
	for i := 0; i < commentCount; i++ {
		if len(b) < pos+4 {
			return nil, ErrOgg
		}
		l := int(binary.LittleEndian.Uint32(b[pos : pos+4]))
		pos += 4
		if len(b) < pos+l {
			return nil, ErrOgg
		}
		comments = append(comments, b[pos:pos+l])
		pos += l
	}
	if len(b) < pos+1 {
		return nil, ErrOgg
	}
	framingBit := b[pos]

	if removeComments {
		vendor = nil
		comments = nil
	}

	out := make([]byte, 0, 7+4+len(vendor)+4+1)
	out = append(out, 3)
	out = append(out, "vorbis"...)
	out = appendUint32(out, uint32(len(vendor)))
	out = append(out, vendor...)
	out = appendUint32(out, uint32(len(comments)))
	for _, c := range comments {
		out = appendUint32(out, uint32(len(c)))
		out = append(out, c...)
	}
	out = append(out, framingBit)
	return out, nil
}

func appendUint32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

// remuxOggPages re-pages a packet sequence, one packet per page, to keep
// the re-framing logic simple; spec.md's Non-goals disclaim byte-identical
// output with any prior tool, and each resulting page is a fully valid
// Ogg page any Vorbis decoder accepts.
func remuxOggPages(serial uint32, packets []packet) []byte {
	var out []byte
	for i, pkt := range packets {
		headerType := byte(0)
		if i == 0 {
			headerType |= 0x02 // bos
		}
		if i == len(packets)-1 {
			headerType |= 0x04 // eos
		}
		out = append(out, buildOggPage(serial, uint32(i), pkt.granulePos, headerType, pkt.bytes)...)
	}
	return out
}

func buildOggPage(serial, seqNum uint32, granulePos uint64, headerType byte, data []byte) []byte {
	segLens := laceSegments(len(data))

	header := make([]byte, 27+len(segLens))
	copy(header[0:4], "OggS")
	header[4] = 0 // version
	header[5] = headerType
	binary.LittleEndian.PutUint64(header[6:14], granulePos)
	binary.LittleEndian.PutUint32(header[14:18], serial)
	binary.LittleEndian.PutUint32(header[18:22], seqNum)
	// header[22:26] CRC, filled below
	header[26] = byte(len(segLens))
	copy(header[27:], segLens)

	page := make([]byte, 0, len(header)+len(data))
	page = append(page, header...)
	page = append(page, data...)

	binary.LittleEndian.PutUint32(page[22:26], 0)
	crc := oggCRC32(page)
	binary.LittleEndian.PutUint32(page[22:26], crc)

	return page
}

// laceSegments produces the lacing-value table for a packet of length n:
// a run of 255s followed by a final value in [0, 254] (0 when n is an
// exact multiple of 255, terminating the packet).
func laceSegments(n int) []byte {
	var segs []byte
	for n >= 255 {
		segs = append(segs, 255)
		n -= 255
	}
	segs = append(segs, byte(n))
	return segs
}
