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

package zopfli

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/flate"
)

func checkEncodeRoundTrips(t *testing.T, data []byte, iterations int) []byte {
	out, err := Encode(data, iterations)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	fr := flate.NewReader(bytes.NewReader(out))
	defer fr.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(fr); err != nil {
		t.Fatalf("decoding Encode() output: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", buf.Len(), len(data))
	}
	return out
}

func TestEncodeRoundTripsSingleIteration(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 50)
	checkEncodeRoundTrips(t, data, 1)
}

func TestEncodeRoundTripsMultipleIterations(t *testing.T) {
	data := bytes.Repeat([]byte("packrat packrat packrat data payload "), 200)
	checkEncodeRoundTrips(t, data, 10)
}

func TestEncodeEmptyInput(t *testing.T) {
	checkEncodeRoundTrips(t, nil, 3)
}

func TestEncodeNonPositiveIterationsTreatedAsOne(t *testing.T) {
	data := []byte("some data")
	out, err := Encode(data, 0)
	if err != nil {
		t.Fatalf("Encode(iterations=0) error: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("Encode(iterations=0) produced empty output")
	}
}

func TestEncodeNeverGrowsAcrossRounds(t *testing.T) {
	data := bytes.Repeat([]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"), 30)
	small := checkEncodeRoundTrips(t, data, 1)
	big := checkEncodeRoundTrips(t, data, 20)
	if len(big) > len(small) {
		t.Fatalf("more iterations produced a larger result: %d > %d", len(big), len(small))
	}
}
