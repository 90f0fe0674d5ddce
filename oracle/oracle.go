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

package oracle

import (
	"github.com/klauspost/compress/flate"
)

// entropyCutoff below which a payload is assumed compressible enough to
// skip the (more expensive) trial DEFLATE pass entirely.
const entropyCutoff = 7.0

// slack is the minimum number of bytes a trial DEFLATE must beat raw size
// by before DEFLATE is chosen over STORE (spec.md 4.2).
const slack = 8

// countWriter discards everything written to it and keeps only a running
// total, the same "wrap an io.Writer, keep only the count" idiom romba
// uses for its own hashing passes (archive/util.go's countWriter).
type countWriter struct {
	n int
}

func (w *countWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}

// trialDeflateLen runs the best-level DEFLATE encoder over b into a
// counting sink and returns only the resulting length.
func trialDeflateLen(b []byte) int {
	cw := &countWriter{}
	fw, err := flate.NewWriter(cw, flate.BestCompression)
	if err != nil {
		// flate.BestCompression is always a valid level; this can't
		// happen, but don't pretend compression helped if it does.
		return len(b) + slack
	}
	_, _ = fw.Write(b)
	_ = fw.Close()
	return cw.n
}

// ShouldDeflate decides STORE (false) vs DEFLATE (true) for payload b
// given threshold t, per spec.md 4.2:
//
//	if |b| <= t: STORE
//	if entropy(b) < 7.0: DEFLATE (clearly compressible, skip the trial)
//	otherwise DEFLATE only if a trial encode beats raw size by > 8 bytes
func ShouldDeflate(b []byte, t int) bool {
	if len(b) <= t {
		return false
	}
	if byteEntropy(b) < entropyCutoff {
		return true
	}
	n := trialDeflateLen(b)
	return n+slack < len(b)
}

// ByteEntropy exposes the Shannon estimate for callers (such as tests)
// that want it without going through the full decision.
func ByteEntropy(b []byte) float64 {
	return byteEntropy(b)
}
