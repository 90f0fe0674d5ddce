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

// Package minify holds the per-strategy transforms and the dispatch
// switchboard that picks among them (spec.md 4.3, 4.4).
package minify

import "errors"

// ErrBrackets is returned when the JSON minifier can't find a matching
// outermost bracket pair.
var ErrBrackets = errors.New("minify: no matching brackets found")

var bom = []byte{0xEF, 0xBB, 0xBF}

// stripBOM removes a leading UTF-8 byte-order mark, if present.
func stripBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == bom[0] && b[1] == bom[1] && b[2] == bom[2] {
		return b[3:]
	}
	return b
}

// findBrackets locates the outermost bracket pair in b: the first '{' or
// '[' byte, and the *last* occurrence of its matching closer. It returns
// ErrBrackets if no opener exists, or no matching closer exists.
func findBrackets(b []byte) (open, close int, err error) {
	open = -1
	var opener, closer byte
	for i, c := range b {
		if c == '{' || c == '[' {
			open = i
			opener = c
			break
		}
	}
	if open < 0 {
		return 0, 0, ErrBrackets
	}
	if opener == '{' {
		closer = '}'
	} else {
		closer = ']'
	}

	close = -1
	for i := len(b) - 1; i > open; i-- {
		if b[i] == closer {
			close = i
			break
		}
	}
	if close < 0 {
		return 0, 0, ErrBrackets
	}
	return open, close, nil
}

// rightTrimASCIISpace trims trailing ASCII space/tab/CR from s.
func rightTrimASCIISpace(s string) string {
	end := len(s)
	for end > 0 {
		switch s[end-1] {
		case ' ', '\t', '\r':
			end--
			continue
		}
		break
	}
	return s[:end]
}

// leftNonSpaceIndex returns the index of the first byte in s that isn't
// an ASCII space or tab, or len(s) if the line is all whitespace.
func leftNonSpaceIndex(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t':
			continue
		}
		return i
	}
	return len(s)
}
