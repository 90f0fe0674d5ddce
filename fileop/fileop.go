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

// Package fileop holds the closed set of per-entry operations the
// classifier can decide on, and the classifier itself.
package fileop

// IgnoreReason explains why an entry was dropped from the output.
type IgnoreReason int

const (
	Blacklisted IgnoreReason = iota
	Signfile
)

func (r IgnoreReason) String() string {
	switch r {
	case Blacklisted:
		return "blacklisted"
	case Signfile:
		return "signfile"
	default:
		panic("unknown ignore reason")
	}
}

// Kind discriminates the FileOp sum type.
type Kind int

const (
	KindIgnore Kind = iota
	KindPass
	KindRecompress
	KindMinify
)

// FileOp is the classifier's verdict for one entry, decided once from the
// entry's name alone (spec.md 3, invariant: pure in (name, blacklist)).
type FileOp struct {
	Kind     Kind
	Reason   IgnoreReason // valid when Kind == KindIgnore
	MinBytes int          // valid when Kind == KindRecompress
	Strategy Strategy     // valid when Kind == KindMinify
}

func Ignore(reason IgnoreReason) FileOp {
	return FileOp{Kind: KindIgnore, Reason: reason}
}

// Pass copies bytes through unchanged. It carries no threshold of its
// own; the pipeline saves Pass entries with a compress threshold of 24.
func Pass() FileOp {
	return FileOp{Kind: KindPass}
}

func Recompress(minBytes int) FileOp {
	return FileOp{Kind: KindRecompress, MinBytes: minBytes}
}

func Minify(s Strategy) FileOp {
	return FileOp{Kind: KindMinify, Strategy: s}
}
