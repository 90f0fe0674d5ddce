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

package fileop

import "strings"

const cacheDirPrefix = ".cache/"
const metaInfPrefix = "META-INF/"

// Classify maps an entry name to a FileOp, per spec.md 4.1. It never
// fails: every name maps to some FileOp, and it never inspects payload
// bytes (it is pure in (name, bl)).
func Classify(name string, bl interface{ CanIgnore(string) bool }) FileOp {
	if strings.HasPrefix(name, cacheDirPrefix) {
		return Ignore(Blacklisted)
	}

	if strings.HasPrefix(name, metaInfPrefix) {
		sub := name[len(metaInfPrefix):]
		switch sub {
		case "MANIFEST.MF":
			return Recompress(64)
		case "SIGNFILE.SF", "SIGNFILE.DSA":
			return Ignore(Signfile)
		}
		if strings.HasPrefix(sub, "SIG-") ||
			strings.HasSuffix(sub, ".DSA") ||
			strings.HasSuffix(sub, ".RSA") ||
			strings.HasSuffix(sub, ".SF") {
			return Ignore(Signfile)
		}
		if strings.HasPrefix(sub, "services/") {
			return Recompress(64)
		}
	}

	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return Pass()
	}
	ftype := name[dot+1:]

	switch ftype {
	case "class":
		return Recompress(64)
	case "glsl", "html", "kotlin_module", "md", "ogg", "txt", "vert", "xml":
		return Recompress(8)
	}

	if s, ok := StrategyByExtension(ftype); ok {
		return Minify(s)
	}

	if bl.CanIgnore(ftype) {
		return Ignore(Blacklisted)
	}

	return Pass()
}
