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
	"fmt"

	"github.com/ardenfel/packrat/config"
	"github.com/ardenfel/packrat/fileop"
)

// Dispatch runs the minifier a Strategy names over input. Every minifier
// may fail (spec.md 4.4: malformed input is always a possible outcome);
// callers fall back to the raw bytes on error rather than treat it as
// fatal to the whole repack.
func Dispatch(s fileop.Strategy, store *config.Store, input []byte) ([]byte, error) {
	switch s {
	case fileop.StrategyPng:
		return PNG(store, input)
	case fileop.StrategyJson:
		return JSON(store, input)
	case fileop.StrategyToml:
		return TOML(store, input)
	case fileop.StrategyNbt:
		return NBT(store, input)
	case fileop.StrategyOgg:
		return OGG(store, input)
	case fileop.StrategyJar:
		return JAR(store, input)
	case fileop.StrategyHash:
		return Hash(input)
	case fileop.StrategySlash:
		return Slash(input)
	case fileop.StrategyUnixLine:
		return UnixLine(input)
	default:
		return nil, fmt.Errorf("minify: unknown strategy %v", s)
	}
}
