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

// Strategy names a minifier format. It is a closed set: every Minify
// FileOp carries exactly one of these.
type Strategy int

const (
	StrategyPng Strategy = iota
	StrategyJson
	StrategyToml
	StrategyNbt
	StrategyOgg
	StrategyJar
	StrategyHash
	StrategySlash
	StrategyUnixLine
)

func (s Strategy) String() string {
	switch s {
	case StrategyPng:
		return "png"
	case StrategyJson:
		return "json"
	case StrategyToml:
		return "toml"
	case StrategyNbt:
		return "nbt"
	case StrategyOgg:
		return "ogg"
	case StrategyJar:
		return "jar"
	case StrategyHash:
		return "hash"
	case StrategySlash:
		return "slash"
	case StrategyUnixLine:
		return "unixline"
	default:
		panic("unknown strategy")
	}
}

// CompressMin is the compression-threshold each strategy carries along with
// its transform, per spec.md 4.3.
func (s Strategy) CompressMin() int {
	switch s {
	case StrategyPng:
		return 512
	case StrategyJson:
		return 64
	case StrategyToml:
		return 64
	case StrategyNbt:
		return 768
	default:
		return 24
	}
}

// byExtension is the extension table from spec.md 4.1, case-sensitive.
var byExtension = map[string]Strategy{
	"png":       StrategyPng,
	"json":      StrategyJson,
	"mcmeta":    StrategyJson,
	"toml":      StrategyToml,
	"nbt":       StrategyNbt,
	"blueprint": StrategyNbt,
	"ogg":       StrategyOgg,
	"jar":       StrategyJar,
	"cfg":       StrategyHash,
	"obj":       StrategyHash,
	"mtl":       StrategyHash,
	"zs":        StrategySlash,
	"js":        StrategySlash,
	"fsh":       StrategySlash,
	"vsh":       StrategySlash,
	"mf":        StrategyUnixLine,
}

// StrategyByExtension returns the strategy registered for a file extension
// (without the leading dot), and whether one exists.
func StrategyByExtension(ext string) (Strategy, bool) {
	s, ok := byExtension[ext]
	return s, ok
}
