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

import (
	"testing"

	"github.com/ardenfel/packrat/blacklist"
)

func checkClassify(t *testing.T, name string, bl interface {
	CanIgnore(string) bool
}, wantKind Kind) FileOp {
	op := Classify(name, bl)
	if op.Kind != wantKind {
		t.Fatalf("Classify(%q) kind = %v, want %v", name, op.Kind, wantKind)
	}
	return op
}

func TestClassifyCacheDir(t *testing.T) {
	bl := blacklist.New(blacklist.Extend, nil)
	op := checkClassify(t, ".cache/foo.json", bl, KindIgnore)
	if op.Reason != Blacklisted {
		t.Fatalf("Classify(.cache/foo.json) reason = %v, want Blacklisted", op.Reason)
	}
}

func TestClassifyMetaInf(t *testing.T) {
	bl := blacklist.New(blacklist.Extend, nil)

	op := checkClassify(t, "META-INF/MANIFEST.MF", bl, KindRecompress)
	if op.MinBytes != 64 {
		t.Fatalf("MANIFEST.MF MinBytes = %d, want 64", op.MinBytes)
	}

	op = checkClassify(t, "META-INF/SIGNFILE.SF", bl, KindIgnore)
	if op.Reason != Signfile {
		t.Fatalf("SIGNFILE.SF reason = %v, want Signfile", op.Reason)
	}

	op = checkClassify(t, "META-INF/SIGNFILE.DSA", bl, KindIgnore)
	if op.Reason != Signfile {
		t.Fatalf("SIGNFILE.DSA reason = %v, want Signfile", op.Reason)
	}

	checkClassify(t, "META-INF/SIG-FOO.RSA", bl, KindIgnore)
	checkClassify(t, "META-INF/FOO.SF", bl, KindIgnore)

	op = checkClassify(t, "META-INF/services/com.example.Provider", bl, KindRecompress)
	if op.MinBytes != 64 {
		t.Fatalf("META-INF/services/* MinBytes = %d, want 64", op.MinBytes)
	}
}

func TestClassifyFixedRecompressExtensions(t *testing.T) {
	bl := blacklist.New(blacklist.Extend, nil)
	for _, name := range []string{
		"a.glsl", "index.html", "mod.kotlin_module", "readme.md",
		"track.ogg", "notes.txt", "shader.vert", "data.xml",
	} {
		op := checkClassify(t, name, bl, KindRecompress)
		if op.MinBytes != 8 {
			t.Fatalf("Classify(%q) MinBytes = %d, want 8", name, op.MinBytes)
		}
	}
}

// TestClassifyOggShadowsMinifyTable documents that the fixed 8-byte
// recompress list checked before the minify-strategy table wins for
// ".ogg", even though StrategyOgg is also registered by extension: ogg
// files are always Recompress(8), never Minify(StrategyOgg), via
// Classify.
func TestClassifyOggShadowsMinifyTable(t *testing.T) {
	bl := blacklist.New(blacklist.Extend, nil)
	op := checkClassify(t, "music/theme.ogg", bl, KindRecompress)
	if op.MinBytes != 8 {
		t.Fatalf("theme.ogg MinBytes = %d, want 8", op.MinBytes)
	}
}

func TestClassifyMinifyExtensions(t *testing.T) {
	bl := blacklist.New(blacklist.Extend, nil)
	cases := []struct {
		name string
		want Strategy
	}{
		{"icon.png", StrategyPng},
		{"data.json", StrategyJson},
		{"pack.mcmeta", StrategyJson},
		{"config.toml", StrategyToml},
		{"level.nbt", StrategyNbt},
		{"house.blueprint", StrategyNbt},
		{"settings.cfg", StrategyHash},
		{"model.obj", StrategyHash},
		{"material.mtl", StrategyHash},
		{"script.zs", StrategySlash},
		{"script.js", StrategySlash},
		{"shader.fsh", StrategySlash},
		{"shader.vsh", StrategySlash},
		{"services/foo.mf", StrategyUnixLine},
	}
	for _, c := range cases {
		op := checkClassify(t, c.name, bl, KindMinify)
		if op.Strategy != c.want {
			t.Fatalf("Classify(%q) strategy = %v, want %v", c.name, op.Strategy, c.want)
		}
	}
}

func TestClassifyNoExtensionPasses(t *testing.T) {
	bl := blacklist.New(blacklist.Extend, nil)
	checkClassify(t, "LICENSE", bl, KindPass)
	checkClassify(t, "bin/tool", bl, KindPass)
}

func TestClassifyBlacklistFallback(t *testing.T) {
	bl := blacklist.New(blacklist.Extend, nil)
	op := checkClassify(t, "scratch.bak", bl, KindIgnore)
	if op.Reason != Blacklisted {
		t.Fatalf("scratch.bak reason = %v, want Blacklisted", op.Reason)
	}

	checkClassify(t, "scratch.unknownext", bl, KindPass)

	override := blacklist.New(blacklist.Override, []string{"unknownext"})
	checkClassify(t, "scratch.bak", override, KindPass)
	checkClassify(t, "scratch.unknownext", override, KindIgnore)
}
