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

// Package config holds the minifiers' shared, type-keyed configuration
// store (spec.md 4.3, 6.4) and the external TOML user-config loader.
package config

// ZopfliSwitch is the closed on/off-with-iteration-count toggle shared by
// PngConfig, NbtConfig and JarConfig (spec.md 6.4).
type ZopfliSwitch struct {
	on         bool
	iterations int
}

// defaultZopfliIterations is what On resolves a non-positive count to.
const defaultZopfliIterations = 10

// Off disables Zopfli.
func Off() ZopfliSwitch {
	return ZopfliSwitch{}
}

// On enables Zopfli at the given iteration count, clamped to [1, 255]. A
// non-positive count is treated as the default (10 iterations). A zero or
// absent count in a TOML user file never reaches On: switchFromIterations
// maps it to Off.
func On(iterations int) ZopfliSwitch {
	if iterations <= 0 {
		iterations = defaultZopfliIterations
	}
	if iterations > 255 {
		iterations = 255
	}
	return ZopfliSwitch{on: true, iterations: iterations}
}

// Enabled reports whether Zopfli should be used at all.
func (z ZopfliSwitch) Enabled() bool {
	return z.on && z.iterations > 0
}

// Iterations returns the configured iteration count (only meaningful when
// Enabled is true).
func (z ZopfliSwitch) Iterations() int {
	return z.iterations
}
