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

package config

// JsonConfig governs the JSON minifier (spec.md 6.4).
type JsonConfig struct {
	RemoveUnderscored bool
}

func defaultJsonConfig() *JsonConfig {
	return &JsonConfig{RemoveUnderscored: true}
}

// TomlConfig governs the TOML minifier.
type TomlConfig struct {
	StripStrings bool
}

func defaultTomlConfig() *TomlConfig {
	return &TomlConfig{StripStrings: true}
}

// PngConfig governs the PNG minifier.
type PngConfig struct {
	UseZopfli ZopfliSwitch
}

func defaultPngConfig() *PngConfig {
	return &PngConfig{UseZopfli: Off()}
}

// NbtConfig governs the NBT minifier.
type NbtConfig struct {
	UseZopfli ZopfliSwitch
}

func defaultNbtConfig() *NbtConfig {
	return &NbtConfig{UseZopfli: Off()}
}

// OggConfig governs the OGG/Vorbis minifier.
type OggConfig struct {
	RemoveComments bool
}

func defaultOggConfig() *OggConfig {
	return &OggConfig{RemoveComments: true}
}

// JarConfig governs the nested-JAR minifier.
type JarConfig struct {
	KeepDirs  bool
	UseZopfli ZopfliSwitch
}

func defaultJarConfig() *JarConfig {
	return &JarConfig{KeepDirs: false, UseZopfli: Off()}
}
