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
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/ardenfel/packrat/config"
)

func checkTOML(t *testing.T, store *config.Store, input string) map[string]interface{} {
	out, err := TOML(store, []byte(input))
	if err != nil {
		t.Fatalf("TOML(%q) error: %v", input, err)
	}
	var v map[string]interface{}
	if err := toml.Unmarshal(out, &v); err != nil {
		t.Fatalf("TOML(%q) produced invalid TOML %q: %v", input, out, err)
	}
	return v
}

func TestTOMLTightensEquals(t *testing.T) {
	store := config.NewStore()
	out, err := TOML(store, []byte("name = \"test\"\ncount = 3\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), " = ") {
		t.Fatalf("expected every ' = ' tightened to '=', got %q", out)
	}
}

func TestTOMLStripsStringsByDefault(t *testing.T) {
	store := config.NewStore()
	v := checkTOML(t, store, "name = \"  padded  \"\n")
	if v["name"] != "padded" {
		t.Fatalf("expected trimmed string, got %q", v["name"])
	}
}

func TestTOMLKeepsStringsWhenDisabled(t *testing.T) {
	store := config.NewStore()
	store.SetTOML(&config.TomlConfig{StripStrings: false})
	v := checkTOML(t, store, "name = \"  padded  \"\n")
	if v["name"] != "  padded  " {
		t.Fatalf("expected untouched string, got %q", v["name"])
	}
}

func TestTOMLStripsStringsNested(t *testing.T) {
	store := config.NewStore()
	v := checkTOML(t, store, "[section]\nname = \"  x  \"\nlist = [\"  a  \", \"  b  \"]\n")
	section := v["section"].(map[string]interface{})
	if section["name"] != "x" {
		t.Fatalf("expected trimmed nested string, got %q", section["name"])
	}
	list := section["list"].([]interface{})
	if list[0] != "a" || list[1] != "b" {
		t.Fatalf("expected trimmed list elements, got %v", list)
	}
}

func TestTOMLMalformedInputErrors(t *testing.T) {
	store := config.NewStore()
	if _, err := TOML(store, []byte("this is not [ valid toml")); err == nil {
		t.Fatalf("expected error for malformed TOML input")
	}
}
