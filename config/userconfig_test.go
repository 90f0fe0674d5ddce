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

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "packrat.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("fixture setup: %v", err)
	}
	return path
}

func TestLoadUserConfigParsesGeneralAndBlacklist(t *testing.T) {
	path := writeTestConfig(t, `
[general]
workers = 4
verbosity = 2

[blacklist]
mode = "override"
extensions = ["foo", "bar"]
`)
	uc, err := LoadUserConfig(path)
	if err != nil {
		t.Fatalf("LoadUserConfig() error: %v", err)
	}
	if uc.General.Workers != 4 || uc.General.Verbosity != 2 {
		t.Fatalf("general section mismatch: %+v", uc.General)
	}
	if uc.Blacklist.Mode != "override" || len(uc.Blacklist.Extensions) != 2 {
		t.Fatalf("blacklist section mismatch: %+v", uc.Blacklist)
	}
}

func TestLoadUserConfigMissingFileErrors(t *testing.T) {
	if _, err := LoadUserConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for a missing config file")
	}
}

func TestLoadUserConfigMalformedTOMLErrors(t *testing.T) {
	path := writeTestConfig(t, "this is not [ valid toml")
	if _, err := LoadUserConfig(path); err == nil {
		t.Fatalf("expected error for malformed TOML")
	}
}

func TestApplyOnlyTouchesConfiguredMinifiers(t *testing.T) {
	store := NewStore()
	falseVal := false

	uc := &UserConfig{}
	uc.Minifiers.JSON = &MinifierJSONConfig{RemoveUnderscored: &falseVal}
	uc.Apply(store)

	if store.JSON().RemoveUnderscored {
		t.Fatalf("expected RemoveUnderscored=false after Apply, got true")
	}
	if !store.TOML().StripStrings {
		t.Fatalf("expected TOML config untouched by Apply, still at its default (true)")
	}
}

func TestApplyJarZopfliIterations(t *testing.T) {
	store := NewStore()
	uc := &UserConfig{}
	uc.Minifiers.JAR = &MinifierJARConfig{KeepDirs: true, ZopfliIterations: 7}
	uc.Apply(store)

	jar := store.JAR()
	if !jar.KeepDirs {
		t.Fatalf("expected KeepDirs=true after Apply")
	}
	if !jar.UseZopfli.Enabled() || jar.UseZopfli.Iterations() != 7 {
		t.Fatalf("expected UseZopfli enabled at 7 iterations, got %+v", jar.UseZopfli)
	}
}

func TestApplyNilConfigIsNoOp(t *testing.T) {
	store := NewStore()
	var uc *UserConfig
	uc.Apply(store)
	if !store.JSON().RemoveUnderscored {
		t.Fatalf("expected defaults to survive a nil Apply")
	}
}
