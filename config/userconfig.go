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
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// UserConfig is the external, TOML-based user configuration file
// (spec.md 1 names this an external collaborator; SPEC_FULL.md carries it
// as ambient stack). Its shape mirrors cmds/romba/main.go's own
// General/Depot/Index Config struct, ported from gcfg's INI to TOML.
type UserConfig struct {
	General struct {
		Workers   int
		LogDir    string
		Verbosity int
	}

	Blacklist struct {
		Mode       string // "extend" or "override"
		Extensions []string
	}

	Minifiers struct {
		JSON *MinifierJSONConfig `toml:"json"`
		TOML *MinifierTOMLConfig `toml:"toml"`
		PNG  *MinifierPNGConfig  `toml:"png"`
		NBT  *MinifierNBTConfig  `toml:"nbt"`
		OGG  *MinifierOGGConfig  `toml:"ogg"`
		JAR  *MinifierJARConfig  `toml:"jar"`
	}
}

type MinifierJSONConfig struct {
	RemoveUnderscored *bool `toml:"remove_underscored"`
}

type MinifierTOMLConfig struct {
	StripStrings *bool `toml:"strip_strings"`
}

type MinifierPNGConfig struct {
	ZopfliIterations int `toml:"zopfli_iterations"`
}

type MinifierNBTConfig struct {
	ZopfliIterations int `toml:"zopfli_iterations"`
}

type MinifierOGGConfig struct {
	RemoveComments *bool `toml:"remove_comments"`
}

type MinifierJARConfig struct {
	KeepDirs         bool `toml:"keep_dirs"`
	ZopfliIterations int  `toml:"zopfli_iterations"`
}

// LoadUserConfig reads and parses a TOML user-config file.
func LoadUserConfig(path string) (*UserConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	uc := new(UserConfig)
	if err := toml.Unmarshal(b, uc); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return uc, nil
}

// Apply pushes every minifier table present in uc into store, overwriting
// defaults for only the markers the user actually configured.
func (uc *UserConfig) Apply(store *Store) {
	if uc == nil {
		return
	}

	if m := uc.Minifiers.JSON; m != nil {
		cfg := defaultJsonConfig()
		if m.RemoveUnderscored != nil {
			cfg.RemoveUnderscored = *m.RemoveUnderscored
		}
		store.SetJSON(cfg)
	}
	if m := uc.Minifiers.TOML; m != nil {
		cfg := defaultTomlConfig()
		if m.StripStrings != nil {
			cfg.StripStrings = *m.StripStrings
		}
		store.SetTOML(cfg)
	}
	if m := uc.Minifiers.PNG; m != nil {
		cfg := defaultPngConfig()
		cfg.UseZopfli = switchFromIterations(m.ZopfliIterations)
		store.SetPNG(cfg)
	}
	if m := uc.Minifiers.NBT; m != nil {
		cfg := defaultNbtConfig()
		cfg.UseZopfli = switchFromIterations(m.ZopfliIterations)
		store.SetNBT(cfg)
	}
	if m := uc.Minifiers.OGG; m != nil {
		cfg := defaultOggConfig()
		if m.RemoveComments != nil {
			cfg.RemoveComments = *m.RemoveComments
		}
		store.SetOGG(cfg)
	}
	if m := uc.Minifiers.JAR; m != nil {
		cfg := defaultJarConfig()
		cfg.KeepDirs = m.KeepDirs
		cfg.UseZopfli = switchFromIterations(m.ZopfliIterations)
		store.SetJAR(cfg)
	}
}

func switchFromIterations(n int) ZopfliSwitch {
	if n <= 0 {
		return Off()
	}
	return On(n)
}
