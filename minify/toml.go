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
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ardenfel/packrat/config"
)

// TOML implements the TOML minifier (spec.md 4.4.2): strip BOM, decode,
// optionally trim every string value, re-encode, then tighten the first
// " = " on every line to "=". The separator rewrite is a literal textual
// post-process on the encoder's output, not a go-toml encoder option —
// go-toml/v2 doesn't expose one, and the original source this spec was
// distilled from does the same textual pass (see SPEC_FULL.md).
func TOML(store *config.Store, input []byte) ([]byte, error) {
	b := stripBOM(input)

	var table map[string]interface{}
	if err := toml.Unmarshal(b, &table); err != nil {
		return nil, fmt.Errorf("minify: toml: %w", err)
	}

	if store.TOML().StripStrings {
		trimStringsInMap(table)
	}

	out, err := toml.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("minify: toml: %w", err)
	}

	return tightenEquals(out), nil
}

func trimStringsInMap(m map[string]interface{}) {
	for k, v := range m {
		m[k] = trimStringsInValue(v)
	}
}

func trimStringsInValue(v interface{}) interface{} {
	switch vv := v.(type) {
	case string:
		return strings.TrimSpace(vv)
	case map[string]interface{}:
		trimStringsInMap(vv)
		return vv
	case []interface{}:
		for i, e := range vv {
			vv[i] = trimStringsInValue(e)
		}
		return vv
	default:
		return v
	}
}

// tightenEquals replaces the first " = " on every line with "=".
func tightenEquals(b []byte) []byte {
	lines := strings.Split(string(b), "\n")
	for i, line := range lines {
		if idx := strings.Index(line, " = "); idx >= 0 {
			lines[i] = line[:idx] + "=" + line[idx+3:]
		}
	}
	return []byte(strings.Join(lines, "\n"))
}
