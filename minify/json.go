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
	"encoding/json"
	"fmt"

	"github.com/ardenfel/packrat/config"
)

// JSON implements the JSON minifier (spec.md 4.4.1): strip a BOM, find the
// outermost bracket pair, strip comments inside it, parse, optionally
// drop underscore-prefixed object keys, and re-serialize compactly.
func JSON(store *config.Store, input []byte) ([]byte, error) {
	b := stripBOM(input)

	open, close, err := findBrackets(b)
	if err != nil {
		return nil, err
	}

	body := stripJSONComments(b[open : close+1])

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("minify: json: %w", err)
	}

	cfg := store.JSON()
	if cfg.RemoveUnderscored {
		if m, ok := v.(map[string]interface{}); ok {
			removeUnderscoredKeys(m)
		}
	}

	return json.Marshal(v)
}

func removeUnderscoredKeys(m map[string]interface{}) {
	for k, v := range m {
		if len(k) > 0 && k[0] == '_' {
			delete(m, k)
			continue
		}
		switch vv := v.(type) {
		case map[string]interface{}:
			removeUnderscoredKeys(vv)
		case []interface{}:
			removeUnderscoredInSlice(vv)
		}
	}
}

func removeUnderscoredInSlice(s []interface{}) {
	for _, v := range s {
		switch vv := v.(type) {
		case map[string]interface{}:
			removeUnderscoredKeys(vv)
		case []interface{}:
			removeUnderscoredInSlice(vv)
		}
	}
}

// stripJSONComments removes // line comments and /* */ block comments
// from b, leaving string literals untouched. Bytes outside strings and
// comments are copied as-is (including whitespace, which json.Unmarshal
// ignores anyway).
func stripJSONComments(b []byte) []byte {
	out := make([]byte, 0, len(b))

	inString := false
	escaped := false

	for i := 0; i < len(b); i++ {
		c := b[i]

		if inString {
			out = append(out, c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}

		if c == '/' && i+1 < len(b) && b[i+1] == '/' {
			i += 2
			for i < len(b) && b[i] != '\n' {
				i++
			}
			i--
			continue
		}

		if c == '/' && i+1 < len(b) && b[i+1] == '*' {
			i += 2
			for i+1 < len(b) && !(b[i] == '*' && b[i+1] == '/') {
				i++
			}
			i++ // land on the '/'
			continue
		}

		out = append(out, c)
	}

	return out
}
