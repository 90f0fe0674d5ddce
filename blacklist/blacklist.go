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

// Package blacklist holds the two blacklist modes the classifier consults
// for extensions it doesn't otherwise recognize (spec.md 4.1).
package blacklist

import "strings"

// builtin is the default Extend-mode extension set.
var builtin = map[string]struct{}{
	"bak":       {},
	"blend":     {},
	"blend1":    {},
	"disabled":  {},
	"gitignore": {},
	"gitkeep":   {},
	"lnk":       {},
	"old":       {},
	"pdn":       {},
	"psd":       {},
	"xcf":       {},
}

// Mode picks whether a Blacklist's user set adds to or replaces the
// built-in defaults.
type Mode int

const (
	Extend Mode = iota
	Override
)

// Blacklist decides whether the classifier should ignore an otherwise
// unrecognized extension.
type Blacklist struct {
	mode Mode
	user map[string]struct{}
}

// New builds a Blacklist from a mode and a user-supplied set of lowercase
// extensions (without the leading dot).
func New(mode Mode, userExts []string) *Blacklist {
	user := make(map[string]struct{}, len(userExts))
	for _, e := range userExts {
		user[strings.ToLower(e)] = struct{}{}
	}
	return &Blacklist{mode: mode, user: user}
}

// CanIgnore reports whether ftype (an extension without its leading dot)
// should be classified as Ignore(Blacklisted).
func (b *Blacklist) CanIgnore(ftype string) bool {
	if b == nil {
		_, ok := builtin[ftype]
		return ok
	}
	if _, ok := b.user[ftype]; ok {
		return true
	}
	if b.mode == Override {
		return false
	}
	_, ok := builtin[ftype]
	return ok
}
