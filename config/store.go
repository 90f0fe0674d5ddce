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

import "sync"

// marker indexes the six minifier config slots this spec names (spec.md
// 6.4). It is unexported: callers reach configs through the typed
// JSON/TOML/PNG/NBT/OGG/JAR accessors below, not by marker value.
type marker int

const (
	markerJSON marker = iota
	markerTOML
	markerPNG
	markerNBT
	markerOGG
	markerJAR
	numMarkers
)

// slot holds one marker's config behind its own RWMutex, the same
// per-bucket locking kivi/keydir.go uses for its sharded key maps — here
// there is one "bucket" per marker rather than per hash, since there are
// only six of them and each is looked up by a constant, not a runtime key.
type slot struct {
	mtx sync.RWMutex
	cfg interface{}
}

// Store is the concurrent, type-keyed config map every minifier reads
// through. Many concurrent Fetches, rare Sets (spec.md 4.3): reads take
// the slot's read lock, so concurrent Fetches of an already-populated
// slot never block each other.
type Store struct {
	slots [numMarkers]*slot
}

// NewStore returns a config store with all six slots empty; each is
// populated with its Default() on first fetch.
func NewStore() *Store {
	s := &Store{}
	for i := range s.slots {
		s.slots[i] = &slot{}
	}
	return s
}

func fetch[T any](sl *slot, makeDefault func() T) T {
	sl.mtx.RLock()
	if sl.cfg != nil {
		v := sl.cfg.(T)
		sl.mtx.RUnlock()
		return v
	}
	sl.mtx.RUnlock()

	sl.mtx.Lock()
	defer sl.mtx.Unlock()
	if sl.cfg == nil {
		sl.cfg = makeDefault()
	}
	return sl.cfg.(T)
}

func set[T any](sl *slot, cfg T) {
	sl.mtx.Lock()
	defer sl.mtx.Unlock()
	sl.cfg = cfg
}

func (s *Store) JSON() *JsonConfig {
	return fetch(s.slots[markerJSON], defaultJsonConfig)
}

func (s *Store) SetJSON(cfg *JsonConfig) {
	set(s.slots[markerJSON], cfg)
}

func (s *Store) TOML() *TomlConfig {
	return fetch(s.slots[markerTOML], defaultTomlConfig)
}

func (s *Store) SetTOML(cfg *TomlConfig) {
	set(s.slots[markerTOML], cfg)
}

func (s *Store) PNG() *PngConfig {
	return fetch(s.slots[markerPNG], defaultPngConfig)
}

func (s *Store) SetPNG(cfg *PngConfig) {
	set(s.slots[markerPNG], cfg)
}

func (s *Store) NBT() *NbtConfig {
	return fetch(s.slots[markerNBT], defaultNbtConfig)
}

func (s *Store) SetNBT(cfg *NbtConfig) {
	set(s.slots[markerNBT], cfg)
}

func (s *Store) OGG() *OggConfig {
	return fetch(s.slots[markerOGG], defaultOggConfig)
}

func (s *Store) SetOGG(cfg *OggConfig) {
	set(s.slots[markerOGG], cfg)
}

func (s *Store) JAR() *JarConfig {
	return fetch(s.slots[markerJAR], defaultJarConfig)
}

func (s *Store) SetJAR(cfg *JarConfig) {
	set(s.slots[markerJAR], cfg)
}
