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

package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ardenfel/packrat/blacklist"
	"github.com/ardenfel/packrat/config"
	"github.com/ardenfel/packrat/entry"
	"github.com/ardenfel/packrat/reader"
)

// fakeSaver records every Saving in arrival order and can be configured
// to fail once a given name is seen, so tests can exercise the
// drain-on-error path without a real archive writer.
type fakeSaver struct {
	mtx    sync.Mutex
	saved  []entry.Saving
	failOn string
}

func (s *fakeSaver) Save(e entry.Saving) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.failOn != "" && e.Name == s.failOn {
		return fmt.Errorf("fake save failure for %s", e.Name)
	}
	s.saved = append(s.saved, e)
	return nil
}

func (s *fakeSaver) Close() error { return nil }

func (s *fakeSaver) names() []string {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	out := make([]string, len(s.saved))
	for i, e := range s.saved {
		out[i] = e.Name
	}
	return out
}

func writeFixtureFile(t *testing.T, path, body string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("fixture setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("fixture setup: %v", err)
	}
}

func TestRunDropsIgnoredEntriesAndPassesPlainBytesThrough(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "plain"), "unchanged bytes")
	writeFixtureFile(t, filepath.Join(root, "readme.txt"), "keep me as-is")
	writeFixtureFile(t, filepath.Join(root, "data.json"), `{"_drop": 1, "keep": 2}`)
	writeFixtureFile(t, filepath.Join(root, "scratch.bak"), "should never be saved")

	r, err := reader.NewFS(root)
	if err != nil {
		t.Fatalf("NewFS() error: %v", err)
	}
	defer r.Close()

	sv := &fakeSaver{}
	store := config.NewStore()
	bl := blacklist.New(blacklist.Extend, nil)
	prog := NewProgress()
	errs := NewErrorCollector()

	if err := Run(r, sv, store, bl, prog, errs); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	names := sv.names()
	if len(names) != 3 {
		t.Fatalf("saved %d entries (%v), want 3", len(names), names)
	}
	for _, n := range names {
		if n == "scratch.bak" {
			t.Fatalf("ignored entry scratch.bak was saved")
		}
	}

	// Output order must match reader order (alphabetical here), skipping
	// the ignored entry.
	want := []string{"data.json", "plain", "readme.txt"}
	for i, w := range want {
		if names[i] != w {
			t.Fatalf("saved order = %v, want %v", names, want)
		}
	}

	for _, e := range sv.saved {
		if e.Name == "plain" && string(e.Body) != "unchanged bytes" {
			t.Fatalf("Pass entry body mutated: %q", e.Body)
		}
		if e.Name == "readme.txt" {
			if string(e.Body) != "keep me as-is" {
				t.Fatalf("Recompress entry body mutated: %q", e.Body)
			}
			if e.CompressMin != 8 {
				t.Fatalf("readme.txt CompressMin = %d, want 8 (the fixed recompress list's .txt threshold)", e.CompressMin)
			}
		}
		if e.Name == "data.json" {
			var v map[string]interface{}
			if err := json.Unmarshal(e.Body, &v); err != nil {
				t.Fatalf("data.json output isn't valid JSON: %v", err)
			}
			if _, ok := v["_drop"]; ok {
				t.Fatalf("expected underscored key dropped by the JSON minifier, got %v", v)
			}
			if v["keep"] != float64(2) {
				t.Fatalf("expected keep=2 preserved, got %v", v)
			}
		}
	}

	snap := prog.Snapshot()
	if snap.Total != 4 {
		t.Fatalf("Snapshot().Total = %d, want 4 (reader.Len() includes the ignored entry)", snap.Total)
	}
	if snap.Index != snap.Total {
		t.Fatalf("Snapshot().Index = %d after Run, want it to equal Total (%d) post-Finish", snap.Index, snap.Total)
	}
}

func TestRunSurfacesSaverErrorAndDrainsProducerWithoutDeadlock(t *testing.T) {
	root := t.TempDir()
	// More files than the producer/consumer channel's buffer, so the
	// producer is still trying to enqueue work when the consumer returns
	// the save error below — this is what the drain loop in Run exists
	// to unblock.
	for i := 0; i < chanCapacity*3; i++ {
		writeFixtureFile(t, filepath.Join(root, fmt.Sprintf("file-%03d.txt", i)), "payload")
	}

	r, err := reader.NewFS(root)
	if err != nil {
		t.Fatalf("NewFS() error: %v", err)
	}
	defer r.Close()

	sv := &fakeSaver{failOn: "file-000.txt"}
	store := config.NewStore()
	bl := blacklist.New(blacklist.Extend, nil)
	prog := NewProgress()
	errs := NewErrorCollector()

	done := make(chan error, 1)
	go func() {
		done <- Run(r, sv, store, bl, prog, errs)
	}()

	select {
	case runErr := <-done:
		if runErr == nil {
			t.Fatalf("expected Run() to surface the fake save error")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run() did not return within 5s; producer/consumer likely deadlocked")
	}
}

func TestRunEmptyReaderProducesNoOutput(t *testing.T) {
	root := t.TempDir()
	r, err := reader.NewFS(root)
	if err != nil {
		t.Fatalf("NewFS() error: %v", err)
	}
	defer r.Close()

	sv := &fakeSaver{}
	store := config.NewStore()
	bl := blacklist.New(blacklist.Extend, nil)
	prog := NewProgress()
	errs := NewErrorCollector()

	if err := Run(r, sv, store, bl, prog, errs); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(sv.saved) != 0 {
		t.Fatalf("expected no saved entries for an empty tree, got %v", sv.names())
	}
}
