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
	"sync"
	"time"

	"github.com/codahale/hdrhistogram"
)

// Progress is the three-event protocol spec.md 3 and 6.3 name exactly:
// Start(total), Push(index, name), Finish. It plays the same "cheap
// concurrent reads, one owner of the writes" role as worker/progress.go's
// ProgressTracker, cut down to the three calls this pipeline needs.
type Progress struct {
	mtx       sync.Mutex
	total     int
	index     int
	current   string
	startedAt time.Time
	hist      *hdrhistogram.Histogram
	bytesOut  int64
}

// NewProgress returns a Progress with a per-entry latency histogram
// covering 1us to 10s (hdrhistogram is a teacher go.mod dependency with
// no other home in this tree's entry pipeline; per-entry timing is the
// natural fit for the consumer's Observe calls).
func NewProgress() *Progress {
	return &Progress{hist: hdrhistogram.New(1, 10_000_000, 3)}
}

// Start records the total entry count and the start time.
func (p *Progress) Start(total int) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.total = total
	p.startedAt = time.Now()
}

// Push records that entry index n (0-based, monotonically non-decreasing
// per spec.md 8) named name is now being saved.
func (p *Progress) Push(n int, name string) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.index = n
	p.current = name
}

// Observe feeds one entry's processing latency and output size into the
// running tallies, independent of the Start/Push/Finish protocol proper.
func (p *Progress) Observe(elapsed time.Duration, bytesOut int) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	_ = p.hist.RecordValue(elapsed.Microseconds())
	p.bytesOut += int64(bytesOut)
}

// Finish marks the run complete.
func (p *Progress) Finish() {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.index = p.total
}

// Snapshot is a point-in-time copy of a Progress, safe to read without
// holding any lock.
type Snapshot struct {
	Total      int
	Index      int
	Current    string
	Elapsed    time.Duration
	MeanMicros float64
	BytesOut   int64
}

func (p *Progress) Snapshot() Snapshot {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return Snapshot{
		Total:      p.total,
		Index:      p.index,
		Current:    p.current,
		Elapsed:    time.Since(p.startedAt),
		MeanMicros: p.hist.Mean(),
		BytesOut:   p.bytesOut,
	}
}
