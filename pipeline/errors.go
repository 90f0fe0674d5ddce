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
	"fmt"
	"sync"
)

// ErrorRecord is one entry that failed somewhere in the pipeline: which
// archive it came from, which entry inside it, and why.
type ErrorRecord struct {
	Parent string
	Entry  string
	Err    error
}

func (r ErrorRecord) String() string {
	return fmt.Sprintf("%s: %s: %v", r.Parent, r.Entry, r.Err)
}

// ErrorCollector accumulates ErrorRecords in the order they're reported.
// A nil *ErrorCollector is a valid no-op collector, so callers that don't
// want error tracking can pass one through without a branch.
type ErrorCollector struct {
	mtx     sync.Mutex
	records []ErrorRecord
}

func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{}
}

func (c *ErrorCollector) Report(parent, entry string, err error) {
	if c == nil {
		return
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.records = append(c.records, ErrorRecord{Parent: parent, Entry: entry, Err: err})
}

// Rename changes the Parent field on every record currently collected —
// used when a batch of archives processed under one temporary label
// turns out to need the caller-facing archive name instead.
func (c *ErrorCollector) Rename(parent string) {
	if c == nil {
		return
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	for i := range c.records {
		c.records[i].Parent = parent
	}
}

func (c *ErrorCollector) Records() []ErrorRecord {
	if c == nil {
		return nil
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	out := make([]ErrorRecord, len(c.records))
	copy(out, c.records)
	return out
}

func (c *ErrorCollector) Len() int {
	if c == nil {
		return 0
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return len(c.records)
}
