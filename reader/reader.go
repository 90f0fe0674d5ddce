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

// Package reader walks an archive-in (directory tree or ZIP file) into
// the ordered Handle stream the pipeline's producer task consumes
// (spec.md 3, 4.7).
package reader

// Handle is one reader-yielded item: its name and whether it's a
// directory. A file handle's bytes aren't read until Data is called, so
// the pipeline can classify an entry and skip ignored files without ever
// touching their payload (spec.md 4.7: "handle not consumed for data").
type Handle struct {
	Name string
	Dir  bool
	data func() ([]byte, error)
}

// Data materializes a file handle's bytes. Calling it on a directory
// handle returns nil, nil.
func (h Handle) Data() ([]byte, error) {
	if h.data == nil {
		return nil, nil
	}
	return h.data()
}

// Reader produces entries in a fixed order: every directory entry before
// any of its children, matching the order a Saver must replay them in
// for trailing-slash directory markers to land ahead of the files they
// contain.
type Reader interface {
	// Len reports the total entry count known up front.
	Len() int

	// Next returns the next handle and true, or ok=false once exhausted.
	// A non-nil error aborts the read immediately.
	Next() (h Handle, ok bool, err error)

	// Close releases any underlying file handle.
	Close() error
}
