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

// Package entry holds the data that flows between a Reader, the pipeline,
// and a Saver: NamedEntry on the reader side, SavingEntry on the saver
// side (spec.md 3).
package entry

import "github.com/ardenfel/packrat/fileop"

// Named is a single item the pipeline builds from a reader's handle: a slash-separated name plus its
// body. Directory entries carry no bytes; file entries carry the raw
// payload and the FileOp the classifier already decided for it.
type Named struct {
	Name string
	Dir  bool
	Body []byte  // valid when !Dir
	Op   fileop.FileOp // valid when !Dir
}

// Saving is what a Saver actually writes. The pipeline maps a Named entry
// (and its FileOp) into a Saving entry; the Saver never sees a FileOp.
type Saving struct {
	Name        string
	Dir         bool
	Body        []byte // valid when !Dir
	CompressMin int    // valid when !Dir
}
