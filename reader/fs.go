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

package reader

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
)

type fsItem struct {
	relName string
	dir     bool
	absPath string
}

// FSReader walks a directory tree into a name-sorted handle stream, the
// same godirwalk.Walk idiom archive/purge.go uses for its .dat scan, but
// sorted rather than Unsorted so output order is deterministic.
type FSReader struct {
	items []fsItem
	pos   int
}

// NewFS walks root into an ordered list of handles. Directory entries
// always precede their contents: godirwalk.Walk visits a directory
// before recursing into it, and the post-walk sort keeps siblings in
// name order without disturbing that parent-before-child property.
func NewFS(root string) (*FSReader, error) {
	var items []fsItem

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path == root {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			isDir, err := de.IsDirOrSymlinkToDir()
			if err != nil {
				isDir = de.IsDir()
			}
			if isDir {
				rel += "/"
			}
			items = append(items, fsItem{relName: rel, dir: isDir, absPath: path})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		return fsEntryLess(items[i].relName, items[j].relName)
	})

	return &FSReader{items: items}, nil
}

// fsEntryLess orders a directory ahead of its own children while still
// sorting siblings lexically, by comparing path segments rather than raw
// strings (so "a/" and "a/b.txt" both sort before "a.txt", which a raw
// string comparison would put first).
func fsEntryLess(a, b string) bool {
	as := strings.Split(strings.TrimSuffix(a, "/"), "/")
	bs := strings.Split(strings.TrimSuffix(b, "/"), "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			return as[i] < bs[i]
		}
	}
	return len(as) < len(bs)
}

func (r *FSReader) Len() int { return len(r.items) }

func (r *FSReader) Next() (Handle, bool, error) {
	if r.pos >= len(r.items) {
		return Handle{}, false, nil
	}
	it := r.items[r.pos]
	r.pos++

	if it.dir {
		return Handle{Name: it.relName, Dir: true}, true, nil
	}

	absPath := it.absPath
	return Handle{
		Name: strings.TrimSuffix(it.relName, "/"),
		data: func() ([]byte, error) { return os.ReadFile(absPath) },
	}, true, nil
}

func (r *FSReader) Close() error { return nil }
