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
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"

	"github.com/ardenfel/packrat/blacklist"
	"github.com/ardenfel/packrat/config"
	"github.com/ardenfel/packrat/entry"
	"github.com/ardenfel/packrat/fileop"
	"github.com/ardenfel/packrat/minify"
	"github.com/ardenfel/packrat/reader"
	"github.com/ardenfel/packrat/saver"
)

// chanCapacity is the bounded producer/consumer queue depth (spec.md 4.7:
// "bounded capacity (>= 8)").
const chanCapacity = 16

// Run repacks everything r yields into s, the single library entry point
// spec.md 6.1 names. It drives two cooperating tasks — a producer that
// classifies and lazily materializes entries, a consumer that minifies,
// decides store-vs-deflate, and saves — connected by a bounded channel,
// the same shape worker.Work drives its scan/slave tasks with.
func Run(r reader.Reader, sv saver.Saver, store *config.Store, bl *blacklist.Blacklist, prog *Progress, errs *ErrorCollector) error {
	started := time.Now()
	total := r.Len()

	queue := make(chan entry.Named, chanCapacity)
	produceErrC := make(chan error, 1)

	go func() {
		produceErrC <- produce(r, bl, queue)
		close(queue)
	}()

	consumeErr := consume(total, queue, sv, store, prog, errs)
	if consumeErr != nil {
		// The producer may still be blocked sending; drain the channel so
		// it can observe the close and exit rather than leak (spec.md
		// 4.7: "if either task errors, drain and join the other").
		for range queue {
		}
	}
	produceErr := <-produceErrC

	if produceErr != nil {
		return fmt.Errorf("pipeline: reader: %w", produceErr)
	}
	if consumeErr != nil {
		return fmt.Errorf("pipeline: saver: %w", consumeErr)
	}

	snap := prog.Snapshot()
	glog.Infof("repack done: %d entries, %s written, %d errored, took %s\n",
		snap.Total, humanize.IBytes(uint64(snap.BytesOut)), errs.Len(), time.Since(started))
	return nil
}

// produce iterates r, classifying every file handle and skipping
// Ignore-classified ones without ever calling their Data method (spec.md
// 4.7: "handle not consumed for data").
func produce(r reader.Reader, bl *blacklist.Blacklist, queue chan<- entry.Named) error {
	for {
		h, ok, err := r.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if h.Dir {
			queue <- entry.Named{Name: h.Name, Dir: true}
			continue
		}

		op := fileop.Classify(h.Name, bl)
		if op.Kind == fileop.KindIgnore {
			glog.V(2).Infof("ignoring %s: %s", h.Name, op.Reason)
			continue
		}

		body, err := h.Data()
		if err != nil {
			return fmt.Errorf("%s: %w", h.Name, err)
		}
		queue <- entry.Named{Name: h.Name, Body: body, Op: op}
	}
}

// consume drains queue in arrival order, which is also reader order since
// the channel never reorders, converts each FileOp into a SavingEntry, and
// calls sv.Save. It owns a single scratch reference for whatever a
// minifier most recently produced (each `minify.*` strategy allocates its
// own output; the point of holding one reference rather than keeping a
// per-entry slice alive is that only the current entry's bytes are ever
// reachable at once, so memory stays bounded across a long repack), plus
// the progress sink and the error collector (spec.md 4.7, 5).
func consume(total int, queue <-chan entry.Named, sv saver.Saver, store *config.Store, prog *Progress, errs *ErrorCollector) error {
	prog.Start(total)

	n := 0
	var scratch []byte

	for e := range queue {
		prog.Push(n, e.Name)
		n++

		if e.Dir {
			if err := sv.Save(entry.Saving{Name: e.Name, Dir: true}); err != nil {
				return fmt.Errorf("%s: %w", e.Name, err)
			}
			continue
		}

		started := time.Now()
		out, compressMin := resolve(e, store, errs, &scratch)
		prog.Observe(time.Since(started), len(out))

		if out == nil {
			// Ignore(reason) was already recorded; nothing to save.
			continue
		}

		if err := sv.Save(entry.Saving{Name: e.Name, Body: out, CompressMin: compressMin}); err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}

		scratch = nil
	}

	prog.Finish()
	return nil
}

// resolve converts one entry's FileOp into the bytes and compress
// threshold a Saver needs, per spec.md 4.7's exact per-Kind rules. It
// returns a nil body only for the Ignore case, whose occurrence here (the
// producer already dropped blacklist/signfile Ignores) covers classifier
// verdicts that can still surface post-enqueue in future strategies.
func resolve(e entry.Named, store *config.Store, errs *ErrorCollector, scratch *[]byte) ([]byte, int) {
	switch e.Op.Kind {
	case fileop.KindIgnore:
		errs.Report("", e.Name, fmt.Errorf("ignored: %s", e.Op.Reason))
		return nil, 0

	case fileop.KindPass:
		return e.Body, 24

	case fileop.KindRecompress:
		return e.Body, e.Op.MinBytes

	case fileop.KindMinify:
		out, err := minify.Dispatch(e.Op.Strategy, store, e.Body)
		if err != nil {
			errs.Report("", e.Name, err)
			return e.Body, e.Op.Strategy.CompressMin()
		}
		if out == nil {
			// An empty input minifies to nil; keep it distinct from Ignore.
			out = []byte{}
		}
		*scratch = out
		return out, e.Op.Strategy.CompressMin()

	default:
		panic("pipeline: unknown FileOp kind")
	}
}
