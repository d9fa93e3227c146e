// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pagemap

import "io"

// RealizePage reads the page contents described by frags from src into buf.
// The parts of buf not covered by frags are left untouched so the caller
// should clear buf before.
func RealizePage(src io.ReaderAt, frags []Fragment, buf []byte) error {
	for _, f := range frags {
		if f.end() > uint64(len(buf)) {
			panic("pagemap: fragment outside of the page")
		}
		p := buf[f.PageOffset:f.end()]
		n, err := src.ReadAt(p, int64(f.FileOffset))
		if n == len(p) {
			continue
		}
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}
