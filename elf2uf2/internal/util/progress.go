// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

const (
	ptodo = "                         ] "
	pdone = " [========================="
)

// Progress draws a one line progress bar.
type Progress struct {
	w     io.Writer
	pre   string
	post  string
	scale int
	buf   []byte
}

// NewProgress returns a progress bar that prints cur/scale followed by post.
func NewProgress(w io.Writer, pre string, scale int, post string) *Progress {
	return &Progress{w: w, pre: pre, post: post, scale: scale, buf: make([]byte, 0, 80)}
}

// Update redraws the bar. The line is terminated when cur reaches max.
func (p *Progress) Update(cur, max int) {
	if max <= 0 {
		return
	}
	cur = min(cur, max)
	buf := p.buf[:0]
	buf = append(buf, '\r')
	buf = append(buf, p.pre...)
	done := 25 * cur / max
	buf = append(buf, pdone[:2+done]...)
	buf = append(buf, ptodo[done:]...)
	buf = strconv.AppendInt(buf, int64(cur/p.scale), 10)
	buf = append(buf, ' ')
	buf = append(buf, p.post...)
	if cur == max {
		buf = append(buf, '\n')
	}
	p.w.Write(buf)
	p.buf = buf
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
