// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package info

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/board"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/uf2"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/util"
)

const Descr = "print the content summary of a UF2 file"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS] UF2\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	noVerify := fs.Bool("n", false, "do not verify the block sequence")
	fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	f, err := os.Open(fs.Arg(0))
	util.FatalErr("", err)
	blocks, err := uf2.ReadBlocks(bufio.NewReader(f))
	f.Close()
	util.FatalErr(fs.Arg(0), err)
	if !*noVerify {
		util.FatalErr(fs.Arg(0), uf2.Verify(blocks))
	}
	w := bufio.NewWriter(os.Stdout)
	describe(w, blocks)
	util.FatalErr("", w.Flush())
}

// run is a range of consecutive blocks that cover a contiguous address range.
type run struct {
	addr, size uint64
	blocks     int
}

func runs(blocks []uf2.Block) []run {
	var rs []run
	for i := range blocks {
		b := &blocks[i]
		if n := len(rs); n > 0 {
			r := &rs[n-1]
			if r.addr+r.size == uint64(b.Addr) {
				r.size += uint64(b.Len)
				r.blocks++
				continue
			}
		}
		rs = append(rs, run{uint64(b.Addr), uint64(b.Len), 1})
	}
	return rs
}

func describe(w io.Writer, blocks []uf2.Block) {
	fmt.Fprintf(w, "blocks: %d\n", len(blocks))
	if len(blocks) == 0 {
		return
	}
	b0 := &blocks[0]
	fmt.Fprintf(w, "flags:  %#08x (%s)\n", b0.Flags, uf2.FlagString(b0.Flags))
	if b0.Flags&uf2.FamilyIDPresent != 0 {
		fmt.Fprintf(w, "family: %s\n", board.FamilyName(b0.Family))
	} else {
		fmt.Fprintf(w, "size:   %d\n", b0.Family)
	}
	for _, r := range runs(blocks) {
		fmt.Fprintf(
			w, "%#08x-%#08x %7d B %5d blocks\n",
			r.addr, r.addr+r.size, r.size, r.blocks,
		)
	}
}
