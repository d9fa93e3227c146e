// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boards

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/addr"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/board"
)

const Descr = "list the supported boards and UF2 families"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	ranges := fs.Bool("r", false, "print the address ranges of every board")
	fs.Parse(args)
	list(os.Stdout, *ranges)
}

func printRanges(w io.Writer, title string, rs addr.Ranges) {
	if rs == nil {
		return
	}
	fmt.Fprintf(w, "    %s:\n", title)
	for _, r := range rs {
		fmt.Fprintf(w, "      %#08x-%#08x %s\n", r.From, r.To, r.Kind)
	}
}

func list(w io.Writer, ranges bool) {
	fmt.Fprintln(w, "Boards:")
	for _, b := range board.All() {
		p := b.Profile()
		kind := "flash"
		if p.RAMRanges != nil {
			kind = "flash, RAM"
		}
		fmt.Fprintf(
			w, "  %-8s %s (family %s, page %d B, sector %d B, %s)\n",
			p.Name, p.Descr, board.FamilyName(p.FamilyID), p.Page(),
			p.Sector(), kind,
		)
		if ranges {
			printRanges(w, "flash binary", p.FlashRanges)
			printRanges(w, "RAM binary", p.RAMRanges)
		}
	}
	fmt.Fprintln(w, "UF2 families:")
	for _, name := range board.FamilyNames() {
		id, _ := board.ParseFamily(name)
		fmt.Fprintf(w, "  %-14s %#08x\n", name, id)
	}
}
