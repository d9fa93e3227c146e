// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uf2

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/board"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/convert"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/uf2"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/util"
)

const (
	DescrUF2 = "convert an ELF file to the UF2 format"
	DescrHex = "convert an ELF file to the Intel HEX format"
)

// BoardEnv names the environment variable with the default board name.
const BoardEnv = "ELF2UF2_BOARD"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] [ELF [%s]]\nOptions:\n",
			cmd, strings.ToUpper(cmd),
		)
		fs.PrintDefaults()
	}
	defBoard := os.Getenv(BoardEnv)
	if defBoard == "" {
		defBoard = board.RP2040.String()
	}
	boardName := fs.String(
		"board", defBoard,
		"target `board` ("+BoardEnv+" sets the default): "+
			strings.Join(board.Names(), ", "),
	)
	var family string
	if cmd == "uf2" {
		fs.StringVar(
			&family, "family", "",
			"UF2 family `ID` (32-bit number) or a known family name:\n"+
				strings.Join(board.FamilyNames(), "\n"),
		)
	}
	verbose := fs.Bool("v", false, "print diagnostic information")
	quiet := fs.Bool("quiet", false, "do not print the progress bar")
	watch := fs.Bool("watch", false, "convert again every time the ELF file changes")
	fs.Parse(args)
	if fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	in, out := util.InOutFiles(fs.Arg(0), ".elf", fs.Arg(1), "."+cmd)
	b, ok := board.Lookup(*boardName)
	if !ok {
		util.Fatal("unknown board: %s", *boardName)
	}
	opts := &convert.Options{
		Board: b.Profile(),
		Log:   util.SetupLog(*verbose),
	}
	if family != "" {
		id, err := board.ParseFamily(family)
		util.FatalErr(cmd, err)
		opts.Board = opts.Board.WithFamily(id)
	}
	if cmd == "hex" {
		opts.Format = convert.HEX
	} else if !*quiet && util.IsTerminal(os.Stderr) {
		pb := util.NewProgress(os.Stderr, "Writing:", 1024, "KiB")
		opts.Progress = func(n, total int) {
			pb.Update(n*uf2.BlockSize, total*uf2.BlockSize)
		}
	}
	if *watch {
		watchFile(in, func() {
			if err := convert.File(in, out, opts); err != nil {
				util.Warn("%s", err)
				return
			}
			util.Warn("%s: written %s", in, out)
		})
		return
	}
	util.FatalErr("", convert.File(in, out, opts))
}
