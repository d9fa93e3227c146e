// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convert turns firmware ELF files into UF2 (or Intel HEX) images.
package convert

import (
	"bufio"
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/addr"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/board"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/elfimg"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/ihex"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/pagemap"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/uf2"
)

type Error struct {
	Op  string
	Err error
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return "elf2uf2: " + e.Op + ": " + e.Err.Error()
}

func wrapErr(op string, err *error) {
	if *err != nil {
		*err = &Error{op, *err}
	}
}

type Format uint8

const (
	UF2 Format = iota
	HEX
)

type Options struct {
	Board    *board.Profile
	Format   Format
	Log      glog.Verbose       // diagnostic output
	Progress func(n, total int) // called after every written UF2 block
}

// Pages decides whether img is a RAM or Flash binary and builds its page map
// for the target device described by p.
func Pages(img *elfimg.Image, p *board.Profile, log glog.Verbose) (pm pagemap.PageMap, err error) {
	if err = p.Validate(); err != nil {
		return nil, &Error{"board", err}
	}
	ram, err := detect(img, p)
	if err != nil {
		return nil, err
	}
	ranges := p.FlashRanges
	if ram {
		log.Info("detected RAM binary")
		ranges = p.RAMRanges
	} else {
		log.Info("detected FLASH binary")
	}
	pageSize := uint64(p.Page())
	pm, err = buildPages(img, ranges, pageSize, log)
	if err != nil {
		return nil, err
	}
	if len(pm) == 0 {
		return nil, &Error{"pagemap", pagemap.ErrNoMemoryPages}
	}
	if ram {
		err = pm.ValidateRAMEntry(img.Entry, p.MainRAM, p.XIPSRAM, pageSize)
		wrapErr("entry", &err)
		return pm, err
	}
	pm.PadToSectors(p.Sector(), pageSize)
	return pm, nil
}

func detect(img *elfimg.Image, p *board.Profile) (ram bool, err error) {
	defer wrapErr("detect", &err)
	return pagemap.IsRAMBinary(img.Entry, img.Segments, p.RAMRanges, p.FlashRanges)
}

func buildPages(img *elfimg.Image, ranges addr.Ranges, pageSize uint64, log glog.Verbose) (pm pagemap.PageMap, err error) {
	defer wrapErr("pagemap", &err)
	return pagemap.Build(img.Segments, ranges, pageSize, log)
}

// Convert reads the ELF image from src and writes the converted image to w.
func Convert(src io.ReaderAt, w io.Writer, opts *Options) (err error) {
	img, err := elfimg.Open(src)
	if err != nil {
		return &Error{"open", err}
	}
	p := opts.Board
	pm, err := Pages(img, p, opts.Log)
	if err != nil {
		return err
	}
	defer wrapErr("write", &err)
	if opts.Format == HEX {
		return ihex.Write(w, pm, img, p.Page())
	}
	opts.Log.Infof("using UF2 family %s", board.FamilyName(p.FamilyID))
	return uf2.WriteBlocks(w, pm, img, p.FamilyID, p.Page(), opts.Log, opts.Progress)
}

// File converts the in ELF file to the out file. The out file is removed if
// the conversion fails.
func File(in, out string, opts *Options) (err error) {
	r, err := os.Open(in)
	if err != nil {
		return err
	}
	defer r.Close()
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if e := f.Close(); err == nil {
			err = e
		}
		if err != nil {
			os.Remove(out)
		}
	}()
	w := bufio.NewWriter(f)
	if err = Convert(r, w, opts); err != nil {
		return err
	}
	return w.Flush()
}
