// Copyright 2024 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uf2 implements the UF2 block format used by the mass storage
// bootloaders of microcontrollers.
package uf2

//go:generate mockgen -destination=mocks/writer.go -package=mocks io Writer

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"

	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/pagemap"
)

const (
	Magic0 = 0x0a324655
	Magic1 = 0x9e5d5157
	Magic2 = 0x0ab16f30

	BlockSize   = 512
	PayloadSize = 476
)

// Flags
const (
	NotMainFlash         = 0x00000001
	FileContainer        = 0x00001000
	FamilyIDPresent      = 0x00002000
	MD5ChecksumPresent   = 0x00004000
	ExtensionTagsPresent = 0x00008000
)

var flagNames = []struct {
	flag uint32
	name string
}{
	{NotMainFlash, "not-main-flash"},
	{FileContainer, "file-container"},
	{FamilyIDPresent, "family-id"},
	{MD5ChecksumPresent, "md5"},
	{ExtensionTagsPresent, "extension-tags"},
}

// FlagString returns the names of the flags set in f separated by '|'.
// Unknown bits are printed as a hexadecimal number.
func FlagString(f uint32) string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
			f &^= fn.flag
		}
	}
	if f != 0 {
		names = append(names, fmt.Sprintf("%#x", f))
	}
	return strings.Join(names, "|")
}

// Block is the wire representation of one UF2 block.
type Block struct {
	Magic0 uint32
	Magic1 uint32
	Flags  uint32
	Addr   uint32
	Len    uint32
	Seq    uint32
	Total  uint32
	Family uint32 // or file size if FamilyIDPresent is not set
	Data   [PayloadSize]byte
	Magic2 uint32
}

// Payload returns the valid part of the block data.
func (b *Block) Payload() []byte {
	return b.Data[:min(b.Len, PayloadSize)]
}

// Writer writes consecutive UF2 blocks, one per page.
type Writer struct {
	w io.Writer
	b Block
}

// NewWriter returns a writer of total blocks of the given family.
func NewWriter(w io.Writer, flags, family uint32, total int) *Writer {
	u := new(Writer)
	u.w = w
	u.b.Magic0 = Magic0
	u.b.Magic1 = Magic1
	u.b.Flags = flags
	u.b.Total = uint32(total)
	u.b.Family = family
	u.b.Magic2 = Magic2
	return u
}

// WritePage writes the next block that holds page at the target address
// addr. The block payload after the page is zeroed.
func (u *Writer) WritePage(addr uint64, page []byte) error {
	b := &u.b
	if len(page) > PayloadSize {
		panic("uf2: page does not fit in the block")
	}
	if addr>>32 != 0 {
		return fmt.Errorf("uf2: the target address %#x doesn't fit in 32 bits", addr)
	}
	if b.Seq >= b.Total {
		return fmt.Errorf("uf2: block %d exceeds the declared %d blocks", b.Seq, b.Total)
	}
	b.Addr = uint32(addr)
	b.Len = uint32(copy(b.Data[:], page))
	clear(b.Data[b.Len:])
	if err := binary.Write(u.w, binary.LittleEndian, b); err != nil {
		return err
	}
	b.Seq++
	return nil
}

// Written returns the number of blocks written so far.
func (u *Writer) Written() int {
	return int(u.b.Seq)
}

// WriteBlocks writes the pages of pm in ascending address order, one block
// per page, reading the page contents from src. The progress function, if
// not nil, is called after every written block.
func WriteBlocks(w io.Writer, pm pagemap.PageMap, src io.ReaderAt, family, pageSize uint32, log glog.Verbose, progress func(n, total int)) error {
	addrs := pm.Addrs()
	if n := len(addrs); n != 0 && addrs[n-1]>>32 != 0 {
		return fmt.Errorf("uf2: the target address %#x doesn't fit in 32 bits", addrs[n-1])
	}
	u := NewWriter(w, FamilyIDPresent, family, len(addrs))
	page := make([]byte, pageSize)
	for i, a := range addrs {
		clear(page)
		if err := pagemap.RealizePage(src, pm[a], page); err != nil {
			return err
		}
		log.Infof("page %d / %d %#08x", i, len(addrs), a)
		if err := u.WritePage(a, page); err != nil {
			return err
		}
		if progress != nil {
			progress(i+1, len(addrs))
		}
	}
	log.Infof("written %d blocks", u.Written())
	return nil
}
