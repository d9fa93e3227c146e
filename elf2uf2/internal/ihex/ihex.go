// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ihex writes a page map in the Intel HEX format.
package ihex

import (
	"fmt"
	"io"

	"github.com/marcinbor85/gohex"

	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/pagemap"
)

const lineLen = 16

// Write writes the pages of pm that have contents (padding pages are
// skipped) as Intel HEX records.
func Write(w io.Writer, pm pagemap.PageMap, src io.ReaderAt, pageSize uint32) error {
	mem := gohex.NewMemory()
	for _, a := range pm.Addrs() {
		frags := pm[a]
		if len(frags) == 0 {
			continue
		}
		if a+uint64(pageSize) > 1<<32 {
			return fmt.Errorf("ihex: the target address %#x doesn't fit in 32 bits", a)
		}
		page := make([]byte, pageSize)
		if err := pagemap.RealizePage(src, frags, page); err != nil {
			return err
		}
		if err := mem.AddBinary(uint32(a), page); err != nil {
			return err
		}
	}
	return mem.DumpIntelHex(w, lineLen)
}
