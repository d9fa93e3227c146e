// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pagemap

import (
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/addr"
	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/elfimg"
)

// IsRAMBinary reports whether the image should be loaded into RAM. The entry
// point is translated to its load (physical) address using the first segment
// that contains it and the result is looked up in the RAM ranges and then in
// the Flash ranges. A device without RAM ranges only runs Flash binaries.
func IsRAMBinary(entry uint64, segs []elfimg.Segment, ram, flash addr.Ranges) (bool, error) {
	if ram == nil {
		return false, nil
	}
	for i := range segs {
		s := &segs[i]
		if !s.Loadable() {
			continue
		}
		mapped := min(s.Filesz, s.Memsz)
		if mapped == 0 || entry < s.Vaddr || entry >= s.Vaddr+mapped {
			continue
		}
		pentry := entry + s.Paddr - s.Vaddr
		switch {
		case ram.IsInitialized(pentry):
			return true, nil
		case flash.IsInitialized(pentry):
			return false, nil
		}
		return false, ErrEntryPointNotMapped // the first segment decides
	}
	return false, ErrEntryPointNotMapped
}
