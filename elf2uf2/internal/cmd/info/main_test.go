// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package info

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/uf2"
)

func blocks(addrs ...uint32) []uf2.Block {
	bs := make([]uf2.Block, len(addrs))
	for i, a := range addrs {
		bs[i] = uf2.Block{
			Magic0: uf2.Magic0,
			Magic1: uf2.Magic1,
			Flags:  uf2.FamilyIDPresent,
			Addr:   a,
			Len:    256,
			Seq:    uint32(i),
			Total:  uint32(len(addrs)),
			Family: 0xe48bff56,
			Magic2: uf2.Magic2,
		}
	}
	return bs
}

func TestRuns(t *testing.T) {
	rs := runs(blocks(0x10000000, 0x10000100, 0x10000200, 0x10001000))
	assert.Equal(t, []run{
		{0x10000000, 0x300, 3},
		{0x10001000, 0x100, 1},
	}, rs)
	assert.Empty(t, runs(nil))
}

func TestDescribe(t *testing.T) {
	var sb strings.Builder
	describe(&sb, blocks(0x20000000, 0x20000100))
	out := sb.String()
	assert.Contains(t, out, "blocks: 2\n")
	assert.Contains(t, out, "family: rp2040\n")
	assert.Contains(t, out, "flags:  0x00002000 (family-id)\n")
	assert.Contains(t, out, "0x20000000-0x20000200")

	sb.Reset()
	describe(&sb, nil)
	assert.Equal(t, "blocks: 0\n", sb.String())
}
