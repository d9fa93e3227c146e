// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uf2

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var ErrBadMagic = errors.New("uf2: bad block magic")

// ReadBlocks reads all blocks from r. The length of the input must be a
// multiple of BlockSize.
func ReadBlocks(r io.Reader) ([]Block, error) {
	var (
		blocks []Block
		buf    [BlockSize]byte
	)
	for {
		_, err := io.ReadFull(r, buf[:])
		if err == io.EOF {
			return blocks, nil
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("uf2: block %d: truncated", len(blocks))
		}
		if err != nil {
			return nil, err
		}
		var b Block
		if _, err := binary.Decode(buf[:], binary.LittleEndian, &b); err != nil {
			return nil, err
		}
		if b.Magic0 != Magic0 || b.Magic1 != Magic1 || b.Magic2 != Magic2 {
			return nil, fmt.Errorf("%w in block %d", ErrBadMagic, len(blocks))
		}
		blocks = append(blocks, b)
	}
}

// Verify checks that the blocks form one complete transfer: consecutive
// block numbers starting from zero, the same total and family in every
// block and a payload that fits in the block.
func Verify(blocks []Block) error {
	for i := range blocks {
		b := &blocks[i]
		switch {
		case b.Seq != uint32(i):
			return fmt.Errorf("uf2: block %d: unexpected block number %d", i, b.Seq)
		case b.Total != uint32(len(blocks)):
			return fmt.Errorf("uf2: block %d: total %d, want %d", i, b.Total, len(blocks))
		case b.Len > PayloadSize:
			return fmt.Errorf("uf2: block %d: payload size %d", i, b.Len)
		case b.Flags != blocks[0].Flags || b.Family != blocks[0].Family:
			return fmt.Errorf("uf2: block %d: flags/family differ from block 0", i)
		}
	}
	return nil
}
