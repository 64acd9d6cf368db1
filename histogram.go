// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package vpk0

import "math/bits"

// bitWidth returns the number of bits needed to represent v: floor(log2(v))+1
// for v > 0, else 0. This is what the tree's leaf payload stores for each
// offset/length value actually written.
func bitWidth(v int) uint8 {
	if v <= 0 {
		return 0
	}
	return uint8(bits.Len(uint(v)))
}

// histogram counts how many times each bit-width (0..=32) was needed across
// a pass over the token stream. Keyed by bit-width, not by value.
type histogram map[uint8]int

func (h histogram) add(v int) {
	h[bitWidth(v)]++
}
