// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package vpk0

import "math/bits"

// LzssBackend selects the match-finding strategy used while encoding.
type LzssBackend int

const (
	// BackendBrute is a naive, exhaustive search. Matches Nintendo's own
	// encoder output most reliably.
	BackendBrute LzssBackend = iota
	// BackendKmp searches with a standard Knuth-Morris-Pratt automaton.
	BackendKmp
	// BackendKmpAhead is a slower, modified KMP that only rewinds to the
	// nearest zero in the truncated partial-match table.
	BackendKmpAhead
)

// maxAheadCheck bounds how many literal bytes the nearby-lookahead wrapper
// will skip before giving up on finding a better match.
const maxAheadCheck = 10

// LzssSettings configures the LZSS pass underlying vpk0 compression: the
// dictionary (window) size, the maximum match length, and the minimum match
// length, all as used by Nintendo's Super Smash Bros. 64 compressor.
type LzssSettings struct {
	// OffsetBits is the number of bits for the move-back window size.
	OffsetBits uint
	// LengthBits is the number of bits for the maximum encoded match length.
	LengthBits uint
	// MaxUncoded is the largest match length still emitted as literals
	// (i.e. min match length is MaxUncoded+1).
	MaxUncoded int
}

// DefaultLzssSettings returns the settings Nintendo used: a 16-bit (65535
// byte) window, an 8-bit (255 byte) maximum match, and a minimum match of 3
// bytes.
func DefaultLzssSettings() LzssSettings {
	return LzssSettings{OffsetBits: 16, LengthBits: 8, MaxUncoded: 2}
}

// ByteSizedLzssSettings is a convenience constructor taking byte sizes
// instead of bit widths. Each size is turned into the number of bits needed
// to hold it, so the resulting window and maximum match are the smallest
// 2^n-1 not below the given size (1000 gives 1023, 1024 gives 2047).
func ByteSizedLzssSettings(dictionary, maxMatch, minMatch int) LzssSettings {
	return LzssSettings{
		OffsetBits: uint(countNeededBits(dictionary)),
		LengthBits: uint(countNeededBits(maxMatch)),
		MaxUncoded: minMatch - 1,
	}
}

func (s LzssSettings) windowSize() int {
	return (1 << s.OffsetBits) - 1
}

func (s LzssSettings) maxEncoded() int {
	return (1 << s.LengthBits) - 1
}

func (s LzssSettings) minMatchLength() int {
	return s.MaxUncoded + 1
}

// countNeededBits returns the number of bits needed to represent val, i.e.
// bitWidth but over an int input that may legitimately be 0 (dictionary/
// match-length parameters are always positive in practice).
func countNeededBits(val int) uint8 {
	if val <= 0 {
		return 0
	}
	return uint8(bits.Len(uint(val)))
}
