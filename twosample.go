// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package vpk0

// offsetComponents is the result of the two-sample offset transform: either
// a single component (hasFirst false, just Second) or a pair written in
// (first, second) order.
type offsetComponents struct {
	hasFirst bool
	first    int
	second   int
}

// encodeTwoSampleOffset devolves an LZSS offset into the one or two smaller
// values TwoSample mode writes. v = offset+8, q = v/4, r = v%4; r == 0
// writes a single component q, otherwise the pair (r-1, q). r-1 is always
// smaller than 3, and when r == 0, q is always >= 3 (the smallest
// qualifying case is offset=4, v=12, q=3, r=0) — which is exactly the
// decode-side condition that distinguishes one component from two.
func encodeTwoSampleOffset(offset int) offsetComponents {
	v := offset + 8
	q := v / 4
	r := v % 4

	if r != 0 {
		return offsetComponents{hasFirst: true, first: r - 1, second: q}
	}
	return offsetComponents{second: q}
}

// decodeTwoSampleOffset reverses the transform. u is the first value read
// from the offset tree; readSecond is called only when u < 3, to read the
// second component from the same tree.
func decodeTwoSampleOffset(u uint32, readSecond func() (uint32, error)) (int, error) {
	if u < 3 {
		v, err := readSecond()
		if err != nil {
			return 0, err
		}
		return int(u) + 1 + 4*int(v) - 8, nil
	}
	return 4*int(u) - 8, nil
}
