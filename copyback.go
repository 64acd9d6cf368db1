// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package vpk0

// copyBackRef appends length bytes read from offset bytes behind the end of
// dst to dst itself. When offset < length the source region overlaps the
// destination — vpk0 relies on this for run-length style matches — so the
// copy is seeded with one full offset-sized chunk and then doubled: each
// pass copies from the already-extended tail of dst, which is cheap to
// verify correct and much faster than copying one byte at a time.
func copyBackRef(dst []byte, offset, length int) []byte {
	start := len(dst) - offset
	out := append(dst, make([]byte, length)...)

	if offset >= length {
		copy(out[len(dst):], out[start:start+length])
		return out
	}

	copied := copy(out[len(dst):], out[start:len(dst)])
	for copied < length {
		n := copy(out[len(dst)+copied:len(dst)+length], out[len(dst):len(dst)+copied])
		copied += n
	}

	return out
}
