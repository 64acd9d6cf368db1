// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package vpk0

// lzssBufs is the three views a match finder needs around the current
// cursor: the already-seen window to search (behind), the unencoded data to
// match against (ahead), and their concatenation (full), which lets a match
// start in behind and continue past the cursor into ahead — the
// self-overlapping back-reference case.
type lzssBufs struct {
	behind []byte
	ahead  []byte
	full   []byte
}

// lzssDict is the sliding dictionary over a fully buffered source. The spec
// reads its input fully before compressing, so unlike a streaming port this
// is plain slice arithmetic rather than a draining ring buffer: window and
// lookahead bounds are recomputed from pos on every query.
type lzssDict struct {
	src      []byte
	pos      int
	window   int
	maxMatch int
}

func newLzssDict(src []byte, settings LzssSettings) *lzssDict {
	return &lzssDict{
		src:      src,
		window:   settings.windowSize(),
		maxMatch: settings.maxEncoded(),
	}
}

// reset rebinds the dictionary to a new source without reallocating,
// mirroring the teacher's pool-acquire pattern (see lzss_window_pool.go).
func (d *lzssDict) reset(src []byte, settings LzssSettings) {
	d.src = src
	d.pos = 0
	d.window = settings.windowSize()
	d.maxMatch = settings.maxEncoded()
}

// ahead returns the unencoded lookahead bytes at the current cursor,
// ignoring any further peek.
func (d *lzssDict) ahead() []byte {
	return d.bufsAt(0).ahead
}

// remaining reports how many unencoded bytes are left to process.
func (d *lzssDict) remaining() int {
	return len(d.src) - d.pos
}

func (d *lzssDict) nextUncodedByte() (byte, bool) {
	a := d.ahead()
	if len(a) == 0 {
		return 0, false
	}
	return a[0], true
}

// bufsAt returns the behind/ahead/full views as if the cursor were n bytes
// further along, without actually moving it. Used by the nearby-lookahead
// wrapper to peek 0..maxAheadCheck-1 bytes ahead.
func (d *lzssDict) bufsAt(n int) lzssBufs {
	end := d.pos + n
	if end > len(d.src) {
		end = len(d.src)
	}

	aheadEnd := end + d.maxMatch
	if aheadEnd > len(d.src) {
		aheadEnd = len(d.src)
	}

	behindStart := end - d.window
	if behindStart < 0 {
		behindStart = 0
	}

	return lzssBufs{
		ahead:  d.src[end:aheadEnd],
		behind: d.src[behindStart:end],
		full:   d.src[behindStart:aheadEnd],
	}
}

// advanceBy moves the cursor forward by n bytes, which have now been
// encoded (as literals, or as part of a back-reference).
func (d *lzssDict) advanceBy(n int) {
	d.pos += n
}
