// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package vpk0

// moveBack is a candidate LZSS match: size is the match length in bytes,
// offset is how far back in the output it starts.
type moveBack struct {
	size   int
	offset int
}

// matchFinder looks for the best back-reference starting at the cursor
// implied by bufs. ok is false when the finder produced no candidate;
// bruteMatcher also reports false when every match it saw was shorter than
// the minimum match length.
type matchFinder interface {
	find(bufs lzssBufs, settings LzssSettings) (moveBack, bool)
}

// bruteMatcher exhaustively scans the whole window. Prefers the longest
// match; among equal lengths prefers the closest (smallest) offset, which
// falls out naturally from scanning the window far-to-near.
type bruteMatcher struct{}

func (bruteMatcher) find(bufs lzssBufs, settings LzssSettings) (moveBack, bool) {
	behind, ahead, full := bufs.behind, bufs.ahead, bufs.full
	windowSize := len(behind)
	longestMatch := settings.maxEncoded()
	shortestMatch := settings.MaxUncoded + 1

	var best moveBack
	found := false

	for i := 0; i < windowSize; i++ {
		src := full[i:]
		length := 0
		for length < len(src) && length < len(ahead) && src[length] == ahead[length] {
			length++
		}
		if length > longestMatch {
			length = longestMatch
		}
		if length < shortestMatch {
			continue
		}

		if !found || length >= best.size {
			best = moveBack{size: length, offset: windowSize - i}
			found = true
		}
	}

	return best, found
}

// kmpStandardMatcher finds matches with a standard KMP automaton over the
// lookahead pattern.
type kmpStandardMatcher struct{}

func (kmpStandardMatcher) find(bufs lzssBufs, settings LzssSettings) (moveBack, bool) {
	return findKmp(bufs, settings.maxEncoded(), false)
}

// kmpLookAheadMatcher is the same search, but on a partial match it only
// rewinds the window cursor to the nearest zero in the truncated partial-
// match table rather than following the full KMP failure link — slower,
// but matches Nintendo's own encoder more closely for some inputs.
type kmpLookAheadMatcher struct{}

func (kmpLookAheadMatcher) find(bufs lzssBufs, settings LzssSettings) (moveBack, bool) {
	return findKmp(bufs, settings.maxEncoded(), true)
}

// findKmp is shared by kmpStandardMatcher and kmpLookAheadMatcher,
// parameterized by checkRL (the look-ahead rewind behavior).
func findKmp(bufs lzssBufs, max int, checkRL bool) (moveBack, bool) {
	ahead, behind, full := bufs.ahead, bufs.behind, bufs.full
	lps := computeLps(ahead)
	windowSize := len(behind)
	patternSize := len(ahead)

	var best moveBack
	found := false
	targetIdx := 0
	patIdx := 0

	for patIdx < patternSize && targetIdx < windowSize {
		target := full[targetIdx:]
		pattern := ahead[patIdx:]
		limit := max - patIdx

		newlyMatched := 0
		for newlyMatched < len(target) && newlyMatched < len(pattern) && newlyMatched < limit &&
			target[newlyMatched] == pattern[newlyMatched] {
			newlyMatched++
		}

		matchSize := newlyMatched + patIdx

		if !found || best.size <= matchSize {
			best = moveBack{size: matchSize, offset: windowSize - (targetIdx - patIdx)}
			found = true
		}

		lpsIdx := matchSize - 1
		if lpsIdx < 0 {
			lpsIdx = 0
		}

		if checkRL {
			nearestZero := lpsPartialSkip(lps[:lpsIdx])
			targetIdx += nearestZero + 1
			patIdx = 0
		} else {
			var advance int
			if patIdx == 0 {
				advance = matchSize
				if advance < 1 {
					advance = 1
				}
			} else {
				advance = newlyMatched
			}
			targetIdx += advance
			if lpsIdx < len(lps) {
				patIdx = lps[lpsIdx]
			} else {
				patIdx = 0
			}
		}
	}

	return best, found
}

// lpsPartialSkip returns the rightmost index in limited holding a zero, or
// 0 if none do — used by the look-ahead matcher to avoid skipping past an
// internal partial match.
func lpsPartialSkip(limited []int) int {
	for i := len(limited) - 1; i >= 0; i-- {
		if limited[i] == 0 {
			return i
		}
	}
	return 0
}

// computeLps builds the longest-proper-prefix-which-is-also-suffix table
// for pattern (the standard KMP failure function).
func computeLps(pattern []byte) []int {
	lps := make([]int, len(pattern))
	prefixIdx := 0

	for i := 1; i < len(pattern); i++ {
		ch := pattern[i]
		for prefixIdx > 0 && ch != pattern[prefixIdx] {
			prefixIdx = lps[prefixIdx-1]
		}
		if pattern[prefixIdx] == ch {
			prefixIdx++
			lps[i] = prefixIdx
		}
	}

	return lps
}
