// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package vpk0

import (
	"fmt"
	"io"
)

// lzssToken is either a literal byte or a back-reference. offset/length are
// always the raw LZSS values; the one/two-sample transform is applied when
// the token is written or histogrammed, not when it is produced, since it
// is a pure function of offset and the chosen Method.
type lzssToken struct {
	literal bool
	lit     byte
	length  int
	offset  int
}

// lzssPass is the result of one LZSS compression pass: the token stream
// plus the length and offset bit-width histograms the Huffman builder
// consumes.
type lzssPass struct {
	tokens           []lzssToken
	lengthHist       histogram
	offsetHist       histogram
	decompressedSize int
}

func newLzssPass() *lzssPass {
	return &lzssPass{lengthHist: histogram{}, offsetHist: histogram{}}
}

func (p *lzssPass) addLiteral(b byte) {
	p.tokens = append(p.tokens, lzssToken{literal: true, lit: b})
}

func (p *lzssPass) addMatch(length, offset int, method Method) {
	p.tokens = append(p.tokens, lzssToken{length: length, offset: offset})
	p.lengthHist.add(length)

	switch method {
	case OneSample:
		p.offsetHist.add(offset)
	case TwoSample:
		comps := encodeTwoSampleOffset(offset)
		if comps.hasFirst {
			p.offsetHist.add(comps.first)
		}
		p.offsetHist.add(comps.second)
	}
}

// runLZSS drives the sliding dictionary to completion, producing the token
// stream and both histograms for the given settings, method, and matcher
// backend.
func runLZSS(src []byte, settings LzssSettings, method Method, backend LzssBackend, log io.Writer) *lzssPass {
	dict := acquireLzssDict(src, settings)
	defer releaseLzssDict(dict)

	finder := selectMatcher(backend)
	pass := newLzssPass()

	for dict.remaining() > 0 {
		skipped, m, ok := findNearbyBestMatch(dict, settings, finder)
		if ok {
			for _, b := range skipped {
				pass.addLiteral(b)
			}
			pass.addMatch(m.size, m.offset, method)
			if log != nil {
				fmt.Fprintf(log, "adding match: %v then {size:%d offset:%d}\n", skipped, m.size, m.offset)
			}
			dict.advanceBy(len(skipped) + m.size)
			continue
		}

		b, hasByte := dict.nextUncodedByte()
		if !hasByte {
			break
		}
		pass.addLiteral(b)
		dict.advanceBy(1)
	}

	pass.decompressedSize = len(src)
	return pass
}

func selectMatcher(backend LzssBackend) matchFinder {
	switch backend {
	case BackendKmp:
		return kmpStandardMatcher{}
	case BackendKmpAhead:
		return kmpLookAheadMatcher{}
	default:
		return bruteMatcher{}
	}
}

// findNearbyBestMatch implements the "nearby lookahead": it tries skipping
// 0..maxAheadCheck-1 literal bytes before starting a match, accepting a
// skip only if doing so strictly improves on the best match found at a
// smaller skip (and that match is at least the minimum match length, i.e.
// longer than MaxUncoded).
// It stops at the first skip that fails to improve and returns the last
// skip that did. If no skip ever qualifies, ok is false and the caller
// should emit one literal.
func findNearbyBestMatch(dict *lzssDict, settings LzssSettings, finder matchFinder) (skipped []byte, best moveBack, ok bool) {
	ahead := dict.ahead()
	limit := maxAheadCheck
	if limit > len(ahead) {
		limit = len(ahead)
	}

	bestSize := 0
	bestOffset := -1

	for offset := 0; offset < limit; offset++ {
		cand, found := finder.find(dict.bufsAt(offset), settings)
		if !found || cand.size <= settings.MaxUncoded || cand.size <= bestSize {
			break
		}
		bestSize = cand.size
		bestOffset = offset
		best = cand
	}

	if bestOffset < 0 {
		return nil, moveBack{}, false
	}
	return ahead[:bestOffset], best, true
}
