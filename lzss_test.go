// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package vpk0

import (
	"bytes"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestLzssSettings_Defaults(t *testing.T) {
	s := DefaultLzssSettings()
	assert.Check(t, is.Equal(s.windowSize(), 65535))
	assert.Check(t, is.Equal(s.maxEncoded(), 255))
	assert.Check(t, is.Equal(s.minMatchLength(), 3))
}

func TestLzssSettings_ByteSizedRoundsUpToPowerOfTwo(t *testing.T) {
	s := ByteSizedLzssSettings(1000, 100, 3)
	assert.Check(t, s.windowSize() >= 1000)
	assert.Check(t, s.maxEncoded() >= 100)
	assert.Check(t, is.Equal(s.minMatchLength(), 3))
}

func TestLzssWindow_BufsAtViews(t *testing.T) {
	src := []byte("abcdefghij")
	settings := LzssSettings{OffsetBits: 4, LengthBits: 4, MaxUncoded: 2}
	dict := newLzssDict(src, settings)
	dict.advanceBy(5)

	bufs := dict.bufsAt(0)
	assert.Check(t, is.DeepEqual(bufs.behind, []byte("abcde")))
	assert.Check(t, is.DeepEqual(bufs.ahead, []byte("fghij")))
	assert.Check(t, is.DeepEqual(bufs.full, []byte("abcdefghij")))
}

func TestLzssWindow_BehindBoundedByWindowSize(t *testing.T) {
	src := bytes.Repeat([]byte("x"), 20)
	settings := LzssSettings{OffsetBits: 2, LengthBits: 4, MaxUncoded: 2} // windowSize = 3
	dict := newLzssDict(src, settings)
	dict.advanceBy(10)

	bufs := dict.bufsAt(0)
	assert.Check(t, is.Equal(len(bufs.behind), 3))
}

func TestLzssMatch_BrutePrefersLongestThenClosest(t *testing.T) {
	// "AB" appears at index 0 (offset 6) and index 4 (offset 2, closer);
	// both give the same 2-byte match against ahead "ABXY", so the closer
	// offset must win.
	src := []byte("ABxxABABXY")
	settings := LzssSettings{OffsetBits: 8, LengthBits: 8, MaxUncoded: 1}
	dict := newLzssDict(src, settings)
	dict.advanceBy(6)

	m, ok := bruteMatcher{}.find(dict.bufsAt(0), settings)
	assert.Check(t, ok)
	assert.Check(t, is.Equal(m.offset, 2))
}

func TestLzssMatch_BruteRejectsBelowMinMatch(t *testing.T) {
	// The only repeat is "AB" at offset 6, a 2-byte match, shorter than the
	// 3-byte minimum match length (MaxUncoded 2).
	src := []byte("ABxxxxAB")
	settings := LzssSettings{OffsetBits: 8, LengthBits: 8, MaxUncoded: 2}
	dict := newLzssDict(src, settings)
	dict.advanceBy(6)

	_, ok := bruteMatcher{}.find(dict.bufsAt(0), settings)
	assert.Check(t, !ok)
}

func TestLzssMatch_SelfOverlappingRunLength(t *testing.T) {
	src := []byte("A" + string(bytes.Repeat([]byte("A"), 20)))
	settings := DefaultLzssSettings()
	dict := newLzssDict(src, settings)
	dict.advanceBy(1)

	m, ok := bruteMatcher{}.find(dict.bufsAt(0), settings)
	assert.Check(t, ok)
	assert.Check(t, is.Equal(m.offset, 1))
	assert.Check(t, m.size >= 3)
}

func TestLzssMatch_AllBackendsFindValidMatchOnRepeatingInput(t *testing.T) {
	src := bytes.Repeat([]byte("abcabcabcabcabcabc"), 4)
	settings := DefaultLzssSettings()

	backends := []matchFinder{bruteMatcher{}, kmpStandardMatcher{}, kmpLookAheadMatcher{}}
	dict := newLzssDict(src, settings)
	dict.advanceBy(len(src) / 2)
	bufs := dict.bufsAt(0)

	for _, f := range backends {
		m, ok := f.find(bufs, settings)
		assert.Check(t, ok)
		assert.Check(t, m.size >= settings.minMatchLength())
		assert.Check(t, m.offset >= 1 && m.offset <= len(bufs.behind))
	}
}

func TestLzss_RunProducesValidTokensAndHistograms(t *testing.T) {
	src := []byte("YAAAAAAAAAAAAAA")
	pass := runLZSS(src, DefaultLzssSettings(), OneSample, BackendBrute, nil)

	assert.Check(t, is.Equal(pass.decompressedSize, len(src)))

	var rebuilt []byte
	for _, tok := range pass.tokens {
		if tok.literal {
			rebuilt = append(rebuilt, tok.lit)
			continue
		}
		rebuilt = copyBackRef(rebuilt, tok.offset, tok.length)
	}
	assert.Check(t, is.DeepEqual(rebuilt, src))

	for _, tok := range pass.tokens {
		if !tok.literal {
			assert.Check(t, pass.lengthHist[bitWidth(tok.length)] >= 1)
			assert.Check(t, pass.offsetHist[bitWidth(tok.offset)] >= 1)
		}
	}
}

func TestLzss_NoMatchYieldsAllLiterals(t *testing.T) {
	src := []byte("abcdefgh12345")
	pass := runLZSS(src, DefaultLzssSettings(), OneSample, BackendBrute, nil)

	assert.Check(t, is.Equal(len(pass.tokens), len(src)))
	for _, tok := range pass.tokens {
		assert.Check(t, tok.literal)
	}
	assert.Check(t, is.Equal(len(pass.lengthHist), 0))
	assert.Check(t, is.Equal(len(pass.offsetHist), 0))
}
