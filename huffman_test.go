// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package vpk0

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestHuffman_EmptyHistogramYieldsEmptyTree(t *testing.T) {
	tree, m := buildHuffman(histogram{})
	assert.Check(t, is.Equal(len(tree.entries), 0))
	assert.Check(t, is.Equal(len(m), 0))
}

func TestHuffman_SingleSizeYieldsSingleLeaf(t *testing.T) {
	tree, m := buildHuffman(histogram{3: 10})
	assert.Check(t, is.Equal(tree.String(), "3"))
	assert.Check(t, is.Equal(m[3].size, uint8(3)))
}

func TestHuffman_EveryHistogramEntryHasACode(t *testing.T) {
	hist := histogram{1: 5, 2: 20, 4: 1, 8: 100, 16: 2}
	tree, m := buildHuffman(hist)
	assert.Check(t, len(tree.entries) > 0)

	for size := range hist {
		entry, ok := m[size]
		assert.Check(t, ok, size)
		assert.Check(t, entry.size >= size, size)
	}
}

func TestHuffman_CodeMapIsPrefixFree(t *testing.T) {
	hist := histogram{1: 1, 2: 2, 3: 4, 4: 8, 5: 16, 8: 1}
	_, m := buildHuffman(hist)

	seen := map[string]bool{}
	for _, e := range m {
		cs := e.code.String()
		if cs == "" {
			continue
		}
		if seen[cs] {
			continue
		}
		for other := range seen {
			assert.Check(t, !isPrefixOf(cs, other) && !isPrefixOf(other, cs), cs, other)
		}
		seen[cs] = true
	}
}

func isPrefixOf(a, b string) bool {
	if len(a) >= len(b) {
		return false
	}
	return b[:len(a)] == a
}

func TestHuffman_LeafPairMergeCombinesSmallLeafIntoLarger(t *testing.T) {
	// Two leaves of sizes 8 (freq 1000) and 7 (freq 1): merging costs
	// (8-7-1)*1 = 0 extra bits for the lesser entries and saves 1 bit per
	// occurrence of the larger size, so the merge must happen.
	hist := histogram{7: 1, 8: 1000}
	_, m := buildHuffman(hist)

	e7 := m[7]
	e8 := m[8]
	assert.Check(t, is.Equal(e7.size, e8.size))
	assert.Check(t, is.Equal(e7.code.String(), e8.code.String()))
}

func TestHuffman_ExternalTreeFillsMissingSizes(t *testing.T) {
	tree, err := parseTree("(1, (4, 7))")
	assert.NilError(t, err)

	m := tree.codeMap()
	hist := histogram{1: 1, 2: 1, 3: 1, 4: 1, 5: 1, 6: 1, 7: 1}

	assert.NilError(t, fillMissing(m, hist))

	// size 4 is present directly and must not be redirected.
	assert.Check(t, is.Equal(m[4].size, uint8(4)))
	// size 2 and 3 are missing and must borrow the smallest present size
	// strictly greater than themselves, i.e. 4.
	assert.Check(t, is.Equal(m[2].size, uint8(4)))
	assert.Check(t, is.Equal(m[3].size, uint8(4)))
	// size 5 and 6 borrow 7.
	assert.Check(t, is.Equal(m[5].size, uint8(7)))
	assert.Check(t, is.Equal(m[6].size, uint8(7)))
}

func TestHuffman_ExternalTreeFailsWhenHistogramExceedsMaxLeaf(t *testing.T) {
	tree, err := parseTree("(1, 4)")
	assert.NilError(t, err)

	m := tree.codeMap()
	hist := histogram{9: 1}

	err = fillMissing(m, hist)
	assert.Check(t, err != nil)
	var ce *TreeCoverageError
	assert.Check(t, errors.As(err, &ce))
	assert.Check(t, is.Equal(ce.Size, uint8(9)))
	assert.Check(t, is.Equal(ce.Max, uint8(4)))
}

func TestHuffman_ExternalTreeWithNoLeavesFails(t *testing.T) {
	tree, err := parseTree("()")
	assert.NilError(t, err)

	m := tree.codeMap()
	err = fillMissing(m, histogram{1: 1})
	assert.Check(t, errors.Is(err, ErrEmptyTreeCover))
}
