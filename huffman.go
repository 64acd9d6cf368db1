// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package vpk0

import (
	"container/heap"
	"fmt"
)

// huffCode is a prefix code being built up bit by bit: MSB first, width
// tracked separately since the leading zero bits are significant.
type huffCode struct {
	code uint32
	size uint8
}

func (c huffCode) extend(bit bool) huffCode {
	v := c.code << 1
	if bit {
		v |= 1
	}
	return huffCode{code: v, size: c.size + 1}
}

func (c huffCode) String() string {
	if c.size == 0 {
		return ""
	}
	return fmt.Sprintf("%0*b", c.size, c.code)
}

// mapEntry is what a bit-width maps to: the tree leaf's own headline size
// (which may be larger than the key, when the key was absorbed as a
// "lesser" size or filled in from a larger present size) and its code.
type mapEntry struct {
	size uint8
	code huffCode
}

// hnode is a node of the in-memory construction tree: either a leaf (one
// real bit-width), a combined leaf (a headline bit-width that also stands
// in for one or more smaller, absorbed bit-widths sharing its code), or an
// internal node joining two subtrees.
type hnode struct {
	freq   int
	isLeaf bool
	size   uint8
	lesser []uint8
	left   *hnode
	right  *hnode
}

// combine joins two nodes popped from the builder's heap, preferring the
// leaf-pair merge (tryMergeLeaves) over a plain internal node whenever the
// merge doesn't cost more bits than it saves.
func combine(l, r *hnode) *hnode {
	if merged := tryMergeLeaves(l, r); merged != nil {
		return merged
	}
	return &hnode{freq: l.freq + r.freq, left: l, right: r}
}

// tryMergeLeaves implements the leaf-pair optimization: when two leaves (or
// combined leaves) meet in the heap, check whether writing both at the
// larger of their two bit-widths, sharing one code, costs fewer bits overall
// than keeping them on separate branches. hs/ls are the higher/lower
// headline sizes, hf/lf their accumulated frequencies.
func tryMergeLeaves(l, r *hnode) *hnode {
	higher, lower, ok := orderLeaves(l, r)
	if !ok {
		return nil
	}

	hs, ls := higher.size, lower.size
	hf, lf := higher.freq, lower.freq
	bitDiff := int64(hs) - int64(ls)
	bitsGained := int64(hf) // one bit saved per occurrence of the higher size
	bitsLost := (bitDiff - 1) * int64(lf)

	if bitsGained-bitsLost < 0 {
		return nil
	}

	lesser := make([]uint8, 0, 1+len(higher.lesser)+len(lower.lesser))
	lesser = append(lesser, ls)
	lesser = append(lesser, higher.lesser...)
	lesser = append(lesser, lower.lesser...)

	return &hnode{isLeaf: true, size: hs, freq: hf + lf, lesser: lesser}
}

// orderLeaves returns (higher, lower) by headline bit-width when both nodes
// are leaf-like; ties favor l as the higher one (matching the original
// encoder's >= comparison).
func orderLeaves(l, r *hnode) (higher, lower *hnode, ok bool) {
	if !l.isLeaf || !r.isLeaf {
		return nil, nil, false
	}
	if l.size >= r.size {
		return l, r, true
	}
	return r, l, true
}

// hnodeHeap is a frequency-ordered min-heap of pending construction nodes.
type hnodeHeap []*hnode

func (h hnodeHeap) Len() int            { return len(h) }
func (h hnodeHeap) Less(i, j int) bool  { return h[i].freq < h[j].freq }
func (h hnodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *hnodeHeap) Push(x any)         { *h = append(*h, x.(*hnode)) }
func (h *hnodeHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// buildTreeFromHistogram constructs a Huffman tree from a bit-width
// histogram by repeated minimum-frequency combination, re-attempting the
// leaf-pair merge at every pop so CombinedLeaf-equivalent nodes remain
// mergeable with further leaves.
func buildTreeFromHistogram(hist histogram) *hnode {
	if len(hist) == 0 {
		return nil
	}

	h := make(hnodeHeap, 0, len(hist))
	for size, freq := range hist {
		h = append(h, &hnode{isLeaf: true, size: size, freq: freq})
	}
	heap.Init(&h)

	for h.Len() >= 2 {
		l := heap.Pop(&h).(*hnode)
		r := heap.Pop(&h).(*hnode)
		heap.Push(&h, combine(l, r))
	}

	return heap.Pop(&h).(*hnode)
}

// flattenHnode appends n's post-order linear encoding to arr and returns its
// own index (the root of the written subtree).
func flattenHnode(n *hnode, arr *[]treeEntry) int {
	if n.isLeaf {
		idx := len(*arr)
		*arr = append(*arr, treeEntry{isLeaf: true, leaf: n.size})
		return idx
	}
	left := flattenHnode(n.left, arr)
	right := flattenHnode(n.right, arr)
	idx := len(*arr)
	*arr = append(*arr, treeEntry{left: left, right: right})
	return idx
}

// generateCodeMap walks the construction tree assigning a prefix code to
// each leaf (left = 0, right = 1), also mapping every absorbed lesser size
// to its combined leaf's headline size and code.
func generateCodeMap(n *hnode, prefix huffCode, m map[uint8]mapEntry) {
	if n.isLeaf {
		m[n.size] = mapEntry{size: n.size, code: prefix}
		for _, ls := range n.lesser {
			m[ls] = mapEntry{size: n.size, code: prefix}
		}
		return
	}
	generateCodeMap(n.left, prefix.extend(false), m)
	generateCodeMap(n.right, prefix.extend(true), m)
}

// buildHuffman builds both the wire-encodable tree and the encoder's
// size -> (headline size, code) map from a bit-width histogram. An empty
// histogram yields an empty tree and an empty map.
func buildHuffman(hist histogram) (*huffTree, map[uint8]mapEntry) {
	root := buildTreeFromHistogram(hist)
	if root == nil {
		return &huffTree{}, map[uint8]mapEntry{}
	}

	var entries []treeEntry
	flattenHnode(root, &entries)

	m := make(map[uint8]mapEntry, len(hist))
	generateCodeMap(root, huffCode{}, m)

	return &huffTree{entries: entries}, m
}

// codeMap walks a structural (externally parsed or decoded) tree and
// assigns each leaf its prefix code. Unlike generateCodeMap this never
// synthesizes lesser-size entries: a parsed tree has no merge history, only
// the literal leaves the user wrote.
func (t *huffTree) codeMap() map[uint8]mapEntry {
	m := make(map[uint8]mapEntry)
	if len(t.entries) == 0 {
		return m
	}

	var walk func(idx int, prefix huffCode)
	walk = func(idx int, prefix huffCode) {
		e := t.entries[idx]
		if e.isLeaf {
			m[e.leaf] = mapEntry{size: e.leaf, code: prefix}
			return
		}
		walk(e.left, prefix.extend(false))
		walk(e.right, prefix.extend(true))
	}
	walk(len(t.entries)-1, huffCode{})
	return m
}

// fillMissing extends m in place so every bit-width present in hist has an
// entry: widths already in m are left alone (re-inserted as a no-op to
// mirror the reference fill's unconditional-insert shape), and missing
// widths borrow the code of the smallest strictly-greater width present in
// m at the time of the initial parse. Fails if a histogram width exceeds
// the tree's largest leaf, or if the tree has no leaves while hist is not
// empty.
func fillMissing(m map[uint8]mapEntry, hist histogram) error {
	var max uint8
	var haveMax bool
	for k := range m {
		if !haveMax || k > max {
			max = k
			haveMax = true
		}
	}
	if !haveMax {
		if len(hist) == 0 {
			return nil
		}
		return ErrEmptyTreeCover
	}

	for bitsize := range hist {
		if bitsize > max {
			return &TreeCoverageError{Size: bitsize, Max: max}
		}
		for check := bitsize; check <= max; check++ {
			if v, ok := m[check]; ok {
				m[bitsize] = v
				break
			}
		}
	}

	return nil
}
