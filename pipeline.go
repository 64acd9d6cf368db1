// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package vpk0

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// Method selects how LZSS offsets are written: directly (OneSample), or
// devolved into one or two smaller components (TwoSample). It never
// changes how lengths are written.
type Method uint8

const (
	// OneSample writes the offset value directly.
	OneSample Method = 0
	// TwoSample writes the offset as one or two smaller components; see
	// encodeTwoSampleOffset.
	TwoSample Method = 1
)

func (m Method) String() string {
	switch m {
	case OneSample:
		return "Method 0 (One Sample)"
	case TwoSample:
		return "Method 1 (Two Sample)"
	default:
		return fmt.Sprintf("Method %d (unknown)", uint8(m))
	}
}

// Header is the information stored at the start of a vpk0 artifact.
type Header struct {
	// Size is the decompressed size in bytes.
	Size uint32
	// Method is the offset lookback method used by the body.
	Method Method
}

const magic = "vpk0"

// EncodeOptions configures Encode. A nil *EncodeOptions uses
// DefaultEncodeOptions.
type EncodeOptions struct {
	// Method selects one- or two-sample offset encoding.
	Method Method
	// Settings configures the LZSS window, match length, and min match.
	Settings LzssSettings
	// Backend selects the match-finding strategy.
	Backend LzssBackend
	// OffsetTree, if set, is used instead of a tree generated from the
	// input's own offset histogram. Required to reproduce a historical
	// artifact byte-for-byte from its recovered trees.
	OffsetTree *string
	// LengthTree is OffsetTree's counterpart for match lengths.
	LengthTree *string
	// Log, if non-nil, receives a human-readable trace of the match
	// search and the generated code maps. Presence of a log sink never
	// changes the encoded bytes.
	Log io.Writer
}

// DefaultEncodeOptions returns one-sample encoding with Nintendo's default
// LZSS settings and a brute-force matcher.
func DefaultEncodeOptions() *EncodeOptions {
	return &EncodeOptions{
		Method:   OneSample,
		Settings: DefaultLzssSettings(),
		Backend:  BackendBrute,
	}
}

// DecodeOptions configures DecodeReader.
type DecodeOptions struct {
	// MaxInputSize limits how many bytes DecodeReader may read (0 = no limit).
	MaxInputSize int
}

// Encode compresses src into a vpk0 artifact. opts may be nil.
func Encode(src []byte, opts *EncodeOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultEncodeOptions()
	}
	settings := opts.Settings
	if settings.OffsetBits == 0 {
		settings = DefaultLzssSettings()
	}

	if uint64(len(src)) > math.MaxUint32 {
		return nil, ErrInputTooBig
	}

	pass := runLZSS(src, settings, opts.Method, opts.Backend, opts.Log)

	offsetTree, offsetMap, err := buildTreeAndMap(opts.OffsetTree, pass.offsetHist)
	if err != nil {
		return nil, err
	}
	lengthTree, lengthMap, err := buildTreeAndMap(opts.LengthTree, pass.lengthHist)
	if err != nil {
		return nil, err
	}

	if opts.Log != nil {
		fmt.Fprintf(opts.Log, "Huff Offsets / Movebacks\n%s", formatCodeMap(offsetMap))
		fmt.Fprintf(opts.Log, "Huff Lengths / Size\n%s", formatCodeMap(lengthMap))
	}

	var buf bytes.Buffer
	bw := newBitWriter(&buf)

	header := Header{Size: uint32(pass.decompressedSize), Method: opts.Method}
	if err := writeHeader(bw, header); err != nil {
		return nil, err
	}
	if err := offsetTree.encode(bw); err != nil {
		return nil, err
	}
	if err := lengthTree.encode(bw); err != nil {
		return nil, err
	}

	for _, tok := range pass.tokens {
		if tok.literal {
			if err := bw.writeBit(false); err != nil {
				return nil, err
			}
			if err := bw.writeBits(uint64(tok.lit), 8); err != nil {
				return nil, err
			}
			continue
		}

		if err := bw.writeBit(true); err != nil {
			return nil, err
		}

		switch opts.Method {
		case TwoSample:
			comps := encodeTwoSampleOffset(tok.offset)
			if comps.hasFirst {
				if err := writeEncodedVal(bw, offsetMap, comps.first); err != nil {
					return nil, err
				}
			}
			if err := writeEncodedVal(bw, offsetMap, comps.second); err != nil {
				return nil, err
			}
		default:
			if err := writeEncodedVal(bw, offsetMap, tok.offset); err != nil {
				return nil, err
			}
		}

		if err := writeEncodedVal(bw, lengthMap, tok.length); err != nil {
			return nil, err
		}
	}

	if err := bw.close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// writeEncodedVal writes val's Huffman code (looked up by val's own bit
// width) followed by val itself at the code's leaf width.
func writeEncodedVal(bw *bitWriter, m map[uint8]mapEntry, val int) error {
	needed := bitWidth(val)
	entry, ok := m[needed]
	if !ok {
		return ErrBadTreeEncoding
	}
	if err := bw.writeBits(uint64(entry.code.code), entry.code.size); err != nil {
		return err
	}
	return bw.writeBits(uint64(val), entry.size)
}

// buildTreeAndMap builds the wire tree and size->code map either from text
// (an externally supplied tree, filled in to cover hist) or, when text is
// nil, straight from hist via the Huffman builder.
func buildTreeAndMap(text *string, hist histogram) (*huffTree, map[uint8]mapEntry, error) {
	if text == nil {
		tree, m := buildHuffman(hist)
		return tree, m, nil
	}

	tree, err := parseTree(*text)
	if err != nil {
		return nil, nil, &BadUserTreeError{Err: err}
	}

	m := tree.codeMap()
	if err := fillMissing(m, hist); err != nil {
		return nil, nil, &BadUserTreeError{Err: err}
	}

	return tree, m, nil
}

func formatCodeMap(m map[uint8]mapEntry) string {
	if len(m) == 0 {
		return "empty tree\n"
	}

	sizes := make([]int, 0, len(m))
	for k := range m {
		sizes = append(sizes, int(k))
	}
	sort.Ints(sizes)

	var b strings.Builder
	for _, s := range sizes {
		e := m[uint8(s)]
		fmt.Fprintf(&b, "%d : %s (read next %d bits)\n", s, e.code.String(), e.size)
	}
	return b.String()
}

// Decode decompresses a vpk0 artifact.
func Decode(src []byte) ([]byte, error) {
	br := newBitReader(bytes.NewReader(src))

	header, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	offsetTree, err := decodeTree(br)
	if err != nil {
		return nil, err
	}
	lengthTree, err := decodeTree(br)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, header.Size)
	for uint32(len(out)) < header.Size {
		isRef, err := br.readBit()
		if err != nil {
			return nil, err
		}

		if !isRef {
			v, err := br.readBits(8)
			if err != nil {
				return nil, err
			}
			out = append(out, byte(v))
			continue
		}

		u, err := offsetTree.readValue(br)
		if err != nil {
			return nil, err
		}

		var offset int
		switch header.Method {
		case TwoSample:
			offset, err = decodeTwoSampleOffset(u, func() (uint32, error) {
				return offsetTree.readValue(br)
			})
			if err != nil {
				return nil, err
			}
		default:
			offset = int(u)
		}

		lengthVal, err := lengthTree.readValue(br)
		if err != nil {
			return nil, err
		}
		length := int(lengthVal)

		if offset <= 0 || offset > len(out) {
			return nil, &BadLookBackError{Offset: offset, Have: len(out)}
		}

		out = copyBackRef(out, offset, length)
	}

	return out, nil
}

// DecodeReader reads all of r and calls Decode. If opts.MaxInputSize > 0
// and more bytes than that are read, returns ErrInputTooLarge.
func DecodeReader(r io.Reader, opts *DecodeOptions) ([]byte, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if opts != nil && opts.MaxInputSize > 0 && len(src) > opts.MaxInputSize {
		return nil, ErrInputTooLarge
	}
	return Decode(src)
}

// Inspect parses a vpk0 artifact's header and both trees without decoding
// the body, returning their textual forms.
func Inspect(src []byte) (Header, string, string, error) {
	br := newBitReader(bytes.NewReader(src))

	header, err := readHeader(br)
	if err != nil {
		return Header{}, "", "", err
	}

	offsetTree, err := decodeTree(br)
	if err != nil {
		return Header{}, "", "", err
	}
	lengthTree, err := decodeTree(br)
	if err != nil {
		return Header{}, "", "", err
	}

	return header, offsetTree.String(), lengthTree.String(), nil
}

func writeHeader(bw *bitWriter, h Header) error {
	buf := make([]byte, 9)
	copy(buf[0:4], magic)
	binary.BigEndian.PutUint32(buf[4:8], h.Size)
	buf[8] = byte(h.Method)
	return bw.writeBytes(buf)
}

func readHeader(br *bitReader) (Header, error) {
	raw, err := br.readBytes(9)
	if err != nil {
		return Header{}, err
	}

	name := string(raw[0:4])
	if name != magic {
		return Header{}, &InvalidHeaderError{Text: name}
	}

	size := binary.BigEndian.Uint32(raw[4:8])
	switch raw[8] {
	case 0:
		return Header{Size: size, Method: OneSample}, nil
	case 1:
		return Header{Size: size, Method: TwoSample}, nil
	default:
		return Header{}, &InvalidMethodError{Method: raw[8]}
	}
}
