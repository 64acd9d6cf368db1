// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

/*
Package vpk0 implements the vpk0 container format: a variable-length
LZSS-over-Huffman compression scheme used by HAL Laboratory in late-1990s
console software.

A vpk0 artifact is a nine byte header (magic, decompressed size, lookback
method) followed by two linearly-encoded Huffman trees (one for LZSS
offsets, one for LZSS lengths) and a bitstream of literal and back-reference
tokens.

# Decode

The decompressed size is read from the header; no options are required.

	out, err := vpk0.Decode(compressed)

# Encode

Options may be nil (one-sample method, brute-force matcher, generated
trees):

	out, err := vpk0.Encode(data, nil)

To reproduce a historical artifact byte-for-byte, supply the trees
recovered from it:

	hdr, offsets, lengths, err := vpk0.Inspect(original)
	out, err := vpk0.Encode(decoded, &vpk0.EncodeOptions{
		Method:     hdr.Method,
		OffsetTree: &offsets,
		LengthTree: &lengths,
	})
*/
package vpk0
