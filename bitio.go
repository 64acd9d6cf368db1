// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package vpk0

import (
	"io"

	"github.com/icza/bitio"
)

// bitReader is a big-endian, MSB-first bit reader over a byte stream. It
// wraps bitio.Reader and adds the multi-byte read the header needs.
type bitReader struct {
	r *bitio.Reader
}

func newBitReader(r io.Reader) *bitReader {
	return &bitReader{r: bitio.NewReader(r)}
}

// readBit reads a single bit, true for 1.
func (b *bitReader) readBit() (bool, error) {
	return b.r.ReadBool()
}

// readBits reads n bits (0 < n <= 64) as a big-endian unsigned value.
func (b *bitReader) readBits(n uint8) (uint64, error) {
	return b.r.ReadBits(n)
}

// readBytes reads n bytes of 8 bits each. It works at any bit position: when
// the reader is not on a byte boundary, each byte straddles two input bytes.
func (b *bitReader) readBytes(n int) ([]byte, error) {
	out := make([]byte, n)
	for i := range out {
		v, err := b.r.ReadByte()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// bitWriter is the symmetric big-endian, MSB-first bit writer.
type bitWriter struct {
	w *bitio.Writer
}

func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{w: bitio.NewWriter(w)}
}

func (b *bitWriter) writeBit(v bool) error {
	return b.w.WriteBool(v)
}

func (b *bitWriter) writeBits(v uint64, n uint8) error {
	return b.w.WriteBits(v, n)
}

func (b *bitWriter) writeBytes(p []byte) error {
	for _, v := range p {
		if err := b.w.WriteByte(v); err != nil {
			return err
		}
	}
	return nil
}

// close zero-pads the current byte and flushes it. Per the format, the body
// always ends byte-aligned.
func (b *bitWriter) close() error {
	return b.w.Close()
}
