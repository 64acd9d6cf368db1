// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package vpk0

import (
	"errors"
	"fmt"
)

// Sentinel errors for decoding and encoding.
var (
	// ErrBadTreeEncoding is returned when a value lookup in a Huffman tree
	// reaches a non-leaf terminal. Indicates a corrupt or malformed tree.
	ErrBadTreeEncoding = errors.New("vpk0: huffman tree value couldn't be read")
	// ErrInputTooBig is returned when a decompressed size would not fit
	// in the 32-bit header field.
	ErrInputTooBig = errors.New("vpk0: input too big to fit in 32-bit word")
	// ErrInputTooLarge is returned when DecodeReader reads more than MaxInputSize bytes.
	ErrInputTooLarge = errors.New("vpk0: input exceeds MaxInputSize")
	// ErrEmptyTreeCover is returned when an externally supplied tree has no
	// leaves at all, so it cannot cover any observed bit-width.
	ErrEmptyTreeCover = errors.New("vpk0: user-provided huffman tree has no leaves to cover histogram")
)

// InvalidHeaderError is returned when the first four bytes of an artifact
// are not the "vpk0" magic.
type InvalidHeaderError struct {
	Text string
}

func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("vpk0: invalid magic %q in header", e.Text)
}

// InvalidMethodError is returned when the header's method byte is not 0
// (OneSample) or 1 (TwoSample).
type InvalidMethodError struct {
	Method byte
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("vpk0: method %d is invalid and not supported", e.Method)
}

// BadLookBackError is returned when a back-reference token asks to move
// back further than the output produced so far.
type BadLookBackError struct {
	Offset int
	Have   int
}

func (e *BadLookBackError) Error() string {
	return fmt.Sprintf("vpk0: bad input: asked to move back %d bytes in buffer of only %d bytes", e.Offset, e.Have)
}

// BadUserTreeError wraps a failure to lex, parse, or cover an externally
// supplied tree string.
type BadUserTreeError struct {
	Err error
}

func (e *BadUserTreeError) Error() string {
	return fmt.Sprintf("vpk0: issue with user-provided huffman tree string: %v", e.Err)
}

func (e *BadUserTreeError) Unwrap() error {
	return e.Err
}

// TreeParseErrorKind enumerates the ways a tree string can fail to lex or parse.
type TreeParseErrorKind int

const (
	// LexNumber: a numeral could not be parsed as a uint8 bit-width.
	LexNumber TreeParseErrorKind = iota
	// LexUnexpected: an unrecognized character was found outside a numeral.
	LexUnexpected
	// ParseUnexpected: a token appeared where the grammar did not allow it.
	ParseUnexpected
	// ParseUnexpectedEnd: the token stream ended mid-production.
	ParseUnexpectedEnd
)

// TreeParseError describes a lex or parse failure in a tree's textual form,
// with the rune position at which it occurred.
type TreeParseError struct {
	Kind TreeParseErrorKind
	Pos  int
	// Tok is set for ParseUnexpected; it names the offending token kind.
	Tok string
	// Ch is set for LexUnexpected; it is the offending rune.
	Ch rune
	// Cause is set for LexNumber; it is the underlying number-parse error.
	Cause error
}

func (e *TreeParseError) Error() string {
	switch e.Kind {
	case LexNumber:
		return fmt.Sprintf("vpk0: issue parsing number in tree string at pos %d: %v", e.Pos, e.Cause)
	case LexUnexpected:
		return fmt.Sprintf("vpk0: unexpected character %q at pos %d", e.Ch, e.Pos)
	case ParseUnexpected:
		return fmt.Sprintf("vpk0: unexpected token %q at pos %d", e.Tok, e.Pos)
	default:
		return "vpk0: unexpected end of tree string"
	}
}

func (e *TreeParseError) Unwrap() error {
	return e.Cause
}

// TreeCoverageError is returned when a histogram bit-width exceeds the
// largest leaf size present in an externally supplied tree, so there is no
// code of equal-or-greater width to borrow.
type TreeCoverageError struct {
	Size uint8
	Max  uint8
}

func (e *TreeCoverageError) Error() string {
	return fmt.Sprintf("vpk0: tried to insert bit-width %d into tree with max of %d", e.Size, e.Max)
}
