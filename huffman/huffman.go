// Package huffman implements a lossless text compressor based on Huffman
// coding. Symbols are Unicode scalar values, not bytes.
//
// A compressed container has the layout
//
//	[8 bytes]  tree length, big-endian
//	[n bytes]  serialized tree
//	[8 bytes]  payload bit count, big-endian
//	[m bytes]  payload, MSB-first, zero-padded in the last byte
package huffman

import "errors"

var (
	// ErrFormat is returned when a container or serialized tree is corrupt.
	ErrFormat = errors.New("huffman: malformed data")
	// ErrInput is returned for text that cannot be compressed.
	ErrInput = errors.New("huffman: invalid input")
	// ErrInternal signals a broken tree invariant. It indicates a bug, not bad input.
	ErrInternal = errors.New("huffman: internal error")
)
