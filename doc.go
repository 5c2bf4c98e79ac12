// Package huffpack implements a self-contained static Huffman codec for
// byte streams.  Encode derives a code tree from the input's own symbol
// frequencies and packs one variable-length code per input byte; the
// resulting Container carries everything Decode needs, so no code table is
// shared out of band.
//
// A serialized container has four parts:
//
//	bytes 0..3   magic "HPK1"
//	byte  4      alphabet size minus one
//	byte  5      payload pad count, 0 through 7
//	bytes 6..13  symbol count, big-endian uint64
//	then         tree section: preorder shape, padded to a byte boundary
//	then         payload: packed codes, padded with zero bits
//
// The tree section stores one bit per node, a 0 for an internal node
// followed by its left and right subtrees, or a 1 for a leaf followed by
// eight symbol bits.  Weights are not stored; decoding only needs the
// shape.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package huffpack
