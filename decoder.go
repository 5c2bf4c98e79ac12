package huffpack

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// Decode walks the container's code tree over the payload bits and returns
// the decoded bytes.  Each 0 bit descends left, each 1 bit descends right,
// and reaching a leaf emits the leaf's symbol and resets the walk to the
// root.
//
// Decode verifies that the payload is exactly consistent with the header:
// the walk must emit exactly SymbolCount symbols, consume every meaningful
// bit, and end at the root.  Any mismatch, including a payload truncated or
// extended by whole bytes, is reported as ErrCorruptContainer.
func Decode(c *Container) ([]byte, error) {
	if c == nil || c.tree == nil || c.tree.Len() == 0 {
		return nil, fmt.Errorf("%w: no code tree", ErrCorruptContainer)
	}
	if c.count == 0 {
		return nil, fmt.Errorf("%w: declared symbol count is zero", ErrCorruptContainer)
	}
	if uint64(c.pad) > 8*uint64(len(c.payload)) {
		return nil, fmt.Errorf("%w: pad count %d exceeds payload", ErrCorruptContainer, c.pad)
	}

	bits := c.PayloadBits()
	if c.count > bits {
		return nil, fmt.Errorf("%w: %d payload bits cannot code %d symbols", ErrCorruptContainer, bits, c.count)
	}

	t := c.tree
	br := bitio.NewReader(bytes.NewReader(c.payload))
	out := make([]byte, 0, c.count)

	if t.Len() == 1 {
		// A single-leaf tree assigns the one-bit code "0" to its only
		// symbol, so the payload must be exactly count zero bits.
		if bits != c.count {
			return nil, fmt.Errorf("%w: %d payload bits code %d symbols", ErrCorruptContainer, bits, c.count)
		}
		sym := t.nodes[t.root].symbol
		for i := uint64(0); i < bits; i++ {
			bit, err := br.ReadBool()
			if err != nil {
				return nil, fmt.Errorf("%w: truncated payload", ErrCorruptContainer)
			}
			if bit {
				return nil, fmt.Errorf("%w: invalid code at bit %d", ErrCorruptContainer, i)
			}
			out = append(out, sym)
		}
		return out, nil
	}

	cur := t.root
	var emitted uint64
	for i := uint64(0); i < bits; i++ {
		bit, err := br.ReadBool()
		if err != nil {
			return nil, fmt.Errorf("%w: truncated payload", ErrCorruptContainer)
		}

		n := t.nodes[cur]
		if bit {
			cur = n.right
		} else {
			cur = n.left
		}

		if t.nodes[cur].isLeaf() {
			if emitted == c.count {
				return nil, fmt.Errorf("%w: payload codes more than %d symbols", ErrCorruptContainer, c.count)
			}
			out = append(out, t.nodes[cur].symbol)
			emitted++
			cur = t.root
		}
	}

	if cur != t.root {
		return nil, fmt.Errorf("%w: payload ends in the middle of a code", ErrCorruptContainer)
	}
	if emitted != c.count {
		return nil, fmt.Errorf("%w: payload codes %d symbols, header declares %d", ErrCorruptContainer, emitted, c.count)
	}
	return out, nil
}

// Decompress is a convenience function that parses a serialized container
// and decodes it in one step.
func Decompress(blob []byte) ([]byte, error) {
	c, err := parseContainer(blob)
	if err != nil {
		return nil, err
	}
	return Decode(c)
}
