package huffpack

import (
	"bytes"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Encode compresses data into a self-describing Container: it counts symbol
// frequencies, builds the code tree, and packs one code per input byte into
// the payload, padding the final byte with zero bits.
//
// Encoding is deterministic: the same input always produces the same
// Container.
//
// Returns ErrEmptyInput if data is empty.
func Encode(data []byte) (*Container, error) {
	h, err := NewHistogram(data)
	if err != nil {
		return nil, err
	}
	t, err := BuildTree(h)
	if err != nil {
		return nil, err
	}
	ct := NewCodeTable(t)

	bits := ct.PayloadBits(h)
	pad := padTo8(bits)

	var buf bytes.Buffer
	buf.Grow(bytesFor(bits))
	bw := bitio.NewWriter(&buf)
	for _, sym := range data {
		hc := ct.Lookup(sym)
		if err := bw.WriteBits(hc.Bits, hc.Size); err != nil {
			return nil, err
		}
	}
	skipped, err := bw.Align()
	if err != nil {
		return nil, err
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}

	assert.Assertf(skipped == pad, "bit packer padded %d bits, expected %d", skipped, pad)
	assert.Assertf(buf.Len() == bytesFor(bits), "packed %d payload bytes, expected %d", buf.Len(), bytesFor(bits))

	return &Container{
		tree:    t,
		count:   h.Total(),
		pad:     pad,
		payload: buf.Bytes(),
	}, nil
}

// Compress is a convenience function that encodes data and serializes the
// resulting container in one step.
func Compress(data []byte) ([]byte, error) {
	c, err := Encode(data)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(c.Size())
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
