package huffpack

import (
	"fmt"
	"strconv"
)

// maxCodeBits is the longest code a Code can hold.  Deriving a longer code
// from real frequencies would take an input of tens of terabytes, so trees
// that deep are rejected when parsing containers.
const maxCodeBits = 64

// Code represents the sequence of bits assigned to one symbol.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant of
	// the Size valid bits is the first bit on the wire, so "110" is
	// Code{Size: 3, Bits: 6}.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

// appendBit returns the code extended by one trailing bit.
func (hc Code) appendBit(bit uint64) Code {
	return Code{Size: hc.Size + 1, Bits: (hc.Bits << 1) | (bit & 1)}
}

var _ fmt.Stringer = Code{}
