package huffpack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// CodeTable maps byte values to the Codes assigned by a Tree.  Symbols that
// do not occur in the tree map to the zero Code, whose Size is 0.
type CodeTable struct {
	codes   [alphabetSize]Code
	n       int
	minSize byte
	maxSize byte
}

// NewCodeTable derives the code for every leaf of the given tree.  The code
// for a leaf is its path from the root, 0 for each left branch and 1 for
// each right branch.
//
// A tree with a single leaf has no branches, so its one symbol is assigned
// the one-bit code "0".
func NewCodeTable(t *Tree) *CodeTable {
	ct := new(CodeTable)
	if t == nil || t.Len() == 0 {
		return ct
	}

	if t.Len() == 1 {
		ct.set(t.nodes[t.root].symbol, MakeCode(1, 0))
		return ct
	}

	t.Walk(func(path Code, isLeaf bool, sym byte, _ uint64) {
		if isLeaf {
			ct.set(sym, path)
		}
	})
	return ct
}

func (ct *CodeTable) set(sym byte, hc Code) {
	assert.Assertf(hc.Size > 0, "assigning empty code to symbol %d", sym)
	assert.Assertf(ct.codes[sym].Size == 0, "assigning second code to symbol %d", sym)

	ct.codes[sym] = hc
	if ct.n == 0 || ct.minSize > hc.Size {
		ct.minSize = hc.Size
	}
	if ct.n == 0 || ct.maxSize < hc.Size {
		ct.maxSize = hc.Size
	}
	ct.n++
}

// Lookup returns the code assigned to sym.  The zero Code is returned for
// symbols with no assignment.
func (ct *CodeTable) Lookup(sym byte) Code {
	return ct.codes[sym]
}

// Len returns the number of symbols with an assigned code.
func (ct *CodeTable) Len() int {
	return ct.n
}

// MinSize is the bit length of the shortest assigned code.
func (ct *CodeTable) MinSize() byte {
	return ct.minSize
}

// MaxSize is the bit length of the longest assigned code.
func (ct *CodeTable) MaxSize() byte {
	return ct.maxSize
}

// PayloadBits returns the exact number of payload bits needed to code every
// occurrence counted by the histogram, before padding.
func (ct *CodeTable) PayloadBits(h *Histogram) uint64 {
	var total uint64
	for sym := 0; sym < alphabetSize; sym++ {
		count := h.Count(byte(sym))
		if count == 0 {
			continue
		}
		hc := ct.codes[sym]
		assert.Assertf(hc.Size > 0, "histogram counts symbol %d but the table has no code for it", sym)
		total += count * uint64(hc.Size)
	}
	return total
}

// Dump writes a programmer-readable debugging dump of the CodeTable's
// current state to the given writer.  Only assigned symbols are listed.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", ct.n)
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.maxSize)
	for sym := 0; sym < alphabetSize; sym++ {
		hc := ct.codes[sym]
		if hc.Size == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\tLookup(%d) = %s\n", sym, hc)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
