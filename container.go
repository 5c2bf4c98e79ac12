package huffpack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// containerMagic begins every serialized container.
const containerMagic = "HPK1"

// containerHeaderSize is the byte length of the fixed header: the magic,
// the alphabet size minus one, the pad count, and the symbol count.
const containerHeaderSize = 4 + 1 + 1 + 8

// pendingChild marks an internal node's child slot that has not been filled
// in yet while parsing a tree section.  It never appears in a parsed Tree.
const pendingChild = int16(-2)

// Container is a self-describing encoded stream: the code tree that was
// used to encode it, the number of symbols it codes, and the packed payload
// bits.  Containers are produced by Encode and ReadContainer and consumed by
// Decode and WriteTo.
type Container struct {
	tree    *Tree
	count   uint64
	pad     byte
	payload []byte
}

// AlphabetSize returns the number of distinct symbols in the container's
// code tree.
func (c *Container) AlphabetSize() int {
	return c.tree.Leaves()
}

// SymbolCount returns the number of symbols the payload codes, i.e. the
// byte length of the decoded output.
func (c *Container) SymbolCount() uint64 {
	return c.count
}

// PadBits returns the number of zero bits appended to the payload to reach
// a whole number of bytes.  Always in [0, 7].
func (c *Container) PadBits() byte {
	return c.pad
}

// PayloadBits returns the number of meaningful bits in the payload,
// excluding padding.
func (c *Container) PayloadBits() uint64 {
	return 8*uint64(len(c.payload)) - uint64(c.pad)
}

// Tree returns the container's code tree.
func (c *Container) Tree() *Tree {
	return c.tree
}

// Size returns the serialized length of the container in bytes.
func (c *Container) Size() int {
	return containerHeaderSize + treeSectionBytes(c.tree) + len(c.payload)
}

// WriteTo serializes the container.  The layout is the fixed header, the
// preorder tree section padded to a byte boundary, and the payload.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.Grow(c.Size())
	buf.WriteString(containerMagic)
	buf.WriteByte(byte(c.tree.Leaves() - 1))
	buf.WriteByte(c.pad)
	var count [8]byte
	binary.BigEndian.PutUint64(count[:], c.count)
	buf.Write(count[:])

	bw := bitio.NewWriter(&buf)
	if err := writeTreeShape(bw, c.tree); err != nil {
		return 0, err
	}
	if _, err := bw.Align(); err != nil {
		return 0, err
	}
	if err := bw.Close(); err != nil {
		return 0, err
	}
	buf.Write(c.payload)

	assert.Assertf(buf.Len() == c.Size(), "serialized %d bytes, expected %d", buf.Len(), c.Size())
	return buf.WriteTo(w)
}

// Dump writes a programmer-readable debugging dump of the Container's
// current state to the given writer.
func (c *Container) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Container{\n")
	fmt.Fprintf(&buf, "\tSize() = %d\n", c.Size())
	fmt.Fprintf(&buf, "\tAlphabetSize() = %d\n", c.AlphabetSize())
	fmt.Fprintf(&buf, "\tSymbolCount() = %d\n", c.SymbolCount())
	fmt.Fprintf(&buf, "\tPadBits() = %d\n", c.PadBits())
	fmt.Fprintf(&buf, "\tPayloadBits() = %d\n", c.PayloadBits())
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

var _ io.WriterTo = (*Container)(nil)

// ReadContainer reads a serialized container from r until EOF and validates
// it.  Malformed data is reported as ErrCorruptContainer; errors from r are
// returned as-is.
func ReadContainer(r io.Reader) (*Container, error) {
	blob, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	return parseContainer(blob)
}

// parseContainer validates blob and rebuilds the Container it serializes.
// The payload is copied, so the caller may reuse blob.
func parseContainer(blob []byte) (*Container, error) {
	if len(blob) < containerHeaderSize {
		return nil, fmt.Errorf("%w: truncated header: %d bytes", ErrCorruptContainer, len(blob))
	}
	if string(blob[:4]) != containerMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorruptContainer, blob[:4])
	}
	wantLeaves := int(blob[4]) + 1
	pad := blob[5]
	if pad > 7 {
		return nil, fmt.Errorf("%w: pad count %d out of range", ErrCorruptContainer, pad)
	}
	count := binary.BigEndian.Uint64(blob[6:containerHeaderSize])
	if count == 0 {
		return nil, fmt.Errorf("%w: declared symbol count is zero", ErrCorruptContainer)
	}

	body := blob[containerHeaderSize:]
	t, err := readTreeShape(bitio.NewReader(bytes.NewReader(body)))
	if err != nil {
		return nil, err
	}
	if t.Leaves() != wantLeaves {
		return nil, fmt.Errorf("%w: header declares %d symbols, tree has %d", ErrCorruptContainer, wantLeaves, t.Leaves())
	}

	treeBytes := treeSectionBytes(t)
	assert.Assertf(treeBytes <= len(body), "parsed %d tree bytes from a %d byte body", treeBytes, len(body))
	payload := body[treeBytes:]

	payloadBits := 8 * uint64(len(payload))
	if uint64(pad) > payloadBits {
		return nil, fmt.Errorf("%w: pad count %d exceeds payload", ErrCorruptContainer, pad)
	}
	payloadBits -= uint64(pad)
	if count > payloadBits {
		return nil, fmt.Errorf("%w: %d payload bits cannot code %d symbols", ErrCorruptContainer, payloadBits, count)
	}

	return &Container{
		tree:    t,
		count:   count,
		pad:     pad,
		payload: append([]byte(nil), payload...),
	}, nil
}

// treeSectionBits returns the exact bit length of a tree's serialized
// shape: one marker bit per node plus eight symbol bits per leaf.
func treeSectionBits(t *Tree) uint64 {
	return uint64(t.Len()) + 8*uint64(t.Leaves())
}

// treeSectionBytes returns the byte length of a tree's serialized shape,
// including padding to the next byte boundary.
func treeSectionBytes(t *Tree) int {
	return bytesFor(treeSectionBits(t))
}

// writeTreeShape writes the tree in preorder: a 0 bit for each internal
// node followed by its two subtrees, a 1 bit and eight symbol bits for each
// leaf.  Weights are not serialized.
func writeTreeShape(bw *bitio.Writer, t *Tree) error {
	stack := make([]int16, 0, 64)
	stack = append(stack, t.root)
	for len(stack) != 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[ref]
		if n.isLeaf() {
			if err := bw.WriteBool(true); err != nil {
				return err
			}
			if err := bw.WriteBits(uint64(n.symbol), 8); err != nil {
				return err
			}
			continue
		}

		if err := bw.WriteBool(false); err != nil {
			return err
		}
		// Push the right child first so that the left subtree is
		// written first.
		stack = append(stack, n.right, n.left)
	}
	return nil
}

// readTreeShape parses a preorder tree section and rebuilds the Tree, with
// zero weights.  The stack holds internal nodes that still have an open
// child slot; each parsed node attaches to the deepest open slot, filling
// left before right.
func readTreeShape(br *bitio.Reader) (*Tree, error) {
	type openNode struct {
		ref   int16
		depth byte
	}

	t := &Tree{nodes: make([]node, 0, maxTreeNodes)}
	var seen [alphabetSize]bool
	stack := make([]openNode, 0, 64)

	for need := 1; need > 0; {
		if len(t.nodes) == maxTreeNodes {
			return nil, fmt.Errorf("%w: tree section exceeds %d nodes", ErrCorruptContainer, maxTreeNodes)
		}

		isLeaf, err := br.ReadBool()
		if err != nil {
			return nil, fmt.Errorf("%w: truncated tree section", ErrCorruptContainer)
		}

		var depth byte
		if len(stack) != 0 {
			depth = stack[len(stack)-1].depth + 1
		}

		var ref int16
		if isLeaf {
			sym, err := br.ReadBits(8)
			if err != nil {
				return nil, fmt.Errorf("%w: truncated tree section", ErrCorruptContainer)
			}
			if seen[sym] {
				return nil, fmt.Errorf("%w: duplicate leaf for symbol %d", ErrCorruptContainer, sym)
			}
			seen[sym] = true
			ref = t.add(node{left: noChild, right: noChild, symbol: byte(sym)})
			t.leaves++
			need--
		} else {
			// An internal node at this depth would put its leaves
			// past the longest representable code.
			if depth >= maxCodeBits {
				return nil, fmt.Errorf("%w: tree deeper than %d bits", ErrCorruptContainer, maxCodeBits)
			}
			ref = t.add(node{left: pendingChild, right: pendingChild})
			need++
		}

		if len(stack) == 0 {
			t.root = ref
		} else {
			top := stack[len(stack)-1].ref
			if t.nodes[top].left == pendingChild {
				t.nodes[top].left = ref
			} else {
				t.nodes[top].right = ref
				stack = stack[:len(stack)-1]
			}
		}
		if !isLeaf {
			stack = append(stack, openNode{ref: ref, depth: depth})
		}
	}

	assert.Assertf(len(stack) == 0, "tree parse finished with %d open nodes", len(stack))
	return t, nil
}
