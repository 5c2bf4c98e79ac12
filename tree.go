package huffpack

import (
	"container/heap"
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// maxTreeNodes is the largest number of nodes a code tree for a byte
// alphabet can contain: 256 leaves plus 255 internal nodes.  Node references
// therefore always fit in an int16.
const maxTreeNodes = 2*alphabetSize - 1

// noChild marks a node reference as absent.  A node with no left child is a
// leaf; internal nodes always have both children.
const noChild = int16(-1)

// node is one slot in a Tree's arena.  Nodes never point at their parents,
// so no traversal of the arena can revisit a node.
type node struct {
	weight uint64
	left   int16
	right  int16
	symbol byte
}

func (n node) isLeaf() bool {
	return n.left == noChild
}

// Tree is a static Huffman code tree over the byte alphabet.  Leaves carry
// symbols, internal nodes carry exactly two children, and every node's
// weight is the total frequency of the symbols beneath it.
//
// Trees reconstructed from a serialized container carry zero weights;
// weights describe the input the tree was built from and do not affect
// decoding.
type Tree struct {
	nodes  []node
	root   int16
	leaves int
}

// BuildTree constructs the code tree for the given frequency histogram.
//
// Construction is deterministic: leaves enter the merge queue in ascending
// symbol order, the two lowest-weight nodes are merged at each step with
// ties broken toward the node created earliest, and the first node popped
// becomes the left child.  Two inputs with identical histograms always
// produce identical trees.
//
// Returns ErrEmptyInput if the histogram has no counted symbols.
func BuildTree(h *Histogram) (*Tree, error) {
	if h == nil || h.Distinct() == 0 {
		return nil, fmt.Errorf("build tree: %w", ErrEmptyInput)
	}

	distinct := h.Distinct()
	t := &Tree{
		nodes:  make([]node, 0, 2*distinct-1),
		leaves: distinct,
	}

	mh := mergeHeap{
		tree: t,
		refs: make([]int16, 0, distinct),
	}
	for sym := 0; sym < alphabetSize; sym++ {
		count := h.Count(byte(sym))
		if count == 0 {
			continue
		}
		ref := t.add(node{
			weight: count,
			left:   noChild,
			right:  noChild,
			symbol: byte(sym),
		})
		mh.refs = append(mh.refs, ref)
	}
	mh.Init()

	for mh.Len() > 1 {
		left := heap.Pop(&mh).(int16)
		right := heap.Pop(&mh).(int16)
		parent := t.add(node{
			weight: t.nodes[left].weight + t.nodes[right].weight,
			left:   left,
			right:  right,
		})
		heap.Push(&mh, parent)
	}

	t.root = heap.Pop(&mh).(int16)
	return t, nil
}

// add appends a node to the arena and returns its reference.
func (t *Tree) add(n node) int16 {
	assert.Assertf(len(t.nodes) < maxTreeNodes, "tree arena overflow: %d nodes", len(t.nodes))
	t.nodes = append(t.nodes, n)
	return int16(len(t.nodes) - 1)
}

// Len returns the total number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Leaves returns the number of leaf nodes, i.e. the number of distinct
// symbols the tree can code.
func (t *Tree) Leaves() int {
	return t.leaves
}

// Walk visits every node in preorder, left child before right.  The visitor
// receives the path of branch choices that leads to the node (empty for the
// root), whether the node is a leaf, the leaf's symbol (zero for internal
// nodes), and the node's weight.
func (t *Tree) Walk(visit func(path Code, isLeaf bool, sym byte, weight uint64)) {
	if t == nil || len(t.nodes) == 0 {
		return
	}

	type frame struct {
		ref  int16
		path Code
	}

	stack := make([]frame, 0, 64)
	stack = append(stack, frame{ref: t.root})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[top.ref]
		if n.isLeaf() {
			visit(top.path, true, n.symbol, n.weight)
			continue
		}

		visit(top.path, false, 0, n.weight)
		assert.Assertf(top.path.Size < maxCodeBits, "code depth %d does not fit in %d bits", top.path.Size+1, maxCodeBits)

		// Push the right child first so that the left child is
		// visited first.
		stack = append(stack, frame{ref: n.right, path: top.path.appendBit(1)})
		stack = append(stack, frame{ref: n.left, path: top.path.appendBit(0)})
	}
}

// type mergeHeap {{{

// mergeHeap is a min-heap of node references ordered by (weight, reference)
// ascending.  Breaking weight ties by reference order keeps BuildTree
// deterministic.
type mergeHeap struct {
	tree *Tree
	refs []int16
}

func (h *mergeHeap) Init() {
	heap.Init(h)
}

func (h *mergeHeap) Len() int {
	return len(h.refs)
}

func (h *mergeHeap) Swap(i, j int) {
	h.refs[i], h.refs[j] = h.refs[j], h.refs[i]
}

func (h *mergeHeap) Less(i, j int) bool {
	a, b := h.refs[i], h.refs[j]
	wa, wb := h.tree.nodes[a].weight, h.tree.nodes[b].weight
	if wa != wb {
		return wa < wb
	}
	return a < b
}

func (h *mergeHeap) Push(x interface{}) {
	h.refs = append(h.refs, x.(int16))
}

func (h *mergeHeap) Pop() interface{} {
	last := uint(len(h.refs)) - 1
	x := h.refs[last]
	h.refs = h.refs[:last]
	return x
}

var _ heap.Interface = (*mergeHeap)(nil)

// }}}
