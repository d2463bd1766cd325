// Package huffman builds binary Huffman codes for string symbols.
//
// The generated codes are prefix-free:
// for any two codes X and Y, X is not a prefix of Y.
// A decoder can therefore walk the tree one bit at a time
// and emit a symbol as soon as it reaches a leaf.
package huffman

import (
	"container/heap"
	"fmt"
	"math"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the maximum length of a code in bits.
const MaxCodeSize = 64

// ErrCodeTooLong is returned by Build if the frequency distribution is so
// skewed that some symbol would need a code longer than MaxCodeSize.
var ErrCodeTooLong = fmt.Errorf("code longer than %d bits", MaxCodeSize)

// EmptyTableError indicates that there were no symbols to build a tree from.
type EmptyTableError struct {
	// Path to the table file, if known.
	Path string
}

func (e *EmptyTableError) Error() string {
	if len(e.Path) == 0 {
		return "frequency table is empty"
	}
	return fmt.Sprintf("frequency table %q is empty", e.Path)
}

// InvalidFrequencyError indicates that a symbol had a frequency below 1.
type InvalidFrequencyError struct {
	Symbol string
	Freq   int
}

func (e *InvalidFrequencyError) Error() string {
	return fmt.Sprintf("symbol %q has invalid frequency %d", e.Symbol, e.Freq)
}

// Node identifies a node in a Tree.
type Node int

// Tree is an immutable binary Huffman tree
// with a code table derived from it.
type Tree struct {
	nodes []node
	root  Node
	codes map[string]Code
}

type node struct {
	// Symbol of a leaf node. Empty for branches.
	Symbol string

	// Frequency of the leaf node, or the combined frequency of the two
	// children of a branch.
	Freq int

	// Children of a branch node. Both are -1 for leaf nodes.
	Left, Right Node
}

func (n *node) isLeaf() bool { return n.Left < 0 }

// Build builds a Huffman tree for the given symbol frequencies.
//
// Every frequency must be at least 1.
// Ties between nodes of equal frequency are broken by creation order,
// with leaves created in lexicographic order of their symbols,
// so the same input always yields the same codes.
//
// If freqs holds a single symbol, the tree is a lone leaf
// and that symbol is assigned the one-bit code "0".
func Build(freqs map[string]int) (*Tree, error) {
	// Min-heap of nodes, merging the two least frequent nodes
	// until only the root remains.
	// See https://en.wikipedia.org/wiki/Huffman_coding#Basic_technique.

	if len(freqs) == 0 {
		return nil, &EmptyTableError{}
	}

	symbols := make([]string, 0, len(freqs))
	for sym := range freqs {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	t := &Tree{
		nodes: make([]node, 0, 2*len(symbols)-1),
	}

	nodeHeap := nodeHeap{tree: t, ids: make([]Node, 0, len(symbols))}
	for _, sym := range symbols {
		freq := freqs[sym]
		if freq < 1 {
			return nil, &InvalidFrequencyError{Symbol: sym, Freq: freq}
		}
		nodeHeap.ids = append(nodeHeap.ids, t.add(node{
			Symbol: sym,
			Freq:   freq,
			Left:   -1,
			Right:  -1,
		}))
	}
	heap.Init(&nodeHeap)

	for nodeHeap.Len() > 1 {
		left := heap.Pop(&nodeHeap).(Node)
		right := heap.Pop(&nodeHeap).(Node)
		heap.Push(&nodeHeap, t.add(node{
			Freq:  addFreq(t.nodes[left].Freq, t.nodes[right].Freq),
			Left:  left,
			Right: right,
		}))
	}

	assert.Assertf(nodeHeap.Len() == 1, "expected a single root, got %d nodes", nodeHeap.Len())
	t.root = heap.Pop(&nodeHeap).(Node)
	assert.Assertf(len(t.nodes) == 2*len(symbols)-1,
		"tree with %d leaves has %d nodes", len(symbols), len(t.nodes))

	t.codes = make(map[string]Code, len(symbols))
	if root := &t.nodes[t.root]; root.isLeaf() {
		// special-case:
		// A lone symbol still needs at least one bit
		// or it would never appear in the output.
		t.codes[root.Symbol] = Code{Size: 1}
		return t, nil
	}

	if err := t.labelNode(t.root, Code{}); err != nil {
		return nil, err
	}
	return t, nil
}

// labelNode records the codes for all leaves under n,
// given the code for n itself.
func (t *Tree) labelNode(n Node, prefix Code) error {
	nd := &t.nodes[n]
	if nd.isLeaf() {
		t.codes[nd.Symbol] = prefix
		return nil
	}

	if prefix.Size == MaxCodeSize {
		return ErrCodeTooLong
	}

	if err := t.labelNode(nd.Left, prefix.append(0)); err != nil {
		return err
	}
	return t.labelNode(nd.Right, prefix.append(1))
}

func (t *Tree) add(n node) Node {
	id := Node(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return id
}

// Len reports the number of symbols in the tree.
func (t *Tree) Len() int { return len(t.codes) }

// Code returns the code for the given symbol.
func (t *Tree) Code(sym string) (Code, bool) {
	c, ok := t.codes[sym]
	return c, ok
}

// Codes returns a copy of the code table.
func (t *Tree) Codes() map[string]Code {
	codes := make(map[string]Code, len(t.codes))
	for sym, c := range t.codes {
		codes[sym] = c
	}
	return codes
}

// Symbols returns the symbols in the tree in lexicographic order.
func (t *Tree) Symbols() []string {
	syms := make([]string, 0, len(t.codes))
	for sym := range t.codes {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

// Freq returns the frequency of the given node.
func (t *Tree) Freq(n Node) int { return t.nodes[n].Freq }

// Root returns the root of the tree.
func (t *Tree) Root() Node { return t.root }

// Left returns the child reached by a 0 bit.
// It returns -1 for leaves.
func (t *Tree) Left(n Node) Node { return t.nodes[n].Left }

// Right returns the child reached by a 1 bit.
// It returns -1 for leaves.
func (t *Tree) Right(n Node) Node { return t.nodes[n].Right }

// Leaf reports the symbol held by n if n is a leaf.
func (t *Tree) Leaf(n Node) (sym string, ok bool) {
	nd := &t.nodes[n]
	if !nd.isLeaf() {
		return "", false
	}
	return nd.Symbol, true
}

// addFreq adds two frequencies, saturating at math.MaxInt.
func addFreq(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// nodeHeap is a min-heap of tree nodes ordered by frequency.
// Nodes with the same frequency are ordered by ID,
// which is the order in which they were added to the tree.
type nodeHeap struct {
	tree *Tree
	ids  []Node
}

var _ heap.Interface = (*nodeHeap)(nil)

func (h *nodeHeap) Len() int { return len(h.ids) }

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.ids[i], h.ids[j]
	fa, fb := h.tree.nodes[a].Freq, h.tree.nodes[b].Freq
	if fa != fb {
		return fa < fb
	}
	return a < b
}

func (h *nodeHeap) Swap(i, j int) {
	h.ids[i], h.ids[j] = h.ids[j], h.ids[i]
}

func (h *nodeHeap) Push(e interface{}) {
	h.ids = append(h.ids, e.(Node))
}

func (h *nodeHeap) Pop() interface{} {
	n := len(h.ids) - 1
	v := h.ids[n]
	h.ids = h.ids[:n]
	return v
}
