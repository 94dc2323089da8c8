package huffman

import "container/heap"

// NoChild marks a missing child index.
const NoChild = -1

// Node is one entry of a Tree's node arena. A leaf has no children; an
// internal node has both.
type Node struct {
	Symbol rune
	Freq   uint64
	Left   int
	Right  int
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool {
	return n.Left == NoChild && n.Right == NoChild
}

// Tree is a Huffman tree stored as an arena of nodes addressed by index.
type Tree struct {
	nodes []Node
	root  int
}

// Root returns the index of the root node.
func (t *Tree) Root() int { return t.root }

// Node returns the node at index i.
func (t *Tree) Node(i int) Node { return t.nodes[i] }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Leaves returns the number of leaf nodes.
func (t *Tree) Leaves() int {
	n := 0
	for _, nd := range t.nodes {
		if nd.IsLeaf() {
			n++
		}
	}
	return n
}

func (t *Tree) add(n Node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

// queued is a heap entry. seq orders nodes of equal frequency: leaves get
// ascending sequence numbers by symbol, merged nodes the next free one.
type queued struct {
	idx  int
	freq uint64
	seq  int
}

type nodeHeap []queued

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(queued)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}

// BuildTree builds the Huffman tree for freqs by repeatedly merging the two
// least frequent nodes. The first node popped becomes the left child. A
// table with one symbol yields a tree whose root is a leaf.
func BuildTree(freqs FrequencyTable) (*Tree, error) {
	if len(freqs) == 0 {
		return nil, wrapf(ErrInput, "empty frequency table")
	}

	syms := freqs.Symbols()
	t := &Tree{nodes: make([]Node, 0, 2*len(syms)-1)}
	h := make(nodeHeap, 0, len(syms))
	seq := 0
	for _, s := range syms {
		f := freqs[s]
		if f == 0 {
			return nil, wrapf(ErrInput, "symbol %q has zero frequency", s)
		}
		idx := t.add(Node{Symbol: s, Freq: f, Left: NoChild, Right: NoChild})
		h = append(h, queued{idx: idx, freq: f, seq: seq})
		seq++
	}
	heap.Init(&h)

	for h.Len() > 1 {
		a := heap.Pop(&h).(queued)
		b := heap.Pop(&h).(queued)
		idx := t.add(Node{Symbol: -1, Freq: a.freq + b.freq, Left: a.idx, Right: b.idx})
		heap.Push(&h, queued{idx: idx, freq: a.freq + b.freq, seq: seq})
		seq++
	}

	t.root = heap.Pop(&h).(queued).idx
	return t, nil
}
