package huffman

import (
	"fmt"
	"io"
	"strings"
)

// Print draws t to w, one node per line, children indented under their
// parent with the left child first. Leaves are shown as [symbol, freq] and
// internal nodes as [freq].
func (t *Tree) Print(w io.Writer) error {
	if len(t.nodes) == 0 {
		return nil
	}
	return t.printNode(w, t.root, 0)
}

func (t *Tree) printNode(w io.Writer, idx, depth int) error {
	n := t.nodes[idx]
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("|  ", depth), n); err != nil {
		return err
	}
	if n.IsLeaf() {
		return nil
	}
	for _, child := range [2]int{n.Left, n.Right} {
		if child == NoChild {
			continue
		}
		if err := t.printNode(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// String formats n the way Print shows it.
func (n Node) String() string {
	if !n.IsLeaf() {
		return fmt.Sprintf("[%d]", n.Freq)
	}
	var sym string
	switch n.Symbol {
	case '\n':
		sym = `\n`
	case '\r':
		sym = `\r`
	case 0:
		sym = `\0`
	default:
		sym = string(n.Symbol)
	}
	return fmt.Sprintf("[%s, %d]", sym, n.Freq)
}
