package huffman

import "strings"

// maxCodeLen is the longest code a Code can hold.
const maxCodeLen = 64

// Code is a prefix code: the low Len bits of Bits, most significant first.
type Code struct {
	Bits uint64
	Len  uint8
}

// String renders c as a string of '0' and '1'.
func (c Code) String() string {
	var sb strings.Builder
	for i := int(c.Len) - 1; i >= 0; i-- {
		if c.Bits>>uint(i)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// HasPrefix reports whether p is a prefix of c.
func (c Code) HasPrefix(p Code) bool {
	if p.Len > c.Len {
		return false
	}
	return c.Bits>>(c.Len-p.Len) == p.Bits
}

// CodeTable maps each symbol to its code.
type CodeTable map[rune]Code

// Codes derives the code table of t. Descending left appends a 0, right a 1.
// A tree consisting of a single leaf assigns that symbol the code "0".
func Codes(t *Tree) (CodeTable, error) {
	codes := make(CodeTable)
	if t == nil || len(t.nodes) == 0 {
		return nil, wrapf(ErrInternal, "empty tree")
	}

	root := t.nodes[t.root]
	if root.IsLeaf() {
		codes[root.Symbol] = Code{Bits: 0, Len: 1}
		return codes, nil
	}

	var walk func(idx int, c Code) error
	walk = func(idx int, c Code) error {
		if idx < 0 || idx >= len(t.nodes) {
			return wrapf(ErrInternal, "node index %d out of range", idx)
		}
		n := t.nodes[idx]
		if n.IsLeaf() {
			codes[n.Symbol] = c
			return nil
		}
		if n.Left == NoChild || n.Right == NoChild {
			return wrapf(ErrInternal, "internal node %d is missing a child", idx)
		}
		if c.Len == maxCodeLen {
			return wrapf(ErrInternal, "code for node %d exceeds %d bits", idx, maxCodeLen)
		}
		if err := walk(n.Left, Code{Bits: c.Bits << 1, Len: c.Len + 1}); err != nil {
			return err
		}
		return walk(n.Right, Code{Bits: c.Bits<<1 | 1, Len: c.Len + 1})
	}

	if err := walk(t.root, Code{}); err != nil {
		return nil, err
	}
	return codes, nil
}
