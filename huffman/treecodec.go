package huffman

import (
	"bytes"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/icza/bitio"
)

// symbolBits is wide enough for any Unicode scalar value (max U+10FFFF).
const symbolBits = 21

// MarshalBinary serializes the shape and symbols of t in pre-order. An
// internal node is written as a 0 bit followed by its left and right
// subtrees, a leaf as a 1 bit followed by its 21-bit symbol. The last byte is
// zero-padded. Frequencies are not stored.
func (t *Tree) MarshalBinary() ([]byte, error) {
	if len(t.nodes) == 0 {
		return nil, wrapf(ErrInternal, "empty tree")
	}

	bw := NewBitWriter()
	stack := []int{t.root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[idx]
		if n.IsLeaf() {
			if err := bw.WriteBit(true); err != nil {
				return nil, err
			}
			if err := bw.WriteCode(Code{Bits: uint64(n.Symbol), Len: symbolBits}); err != nil {
				return nil, err
			}
			continue
		}
		if n.Left == NoChild || n.Right == NoChild {
			return nil, wrapf(ErrInternal, "internal node %d is missing a child", idx)
		}
		if err := bw.WriteBit(false); err != nil {
			return nil, err
		}
		stack = append(stack, n.Right, n.Left)
	}

	b, _, err := bw.Finish()
	return b, err
}

// pending is a child slot waiting to be filled while decoding.
type pending struct {
	parent int
	right  bool
}

// UnmarshalTree rebuilds a tree written by MarshalBinary. Truncated data,
// non-zero padding, trailing bytes, invalid or repeated symbols are reported
// as ErrFormat.
func UnmarshalTree(data []byte) (*Tree, error) {
	if len(data) == 0 {
		return nil, wrapf(ErrFormat, "empty tree")
	}

	r := bitio.NewReader(bytes.NewReader(data))
	t := &Tree{root: NoChild}
	seen := make(map[rune]bool)
	var consumed uint64

	stack := []pending{{parent: NoChild}}
	for len(stack) > 0 {
		slot := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		leaf, err := r.ReadBool()
		if err != nil {
			return nil, truncated(err)
		}
		consumed++

		var idx int
		if leaf {
			v, err := r.ReadBits(symbolBits)
			if err != nil {
				return nil, truncated(err)
			}
			consumed += symbolBits
			sym := rune(v)
			if !utf8.ValidRune(sym) {
				return nil, wrapf(ErrFormat, "invalid symbol %#x in tree", v)
			}
			if seen[sym] {
				return nil, wrapf(ErrFormat, "symbol %q appears twice in tree", sym)
			}
			seen[sym] = true
			idx = t.add(Node{Symbol: sym, Left: NoChild, Right: NoChild})
		} else {
			idx = t.add(Node{Symbol: -1, Left: NoChild, Right: NoChild})
			stack = append(stack, pending{parent: idx, right: true}, pending{parent: idx})
		}

		switch {
		case slot.parent == NoChild:
			t.root = idx
		case slot.right:
			t.nodes[slot.parent].Right = idx
		default:
			t.nodes[slot.parent].Left = idx
		}
	}

	if pad := uint8((8 - consumed%8) % 8); pad > 0 {
		v, err := r.ReadBits(pad)
		if err != nil {
			return nil, truncated(err)
		}
		if v != 0 {
			return nil, wrapf(ErrFormat, "non-zero padding after tree")
		}
	}
	if _, err := r.ReadByte(); !errors.Is(err, io.EOF) {
		return nil, wrapf(ErrFormat, "trailing bytes after tree")
	}
	return t, nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return wrapf(ErrFormat, "tree data truncated")
	}
	return err
}
