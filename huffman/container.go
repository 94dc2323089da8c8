package huffman

import (
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

// lenSize is the width of both length fields in a container.
const lenSize = 8

// Container holds the parts of a compressed file.
type Container struct {
	Tree     []byte
	BitCount uint64
	Payload  []byte
}

// MarshalBinary lays out c as tree length, tree, bit count, payload.
func (c *Container) MarshalBinary() ([]byte, error) {
	if want := byteLen(c.BitCount); uint64(len(c.Payload)) != want {
		return nil, wrapf(ErrInternal, "%d-bit payload needs %d bytes, have %d", c.BitCount, want, len(c.Payload))
	}
	out := make([]byte, 0, 2*lenSize+len(c.Tree)+len(c.Payload))
	out = binary.BigEndian.AppendUint64(out, uint64(len(c.Tree)))
	out = append(out, c.Tree...)
	out = binary.BigEndian.AppendUint64(out, c.BitCount)
	out = append(out, c.Payload...)
	return out, nil
}

// ParseContainer splits data into its parts. Declared lengths that exceed
// the available bytes, and payloads whose size does not match the bit count,
// are reported as ErrFormat.
func ParseContainer(data []byte) (*Container, error) {
	if len(data) < lenSize {
		return nil, wrapf(ErrFormat, "missing tree length")
	}
	treeLen := binary.BigEndian.Uint64(data)
	rest := data[lenSize:]
	if treeLen > uint64(len(rest)) {
		return nil, wrapf(ErrFormat, "tree length %d exceeds %d available bytes", treeLen, len(rest))
	}
	tree := rest[:treeLen]
	rest = rest[treeLen:]

	if len(rest) < lenSize {
		return nil, wrapf(ErrFormat, "missing bit count")
	}
	bitCount := binary.BigEndian.Uint64(rest)
	payload := rest[lenSize:]
	if bitCount > uint64(len(payload))*8 {
		return nil, wrapf(ErrFormat, "bit count %d exceeds %d payload bits", bitCount, len(payload)*8)
	}
	if want := byteLen(bitCount); uint64(len(payload)) != want {
		return nil, wrapf(ErrFormat, "%d trailing bytes after payload", uint64(len(payload))-want)
	}
	return &Container{Tree: tree, BitCount: bitCount, Payload: payload}, nil
}

// Compress encodes text into a container. Compressing the same text always
// yields the same bytes.
func Compress(text string) ([]byte, error) {
	freqs, err := CountFrequencies(text)
	if err != nil {
		return nil, err
	}
	tree, err := BuildTree(freqs)
	if err != nil {
		return nil, err
	}
	return CompressWithTree(tree, text)
}

// CompressWithTree encodes text using tree, which must hold a leaf for every
// symbol of text.
func CompressWithTree(tree *Tree, text string) ([]byte, error) {
	codes, err := Codes(tree)
	if err != nil {
		return nil, err
	}
	treeBytes, err := tree.MarshalBinary()
	if err != nil {
		return nil, err
	}

	bw := NewBitWriter()
	for _, r := range text {
		c, ok := codes[r]
		if !ok {
			return nil, wrapf(ErrInternal, "no code for symbol %q", r)
		}
		if err := bw.WriteCode(c); err != nil {
			return nil, err
		}
	}
	payload, n, err := bw.Finish()
	if err != nil {
		return nil, err
	}

	c := Container{Tree: treeBytes, BitCount: n, Payload: payload}
	return c.MarshalBinary()
}

// Decompress reconstructs the text stored in a container. Each payload bit
// selects the left (0) or right (1) child; reaching a leaf emits its symbol
// and restarts at the root. Decoding stops after exactly BitCount bits.
func Decompress(data []byte) (string, error) {
	c, err := ParseContainer(data)
	if err != nil {
		return "", err
	}
	if c.BitCount == 0 {
		return "", wrapf(ErrFormat, "empty payload")
	}
	tree, err := UnmarshalTree(c.Tree)
	if err != nil {
		return "", err
	}
	br, err := NewBitReader(c.Payload, c.BitCount)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	root := tree.nodes[tree.root]
	if root.IsLeaf() {
		sb.Grow(int(c.BitCount) * utf8.RuneLen(root.Symbol))
		for {
			bit, err := br.ReadBit()
			if errors.Is(err, io.EOF) {
				return sb.String(), nil
			}
			if err != nil {
				return "", err
			}
			if bit {
				return "", wrapf(ErrFormat, "bit 1 in single-symbol payload")
			}
			sb.WriteRune(root.Symbol)
		}
	}

	cur := tree.root
	for {
		bit, err := br.ReadBit()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		n := tree.nodes[cur]
		next := n.Left
		if bit {
			next = n.Right
		}
		if next == NoChild {
			return "", wrapf(ErrInternal, "internal node %d is missing a child", cur)
		}
		if leaf := tree.nodes[next]; leaf.IsLeaf() {
			sb.WriteRune(leaf.Symbol)
			cur = tree.root
			continue
		}
		cur = next
	}
	if cur != tree.root {
		return "", wrapf(ErrFormat, "payload ends inside a code")
	}
	return sb.String(), nil
}
