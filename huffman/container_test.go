package huffman

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

var aaabbcContainer = []byte{
	0, 0, 0, 0, 0, 0, 0, 9,
	0x40, 0x00, 0xc2, 0x80, 0x01, 0x8e, 0x00, 0x06, 0x20,
	0, 0, 0, 0, 0, 0, 0, 9,
	0x1f, 0x00,
}

func TestCompressGolden(t *testing.T) {
	got, err := Compress("aaabbc")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, aaabbcContainer) {
		t.Errorf("Compress(aaabbc) = % x\nwant % x", got, aaabbcContainer)
	}
	text, err := Decompress(got)
	if err != nil {
		t.Fatal(err)
	}
	if text != "aaabbc" {
		t.Errorf("Decompress = %q, want aaabbc", text)
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tests := []struct {
		name string
		text string
	}{
		{"one symbol", "a"},
		{"repeated symbol", strings.Repeat("z", 1000)},
		{"repeated symbol byte aligned", "zzzzzzzz"},
		{"repeated multibyte symbol", strings.Repeat("🙂", 37)},
		{"two symbols", "ab"},
		{"sentence", "the quick brown fox jumps over the lazy dog\n"},
		{"line endings", "a\r\nb\r\n\x00c\n"},
		{"unicode", "héllo wörld ✓ 日本語 🙂 \U0010ffff"},
		{"skewed", strings.Repeat("a", 500) + strings.Repeat("b", 20) + "cd"},
		{"random small alphabet", randomText(rng, 10000, 8)},
		{"random large alphabet", randomText(rng, 30000, 3000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed, err := Compress(tt.text)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			got, err := Decompress(packed)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if got != tt.text {
				t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(tt.text))
			}
		})
	}
}

func TestCompressDeterministic(t *testing.T) {
	text := randomText(rand.New(rand.NewSource(3)), 5000, 100)
	a, err := Compress(text)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compress(text)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("compressing the same text twice gave different output")
	}
}

func TestCompressBitCountExact(t *testing.T) {
	text := "mississippi river"
	packed, err := Compress(text)
	if err != nil {
		t.Fatal(err)
	}
	c, err := ParseContainer(packed)
	if err != nil {
		t.Fatal(err)
	}
	codes, err := Codes(mustTree(t, text))
	if err != nil {
		t.Fatal(err)
	}
	var want uint64
	for _, r := range text {
		want += uint64(codes[r].Len)
	}
	if c.BitCount != want {
		t.Errorf("BitCount = %d, want %d", c.BitCount, want)
	}
}

func TestCompressRejectsInput(t *testing.T) {
	for _, text := range []string{"", "\xc3\x28"} {
		if _, err := Compress(text); !errors.Is(err, ErrInput) {
			t.Errorf("Compress(%q) error = %v, want ErrInput", text, err)
		}
	}
}

func withBitCount(data []byte, n uint64) []byte {
	out := append([]byte(nil), data...)
	treeLen := binary.BigEndian.Uint64(out)
	binary.BigEndian.PutUint64(out[lenSize+treeLen:], n)
	return out
}

func TestDecompressMalformed(t *testing.T) {
	single, err := Compress("aaa")
	if err != nil {
		t.Fatal(err)
	}
	single[len(single)-1] = 0x80

	hugeTree := append([]byte(nil), aaabbcContainer...)
	binary.BigEndian.PutUint64(hugeTree, 1<<62)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short tree length", aaabbcContainer[:5]},
		{"truncated mid tree", aaabbcContainer[:12]},
		{"tree length beyond data", hugeTree},
		{"missing bit count", aaabbcContainer[:lenSize+len(aaabbcTree)+3]},
		{"bit count beyond payload", withBitCount(aaabbcContainer, 17)},
		{"huge bit count", withBitCount(aaabbcContainer, ^uint64(0))},
		{"trailing payload bytes", append(append([]byte(nil), aaabbcContainer...), 0)},
		{"missing payload", aaabbcContainer[:len(aaabbcContainer)-2]},
		{"zero bit count", withBitCount(aaabbcContainer[:len(aaabbcContainer)-2], 0)},
		{"bit count ends inside a code", withBitCount(aaabbcContainer[:len(aaabbcContainer)-1], 8)},
		{"single symbol with bit 1", single},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Decompress(tt.data)
			if !errors.Is(err, ErrFormat) {
				t.Errorf("Decompress error = %v, want ErrFormat", err)
			}
			if text != "" {
				t.Errorf("Decompress returned %q alongside an error", text)
			}
		})
	}
}

func TestParseContainer(t *testing.T) {
	c, err := ParseContainer(aaabbcContainer)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(c.Tree, aaabbcTree) || c.BitCount != 9 || !bytes.Equal(c.Payload, []byte{0x1f, 0x00}) {
		t.Errorf("ParseContainer = %+v", c)
	}
	out, err := c.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, aaabbcContainer) {
		t.Errorf("MarshalBinary = % x", out)
	}
}

func TestContainerMarshalChecksPayload(t *testing.T) {
	c := Container{Tree: aaabbcTree, BitCount: 9, Payload: []byte{0x1f}}
	if _, err := c.MarshalBinary(); !errors.Is(err, ErrInternal) {
		t.Errorf("got %v, want ErrInternal", err)
	}
}
