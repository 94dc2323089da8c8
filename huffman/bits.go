package huffman

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/icza/bitio"
)

// BitWriter accumulates bits MSB-first into a byte buffer and keeps an
// exact count of the bits written.
type BitWriter struct {
	buf bytes.Buffer
	w   *bitio.Writer
	n   uint64
}

// NewBitWriter returns an empty BitWriter.
func NewBitWriter() *BitWriter {
	bw := &BitWriter{}
	bw.w = bitio.NewWriter(&bw.buf)
	return bw
}

// WriteCode appends the bits of c.
func (bw *BitWriter) WriteCode(c Code) error {
	if err := bw.w.WriteBits(c.Bits, c.Len); err != nil {
		return err
	}
	bw.n += uint64(c.Len)
	return nil
}

// WriteBit appends a single bit.
func (bw *BitWriter) WriteBit(bit bool) error {
	if err := bw.w.WriteBool(bit); err != nil {
		return err
	}
	bw.n++
	return nil
}

// Count returns the number of bits written so far.
func (bw *BitWriter) Count() uint64 { return bw.n }

// Finish zero-pads the last byte and returns the packed bytes together with
// the number of meaningful bits. The writer must not be used afterwards.
func (bw *BitWriter) Finish() ([]byte, uint64, error) {
	if err := bw.w.Close(); err != nil {
		return nil, 0, err
	}
	return bw.buf.Bytes(), bw.n, nil
}

// Pack concatenates codes into a byte buffer and returns it with the exact
// bit count.
func Pack(codes []Code) ([]byte, uint64, error) {
	bw := NewBitWriter()
	for _, c := range codes {
		if err := bw.WriteCode(c); err != nil {
			return nil, 0, err
		}
	}
	return bw.Finish()
}

// BitReader reads exactly count bits from a packed buffer, MSB-first.
// Padding after the last counted bit is never returned.
type BitReader struct {
	r    *bitio.Reader
	left uint64
}

// NewBitReader checks that payload holds exactly the bytes needed for count
// bits and returns a reader over them.
func NewBitReader(payload []byte, count uint64) (*BitReader, error) {
	if want := byteLen(count); uint64(len(payload)) != want {
		return nil, wrapf(ErrFormat, "%d-bit payload needs %d bytes, have %d", count, want, len(payload))
	}
	return &BitReader{r: bitio.NewReader(bytes.NewReader(payload)), left: count}, nil
}

// ReadBit returns the next bit. It returns io.EOF once count bits have been
// consumed.
func (br *BitReader) ReadBit() (bool, error) {
	if br.left == 0 {
		return false, io.EOF
	}
	bit, err := br.r.ReadBool()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, wrapf(ErrFormat, "payload ended early")
		}
		return false, err
	}
	br.left--
	return bit, nil
}

// Remaining returns the number of bits not yet read.
func (br *BitReader) Remaining() uint64 { return br.left }

// Unpack returns the first count bits of payload as a string of '0' and '1'.
func Unpack(payload []byte, count uint64) (string, error) {
	br, err := NewBitReader(payload, count)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(int(count))
	for {
		bit, err := br.ReadBit()
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
}

func byteLen(bits uint64) uint64 {
	n := bits / 8
	if bits%8 != 0 {
		n++
	}
	return n
}
