package huffman

import (
	"slices"
	"unicode/utf8"
)

// FrequencyTable maps each symbol in a text to its number of occurrences.
type FrequencyTable map[rune]uint64

// CountFrequencies counts every symbol of text. Empty or non UTF-8 text is
// rejected with ErrInput.
func CountFrequencies(text string) (FrequencyTable, error) {
	if len(text) == 0 {
		return nil, wrapf(ErrInput, "empty text")
	}
	if !utf8.ValidString(text) {
		return nil, wrapf(ErrInput, "text is not valid UTF-8")
	}

	freqs := make(FrequencyTable)
	for _, r := range text {
		freqs[r]++
	}
	return freqs, nil
}

// Symbols returns the symbols of the table in ascending order.
func (f FrequencyTable) Symbols() []rune {
	syms := make([]rune, 0, len(f))
	for r := range f {
		syms = append(syms, r)
	}
	slices.Sort(syms)
	return syms
}

// Total is the number of symbols counted.
func (f FrequencyTable) Total() uint64 {
	var n uint64
	for _, c := range f {
		n += c
	}
	return n
}
