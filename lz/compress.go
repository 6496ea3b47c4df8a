package lz

import (
	"fmt"

	"github.com/bodgit/pixpack/bitstream"
)

type token struct {
	distance int  // 0 for a literal
	length   int  // symbols covered, 1 for a literal
	symbol   byte // literal value
}

func (t token) literal() bool {
	return t.distance == 0
}

// matchLength returns how many symbols starting at i repeat the symbols
// starting d back, wrapping within the d symbol window.
func matchLength(data []byte, i, d int) int {
	l := 0
	for i+l < len(data) && data[i-d+l%d] == data[i+l] {
		l++
	}
	return l
}

// longestMatch returns the distance and length of the longest match at i.
// Shorter distances win ties.
func longestMatch(data []byte, i int) (int, int) {
	bestDistance, bestLength := 0, 0

	max := i
	if max > MaxDistance {
		max = MaxDistance
	}

	for d := 1; d <= max; d++ {
		if l := matchLength(data, i, d); l > bestLength {
			bestDistance, bestLength = d, l
			if bestLength >= MaxMatch {
				break
			}
		}
	}

	return bestDistance, bestLength
}

// tokenize greedily parses data into literals and back-references.
func tokenize(data []byte) []token {
	var tokens []token
	for i := 0; i < len(data); {
		d, l := longestMatch(data, i)
		if l < MinMatch {
			tokens = append(tokens, token{length: 1, symbol: data[i]})
			i++
			continue
		}
		if l > MaxMatch {
			l = MaxMatch
		}
		tokens = append(tokens, token{distance: d, length: l})
		i += l
	}
	return tokens
}

func (t token) write(w *bitstream.Writer, symbolBits uint) {
	if t.literal() {
		w.WriteBits(0, DistanceBits)
		w.WriteBits(uint32(t.symbol), symbolBits)
		return
	}

	w.WriteBits(uint32(t.distance), DistanceBits)
	if l := uint32(t.length - MinMatch); l < 1<<ShortLengthBits {
		w.WriteBit(false)
		w.WriteBits(l, ShortLengthBits)
	} else {
		w.WriteBit(true)
		w.WriteBits(l, LongLengthBits)
	}
}

// Compress writes data to w as a token stream. Every element of data must be
// less than 1<<symbolBits.
func Compress(w *bitstream.Writer, data []byte, symbolBits uint) error {
	if err := checkSymbolBits(symbolBits); err != nil {
		return err
	}
	for i, s := range data {
		if uint(s)>>symbolBits != 0 {
			return fmt.Errorf("%w: symbol %d at %d", ErrSymbolRange, s, i)
		}
	}

	for _, t := range tokenize(data) {
		t.write(w, symbolBits)
	}

	return nil
}

// Encode compresses data into a new byte slice.
func Encode(data []byte, symbolBits uint) ([]byte, error) {
	w := bitstream.NewWriter(make([]byte, 0, len(data)))
	if err := Compress(w, data, symbolBits); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
