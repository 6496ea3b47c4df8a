package lz

import (
	"errors"
	"fmt"
	"io"

	"github.com/bodgit/pixpack/bitstream"
)

func readField(r *bitstream.Reader, n uint) (uint32, error) {
	v, err := r.ReadBits(n)
	if errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w at bit %d", ErrTruncated, r.Offset())
	}
	return v, err
}

// Decompress reads tokens from r until fewer bits remain than a distance
// field needs and returns the reconstructed symbols.
func Decompress(r *bitstream.Reader, symbolBits uint) ([]byte, error) {
	if err := checkSymbolBits(symbolBits); err != nil {
		return nil, err
	}

	out := []byte{}
	for {
		d, err := r.ReadBits(DistanceBits)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		if d == 0 {
			s, err := readField(r, symbolBits)
			if err != nil {
				return nil, err
			}
			out = append(out, byte(s))
			continue
		}

		class, err := readField(r, 1)
		if err != nil {
			return nil, err
		}
		n := uint(ShortLengthBits)
		if class == 1 {
			n = LongLengthBits
		}
		l, err := readField(r, n)
		if err != nil {
			return nil, err
		}

		if int(d) > len(out) {
			return nil, fmt.Errorf("%w: distance %d with %d symbols decoded", ErrDistance, d, len(out))
		}

		// Copy one symbol at a time so overlapping references see what
		// was just appended
		for i := 0; i < int(l)+MinMatch; i++ {
			out = append(out, out[len(out)-int(d)])
		}
	}

	return out, nil
}

// Decode decompresses a token stream held in b.
func Decode(b []byte, symbolBits uint) ([]byte, error) {
	return Decompress(bitstream.NewReader(b), symbolBits)
}
