package lz

import "errors"

var (
	ErrSymbolBits  = errors.New("lz: symbol width out of range")
	ErrSymbolRange = errors.New("lz: symbol does not fit in symbol width")
	ErrTruncated   = errors.New("lz: truncated stream")
	ErrDistance    = errors.New("lz: back-reference distance exceeds decoded output")
)

func checkSymbolBits(symbolBits uint) error {
	if symbolBits == 0 || symbolBits > MaxSymbolBits {
		return ErrSymbolBits
	}
	return nil
}
