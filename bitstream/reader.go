package bitstream

import (
	"fmt"
	"io"
)

// Reader extracts values of fixed bit width from a byte buffer, the exact
// inverse of Writer.
type Reader struct {
	buf []byte
	off int  // current byte
	bit uint // next bit within the current byte, always < 8
}

// NewReader returns a Reader positioned at the first bit of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// ReadBits returns the next n bits. If fewer than n bits remain it returns
// io.EOF and the cursor is left where it was. It panics if n is greater than
// MaxBits.
func (r *Reader) ReadBits(n uint) (uint32, error) {
	if n > MaxBits {
		panic(fmt.Sprintf("bitstream: cannot read %d bits", n))
	}
	if int(n) > r.Remaining() {
		return 0, io.EOF
	}

	var v uint32
	for n > 0 {
		b := 8 - r.bit
		if n < b {
			b = n
		}
		n -= b

		v <<= b
		v |= uint32(r.buf[r.off]>>r.bit) & mask(b)

		r.bit += b
		if r.bit == 8 {
			r.off++
			r.bit = 0
		}
	}

	return v, nil
}

// ReadBit returns the next bit.
func (r *Reader) ReadBit() (bool, error) {
	v, err := r.ReadBits(1)
	return v == 1, err
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	return (len(r.buf)-r.off)*8 - int(r.bit)
}

// Offset returns the number of bits consumed so far.
func (r *Reader) Offset() int {
	return r.off*8 + int(r.bit)
}
