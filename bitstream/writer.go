package bitstream

import "fmt"

// Writer accumulates values of arbitrary bit width into a growing byte
// buffer.
type Writer struct {
	buf []byte
	pos uint // bits used in the last byte, 0 means a new byte is needed
}

// NewWriter returns a Writer that appends to buf. Any existing bytes in buf
// are treated as fully used.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// WriteBits appends the low n bits of v. It panics if n is greater than
// MaxBits or v does not fit in n bits.
func (w *Writer) WriteBits(v uint32, n uint) {
	if n > MaxBits {
		panic(fmt.Sprintf("bitstream: cannot write %d bits", n))
	}
	if v > mask(n) {
		panic(fmt.Sprintf("bitstream: value %d does not fit in %d bits", v, n))
	}

	for n > 0 {
		b := 8 - w.pos
		if n < b {
			b = n
		}
		n -= b

		if w.pos == 0 {
			w.buf = append(w.buf, 0)
		}
		w.buf[len(w.buf)-1] |= byte((v>>n)&mask(b)) << w.pos

		w.pos = (w.pos + b) % 8
	}
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(b bool) {
	if b {
		w.WriteBits(1, 1)
		return
	}
	w.WriteBits(0, 1)
}

// Bytes returns the buffer. The unused high bits of the last byte are zero.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes in the buffer.
func (w *Writer) Len() int {
	return len(w.buf)
}

// BitLen returns the number of bits written.
func (w *Writer) BitLen() int {
	if w.pos == 0 {
		return len(w.buf) * 8
	}
	return (len(w.buf)-1)*8 + int(w.pos)
}

// Reset empties the buffer, keeping its capacity.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.pos = 0
}
