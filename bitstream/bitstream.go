/*
Package bitstream implements the bit-level writer and reader used by the
pixpack token stream.

Bits are packed into each byte starting at the least significant bit. A value
is split into chunks no wider than the space left in the current byte and the
chunks are taken from the most significant end of the value first. A 16-bit
value written at a byte boundary therefore ends up big-endian.
*/
package bitstream

// MaxBits is the widest value that can be written or read in one call.
const MaxBits = 32

func mask(n uint) uint32 {
	return uint32(1)<<n - 1
}
