/*
Package lz implements the dictionary compressor used for pixpack palette
index streams.

The input is a sequence of symbols, each narrower than a fixed number of bits
chosen by the caller. The output is a bit-packed stream of tokens written
with package bitstream. Every token starts with a 9-bit distance field:

	distance == 0: literal, followed by one symbol
	distance > 0:  back-reference, followed by a length class bit and
	               either a 5-bit (class 0) or 12-bit (class 1) field
	               holding length-MinMatch

A back-reference copies length symbols starting distance symbols back in the
output, one symbol at a time, so a distance shorter than the length repeats
the tail of the output. There is no end marker; the stream ends when fewer
bits remain than a distance field needs.

Round trip:

	enc, err := lz.Encode(indices, 4)
	if err != nil {
		return err
	}
	dec, err := lz.Decode(enc, 4)
	if err != nil {
		return err
	}
	// dec equals indices
*/
package lz

// Token stream constants.
const (
	DistanceBits    = 9  // Width of the distance field.
	ShortLengthBits = 5  // Width of the length field when the class bit is 0.
	LongLengthBits  = 12 // Width of the length field when the class bit is 1.

	MinMatch    = 2
	MaxMatch    = MinMatch + 1<<LongLengthBits - 1
	MaxDistance = 1<<DistanceBits - 1

	// MaxSymbolBits is the widest symbol supported.
	MaxSymbolBits = 8
)
