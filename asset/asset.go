/*
Package asset implements the pixpack image container.

An image is reduced to a table of at most 255 colors where entry 0 is always
fully transparent and every pixel with zero alpha uses it. The container is
written with package bitstream as:

	width          16 bits
	height         16 bits
	palette count   8 bits
	palette        count entries of red, green, blue, alpha, 8 bits each
	pixels         lz token stream of width*height palette indices

Each palette index in the token stream is as wide as the bit length of the
palette count. Multi-byte header fields are big-endian and the token stream
always starts on a byte boundary.
*/
package asset

import (
	"image"
	"image/color"
	"math/bits"
)

const (
	headerSize   = 5
	entrySize    = 4
	maxDimension = 1<<16 - 1

	// MaxColors is the largest palette that fits in the header, including
	// the transparent entry.
	MaxColors = 1<<8 - 1
)

// Options configures Encode and New.
type Options struct {
	// MaxColors caps the palette size including the transparent entry.
	// Zero means MaxColors.
	MaxColors int
}

func (o *Options) maxColors() (int, error) {
	if o == nil || o.MaxColors == 0 {
		return MaxColors, nil
	}
	if o.MaxColors < 2 || o.MaxColors > MaxColors {
		return 0, errMaxColors
	}
	return o.MaxColors, nil
}

// Asset is an image reduced to palette indices.
type Asset struct {
	Width   int
	Height  int
	Palette []color.NRGBA
	// Pix holds one palette index per pixel in row-major order.
	Pix []byte
}

// New reduces m to an Asset. Images with more opaque colors than the
// palette allows are quantized first.
func New(m image.Image, o *Options) (*Asset, error) {
	max, err := o.maxColors()
	if err != nil {
		return nil, err
	}

	b := m.Bounds()
	if b.Dx() > maxDimension || b.Dy() > maxDimension {
		return nil, errTooLarge
	}

	palette, pix := buildPalette(m, max)
	if len(palette) > max {
		return nil, errTooManyColors
	}

	return &Asset{
		Width:   b.Dx(),
		Height:  b.Dy(),
		Palette: palette,
		Pix:     pix,
	}, nil
}

// SymbolBits returns the width of each palette index in the token stream.
func (a *Asset) SymbolBits() uint {
	return uint(bits.Len(uint(len(a.Palette))))
}

// Image returns the asset as a paletted image with its top-left corner at
// (0, 0).
func (a *Asset) Image() *image.Paletted {
	p := make(color.Palette, len(a.Palette))
	for i, c := range a.Palette {
		p[i] = c
	}
	m := image.NewPaletted(image.Rect(0, 0, a.Width, a.Height), p)
	copy(m.Pix, a.Pix)
	return m
}
