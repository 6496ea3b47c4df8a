package asset

import (
	"errors"
	"image"
	"io"

	"github.com/bodgit/pixpack/bitstream"
	"github.com/bodgit/pixpack/lz"
)

var (
	errMaxColors     = errors.New("asset: palette limit out of range")
	errTooLarge      = errors.New("asset: image too large")
	errTooManyColors = errors.New("asset: too many colors")
	errEmptyPalette  = errors.New("asset: empty palette")
	errPixelCount    = errors.New("asset: pixel count mismatch")
)

func (a *Asset) validate() error {
	switch {
	case a.Width < 0 || a.Height < 0 || a.Width > maxDimension || a.Height > maxDimension:
		return errTooLarge
	case len(a.Palette) == 0:
		return errEmptyPalette
	case len(a.Palette) > MaxColors:
		return errTooManyColors
	case len(a.Pix) != a.Width*a.Height:
		return errPixelCount
	}
	for _, p := range a.Pix {
		if int(p) >= len(a.Palette) {
			return errBadPalette
		}
	}
	return nil
}

// MarshalBinary encodes the asset into the container format.
func (a *Asset) MarshalBinary() ([]byte, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}

	w := bitstream.NewWriter(make([]byte, 0, headerSize+entrySize*len(a.Palette)+len(a.Pix)))

	w.WriteBits(uint32(a.Width), 16)
	w.WriteBits(uint32(a.Height), 16)
	w.WriteBits(uint32(len(a.Palette)), 8)

	for _, c := range a.Palette {
		for _, v := range [entrySize]uint8{c.R, c.G, c.B, c.A} {
			w.WriteBits(uint32(v), 8)
		}
	}

	if err := lz.Compress(w, a.Pix, a.SymbolBits()); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// Encode writes the Image m to w in pixpack container format.
func Encode(w io.Writer, m image.Image, o *Options) error {
	a, err := New(m, o)
	if err != nil {
		return err
	}

	b, err := a.MarshalBinary()
	if err != nil {
		return err
	}

	_, err = w.Write(b)
	return err
}
