package asset

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/ioutil"

	"github.com/bodgit/pixpack/bitstream"
	"github.com/bodgit/pixpack/lz"
)

var (
	errNotEnough  = errors.New("asset: not enough data")
	errBadPalette = errors.New("asset: invalid palette index")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type header struct {
	width, height int
	palette       []color.NRGBA
}

func (h *header) size() int {
	return headerSize + entrySize*len(h.palette)
}

func (h *header) read(r *bitstream.Reader) error {
	var fields [3]uint32
	for i, n := range [len(fields)]uint{16, 16, 8} {
		v, err := r.ReadBits(n)
		if err != nil {
			return errNotEnough
		}
		fields[i] = v
	}

	h.width, h.height = int(fields[0]), int(fields[1])
	if fields[2] == 0 {
		return errEmptyPalette
	}

	h.palette = make([]color.NRGBA, fields[2])
	for i := range h.palette {
		var v [entrySize]uint8
		for j := range v {
			b, err := r.ReadBits(8)
			if err != nil {
				return errNotEnough
			}
			v[j] = uint8(b)
		}
		h.palette[i] = color.NRGBA{v[0], v[1], v[2], v[3]}
	}

	return nil
}

// UnmarshalBinary decodes the asset from the container format.
func (a *Asset) UnmarshalBinary(b []byte) error {
	var h header
	if err := h.read(bitstream.NewReader(b)); err != nil {
		return err
	}

	tmp := Asset{
		Width:   h.width,
		Height:  h.height,
		Palette: h.palette,
	}

	pix, err := lz.Decode(b[h.size():], tmp.SymbolBits())
	if err != nil {
		return fmt.Errorf("asset: pixels: %w", err)
	}
	tmp.Pix = pix

	if err := tmp.validate(); err != nil {
		return err
	}

	*a = tmp
	return nil
}

// Decode reads a pixpack container from r and returns it as an
// image.Image.
func Decode(r io.Reader) (image.Image, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var a Asset
	if err := a.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return a.Image(), nil
}

// DecodeConfig returns the color model and dimensions of a pixpack
// container without decoding the pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var tmp [headerSize]byte
	if err := readFull(r, tmp[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return image.Config{}, err
		}
		return image.Config{}, errNotEnough
	}

	count := int(tmp[headerSize-1])
	b := make([]byte, headerSize+entrySize*count)
	copy(b, tmp[:])
	if err := readFull(r, b[headerSize:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return image.Config{}, err
		}
		return image.Config{}, errNotEnough
	}

	var h header
	if err := h.read(bitstream.NewReader(b)); err != nil {
		return image.Config{}, err
	}

	p := make(color.Palette, len(h.palette))
	for i, c := range h.palette {
		p[i] = c
	}

	return image.Config{
		ColorModel: p,
		Width:      h.width,
		Height:     h.height,
	}, nil
}
