package asset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/pixpack/bitstream"
	"github.com/bodgit/pixpack/lz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{0xff, 0x00, 0x00, 0xff}
	green = color.NRGBA{0x00, 0xff, 0x00, 0xff}
	blue  = color.NRGBA{0x00, 0x00, 0xff, 0x80}
)

func testImage() *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i, c := range []color.NRGBA{
		red, {}, {0x0a, 0x14, 0x1e, 0x00},
		green, red, blue,
	} {
		m.SetNRGBA(i%3, i/3, c)
	}
	return m
}

func TestNew(t *testing.T) {
	a, err := New(testImage(), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, a.Width)
	assert.Equal(t, 2, a.Height)
	assert.Equal(t, []color.NRGBA{{}, red, green, blue}, a.Palette)
	assert.Equal(t, []byte{1, 0, 0, 2, 1, 3}, a.Pix)
	assert.Equal(t, uint(3), a.SymbolBits())
}

func TestNewOffsetBounds(t *testing.T) {
	m := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	m.SetNRGBA(6, 5, red)

	a, err := New(m, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Width)
	assert.Equal(t, 1, a.Height)
	assert.Equal(t, []byte{0, 1}, a.Pix)
}

func TestMarshalBinary(t *testing.T) {
	a, err := New(testImage(), nil)
	require.NoError(t, err)

	b, err := a.MarshalBinary()
	require.NoError(t, err)

	expected := []byte{
		0x00, 0x03, // width
		0x00, 0x02, // height
		0x04, // palette count
		0x00, 0x00, 0x00, 0x00,
		0xff, 0x00, 0x00, 0xff,
		0x00, 0xff, 0x00, 0xff,
		0x00, 0x00, 0xff, 0x80,
	}
	require.True(t, len(b) > len(expected))
	assert.Equal(t, expected, b[:len(expected)])

	pix, err := lz.Decode(b[len(expected):], 3)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, pix)
}

func TestRoundTrip(t *testing.T) {
	src := testImage()

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, src, nil))

	m, err := Decode(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)

	pm, ok := m.(*image.Paletted)
	require.True(t, ok)
	assert.Equal(t, src.Bounds(), pm.Bounds())
	assert.Equal(t, []byte{1, 0, 0, 2, 1, 3}, pm.Pix)

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			c := src.NRGBAAt(x, y)
			if c.A == 0 {
				c = color.NRGBA{}
			}
			assert.Equal(t, c, pm.At(x, y))
		}
	}
}

func TestDecodeConfig(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, testImage(), nil))

	cfg, err := DecodeConfig(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Width)
	assert.Equal(t, 2, cfg.Height)
	assert.Equal(t, color.Palette{color.NRGBA{}, red, green, blue}, cfg.ColorModel)

	_, err = DecodeConfig(bytes.NewReader(b.Bytes()[:3]))
	assert.Equal(t, errNotEnough, err)

	_, err = DecodeConfig(bytes.NewReader(b.Bytes()[:10]))
	assert.Equal(t, errNotEnough, err)
}

func TestQuantize(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x * 8), uint8(y * 8), uint8(x ^ y), 0xff})
		}
	}
	// Transparent pixels must survive quantizing
	m.SetNRGBA(0, 0, color.NRGBA{})

	a, err := New(m, &Options{MaxColors: 16})
	require.NoError(t, err)
	assert.True(t, len(a.Palette) <= 16)
	assert.Equal(t, color.NRGBA{}, a.Palette[0])
	assert.Equal(t, byte(0), a.Pix[0])
	for _, p := range a.Pix[1:] {
		assert.NotEqual(t, byte(0), p)
	}

	b, err := a.MarshalBinary()
	require.NoError(t, err)

	var dup Asset
	require.NoError(t, dup.UnmarshalBinary(b))
	assert.Equal(t, *a, dup)
}

func TestOptions(t *testing.T) {
	for _, max := range []int{-1, 1, MaxColors + 1} {
		_, err := New(testImage(), &Options{MaxColors: max})
		assert.Equal(t, errMaxColors, err)
	}

	_, err := New(image.NewNRGBA(image.Rect(0, 0, maxDimension+1, 1)), nil)
	assert.Equal(t, errTooLarge, err)
}

func TestMarshalBinaryInvalid(t *testing.T) {
	_, err := (&Asset{Width: 1, Height: 1, Pix: []byte{0}}).MarshalBinary()
	assert.Equal(t, errEmptyPalette, err)

	_, err = (&Asset{Width: 2, Height: 1, Palette: []color.NRGBA{{}}, Pix: []byte{0}}).MarshalBinary()
	assert.Equal(t, errPixelCount, err)

	_, err = (&Asset{Width: 1, Height: 1, Palette: []color.NRGBA{{}}, Pix: []byte{1}}).MarshalBinary()
	assert.Equal(t, errBadPalette, err)
}

func writeHeader(w *bitstream.Writer, width, height int, palette ...color.NRGBA) {
	w.WriteBits(uint32(width), 16)
	w.WriteBits(uint32(height), 16)
	w.WriteBits(uint32(len(palette)), 8)
	for _, c := range palette {
		for _, v := range []uint8{c.R, c.G, c.B, c.A} {
			w.WriteBits(uint32(v), 8)
		}
	}
}

func TestUnmarshalBinaryInvalid(t *testing.T) {
	var a Asset

	assert.Equal(t, errNotEnough, a.UnmarshalBinary([]byte{0x00, 0x01}))

	w := bitstream.NewWriter(nil)
	writeHeader(w, 1, 1)
	assert.Equal(t, errEmptyPalette, a.UnmarshalBinary(w.Bytes()))

	w = bitstream.NewWriter(nil)
	writeHeader(w, 1, 1, color.NRGBA{}, red)
	assert.Equal(t, errNotEnough, a.UnmarshalBinary(w.Bytes()[:8]))

	// Index 3 fits in two bits but is past the end of the palette
	w = bitstream.NewWriter(nil)
	writeHeader(w, 1, 1, color.NRGBA{}, red)
	require.NoError(t, lz.Compress(w, []byte{3}, 2))
	assert.Equal(t, errBadPalette, a.UnmarshalBinary(w.Bytes()))

	// Back-reference before any pixel
	w = bitstream.NewWriter(nil)
	writeHeader(w, 2, 1, color.NRGBA{}, red)
	w.WriteBits(1, lz.DistanceBits)
	w.WriteBits(0, 1)
	w.WriteBits(0, lz.ShortLengthBits)
	assert.True(t, errors.Is(a.UnmarshalBinary(w.Bytes()), lz.ErrDistance))

	// Losing the last byte drops a whole pixel
	b, err := (&Asset{Width: 2, Height: 1, Palette: []color.NRGBA{{}, red}, Pix: []byte{1, 1}}).MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, errPixelCount, a.UnmarshalBinary(b[:len(b)-1]))

	// Nothing decoded means a is untouched
	assert.Equal(t, Asset{}, a)
}
