package asset

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

type colorTable struct {
	palette []color.NRGBA
	index   map[color.NRGBA]byte
}

func newColorTable() *colorTable {
	return &colorTable{
		palette: []color.NRGBA{{}},
		index:   map[color.NRGBA]byte{{}: 0},
	}
}

func (t *colorTable) add(c color.NRGBA) byte {
	if c.A == 0 {
		return 0
	}
	if i, ok := t.index[c]; ok {
		return i
	}
	i := byte(len(t.palette))
	t.palette = append(t.palette, c)
	t.index[c] = i
	return i
}

func nrgbaAt(m image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
}

// countOpaque returns the number of distinct colors with non-zero alpha,
// stopping once limit is exceeded.
func countOpaque(m image.Image, limit int) int {
	seen := make(map[color.NRGBA]struct{})
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := nrgbaAt(m, x, y)
			if c.A == 0 {
				continue
			}
			seen[c] = struct{}{}
			if len(seen) > limit {
				return len(seen)
			}
		}
	}
	return len(seen)
}

// buildPalette maps every pixel of m to an index in a palette of no more
// than maxColors entries. Entry 0 is transparent and the remaining entries
// are in order of first appearance.
func buildPalette(m image.Image, maxColors int) ([]color.NRGBA, []byte) {
	b := m.Bounds()

	// Too many colors, reduce them to the nearest of a quantized set
	var q color.Palette
	if countOpaque(m, maxColors-1) > maxColors-1 {
		mc := quantize.MedianCutQuantizer{}
		q = mc.Quantize(make(color.Palette, 0, maxColors-1), m)
	}

	t := newColorTable()
	pix := make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := nrgbaAt(m, x, y)
			if q != nil && c.A != 0 {
				c = color.NRGBAModel.Convert(q.Convert(c)).(color.NRGBA)
				// Don't let quantizing turn a visible pixel transparent
				if c.A == 0 {
					c.A = 1
				}
			}
			pix = append(pix, t.add(c))
		}
	}

	return t.palette, pix
}
