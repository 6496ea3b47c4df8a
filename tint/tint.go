// Package tint produces colored variants of a sprite, for example to build
// a sheet of differently colored marbles from a single grey one before the
// sheet is packed.
package tint

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"
)

var errBadColor = errors.New("tint: invalid color")

// Apply scales each color channel of src by the matching channel of c, so
// white becomes c and black stays black. Alpha is left alone.
func Apply(src image.Image, c color.RGBA) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			dst.SetNRGBA(x-b.Min.X, y-b.Min.Y, color.NRGBA{
				R: scale(p.R, c.R),
				G: scale(p.G, c.G),
				B: scale(p.B, c.B),
				A: p.A,
			})
		}
	}
	return dst
}

func scale(v, f uint8) uint8 {
	return uint8(uint(v) * uint(f) / 0xff)
}

// Sheet draws one tinted copy of src per color side by side, the i-th copy
// at x offset i times the width of src. Copies replace whatever is
// underneath. If base is not nil the sheet starts as a copy of base,
// otherwise it is transparent and just big enough for the copies.
func Sheet(base, src image.Image, colors []color.RGBA) *image.NRGBA {
	sb := src.Bounds()

	var dst *image.NRGBA
	if base != nil {
		bb := base.Bounds()
		dst = image.NewNRGBA(image.Rect(0, 0, bb.Dx(), bb.Dy()))
		draw.Draw(dst, dst.Bounds(), base, bb.Min, draw.Src)
	} else {
		dst = image.NewNRGBA(image.Rect(0, 0, sb.Dx()*len(colors), sb.Dy()))
	}

	for i, c := range colors {
		r := image.Rect(sb.Dx()*i, 0, sb.Dx()*(i+1), sb.Dy())
		draw.Draw(dst, r, Apply(src, c), image.Point{}, draw.Src)
	}

	return dst
}

// ParseColor parses "#rrggbb" or "r,g,b" into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)

	var v [3]uint64
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return color.RGBA{}, fmt.Errorf("%w: %q", errBadColor, s)
		}
		for i := range v {
			n, err := strconv.ParseUint(s[1+i*2:3+i*2], 16, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("%w: %q", errBadColor, s)
			}
			v[i] = n
		}
	} else {
		parts := strings.Split(s, ",")
		if len(parts) != len(v) {
			return color.RGBA{}, fmt.Errorf("%w: %q", errBadColor, s)
		}
		for i, p := range parts {
			n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("%w: %q", errBadColor, s)
			}
			v[i] = n
		}
	}

	return color.RGBA{uint8(v[0]), uint8(v[1]), uint8(v[2]), 0xff}, nil
}
