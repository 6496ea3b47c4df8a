package pixpack

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/pixpack/asset"
	"github.com/c2h5oh/datasize"
)

var errVerify = errors.New("pixpack: decoded asset does not match source")

func replaceExt(file, ext string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + ext
}

func (p *Pixpack) maxColors() int {
	if p.options.MaxColors == 0 {
		return asset.MaxColors
	}
	return p.options.MaxColors
}

// decodeImage decodes the image in file and returns it along with the
// SHA-1 of the whole file.
func decodeImage(file string) (image.Image, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", file, err)
	}
	// Hash anything the decoder didn't need
	if _, err := io.Copy(h, f); err != nil {
		return nil, "", err
	}

	return m, fmt.Sprintf("%X", h.Sum(nil)), nil
}

func verify(a *asset.Asset, b []byte) error {
	var dup asset.Asset
	if err := dup.UnmarshalBinary(b); err != nil {
		return fmt.Errorf("%w: %v", errVerify, err)
	}
	if dup.Width != a.Width || dup.Height != a.Height || !bytes.Equal(dup.Pix, a.Pix) {
		return errVerify
	}
	return nil
}

func (p *Pixpack) encode(file, sha string, m image.Image) ([]byte, error) {
	a, err := asset.New(m, p.assetOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	b, err := a.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	if err := verify(a, b); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	p.logger.Printf("Encoded \"%s\", %dx%d with %d colors, %s to %s\n", file, a.Width, a.Height, len(a.Palette), datasize.ByteSize(a.Width*a.Height).HR(), datasize.ByteSize(len(b)).HR())

	if p.db != nil {
		if _, err := p.db.Store(sha, p.maxColors(), a, b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// EncodeFile encodes the image in file and writes the asset to out. If out
// is empty the asset is written next to file with the extension replaced by
// Extension. Every freshly encoded asset is decoded again and compared with
// the source before it is written.
func (p *Pixpack) EncodeFile(file, out string) error {
	if out == "" {
		out = replaceExt(file, Extension)
	}

	m, sha, err := decodeImage(file)
	if err != nil {
		return err
	}

	var b []byte
	if p.db != nil && !p.options.Force {
		if b, err = p.db.Lookup(sha, p.maxColors()); err != nil {
			return err
		}
	}

	if b != nil {
		p.logger.Printf("Using cached asset for \"%s\", with SHA1 \"%s\"\n", file, sha)
	} else {
		if b, err = p.encode(file, sha, m); err != nil {
			return err
		}
	}

	return ioutil.WriteFile(out, b, 0644)
}

// DecodeFile decodes the asset in file and writes it to out as a PNG. If
// out is empty the extension of file is replaced with ".png".
func (p *Pixpack) DecodeFile(file, out string) error {
	if out == "" {
		out = replaceExt(file, ".png")
	}

	b, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}

	var a asset.Asset
	if err := a.UnmarshalBinary(b); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, a.Image()); err != nil {
		return err
	}

	p.logger.Printf("Decoded \"%s\", %dx%d with %d colors\n", file, a.Width, a.Height, len(a.Palette))

	return f.Close()
}
