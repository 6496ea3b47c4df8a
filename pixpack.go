/*
Package pixpack is a library for turning images into compact palette assets
and back again.
*/
package pixpack

import (
	"log"

	"github.com/bodgit/pixpack/asset"
)

const (
	// Extension is appended to the base name of a source image to name
	// the encoded asset.
	Extension = ".bin"

	defaultWorkers = 4
)

// Options configures a Pixpack.
type Options struct {
	// MaxColors caps the palette size including the transparent entry,
	// zero means asset.MaxColors.
	MaxColors int
	// Workers is the number of images encoded concurrently by Scan.
	Workers int
	// Force re-encodes images even if the cache has them.
	Force bool
}

// Pixpack encodes and decodes asset files, optionally remembering
// previously encoded images in an AssetDB.
type Pixpack struct {
	db      *AssetDB
	logger  *log.Logger
	options Options
}

// New returns a Pixpack using the cache database at dbPath. An empty dbPath
// disables the cache.
func New(dbPath string, logger *log.Logger, opts *Options) (*Pixpack, error) {
	p := &Pixpack{
		logger: logger,
	}
	if opts != nil {
		p.options = *opts
	}
	if p.options.Workers <= 0 {
		p.options.Workers = defaultWorkers
	}

	if dbPath != "" {
		db, err := NewAssetDB(dbPath)
		if err != nil {
			return nil, err
		}
		p.db = db
	}

	return p, nil
}

func (p *Pixpack) assetOptions() *asset.Options {
	return &asset.Options{
		MaxColors: p.options.MaxColors,
	}
}

// Close closes the cache database, if any.
func (p *Pixpack) Close() error {
	if p.db == nil {
		return nil
	}
	return p.db.Close()
}
