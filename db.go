package pixpack

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/pixpack/asset"
	_ "github.com/mattn/go-sqlite3"
)

// AssetDB caches encoded assets keyed by the SHA-1 of the source image and
// the palette limit it was encoded with.
type AssetDB struct {
	db *sql.DB
}

// NewAssetDB opens or creates the cache database at file.
func NewAssetDB(file string) (*AssetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, max_colors INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, colors INTEGER NOT NULL, data BLOB NOT NULL, UNIQUE(sha1, max_colors))"); err != nil {
		db.Close()
		return nil, err
	}

	return &AssetDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *AssetDB) Close() error {
	return db.db.Close()
}

// Lookup returns the encoded asset for the given hash and palette limit, or
// nil if there isn't one.
func (db *AssetDB) Lookup(sha string, maxColors int) ([]byte, error) {
	var data []byte
	switch err := db.db.QueryRow("SELECT data FROM asset WHERE sha1 = ? AND max_colors = ?", sha, maxColors).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return data, nil
	default:
		return nil, err
	}
}

// Store records the encoded asset, replacing any existing entry for the same
// hash and palette limit.
func (db *AssetDB) Store(sha string, maxColors int, a *asset.Asset, data []byte) (int64, error) {
	result, err := db.db.Exec("INSERT OR REPLACE INTO asset (sha1, max_colors, width, height, colors, data) VALUES (?, ?, ?, ?, ?, ?)", sha, maxColors, a.Width, a.Height, len(a.Palette), data)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Count returns the number of cached assets.
func (db *AssetDB) Count() (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM asset").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Purge deletes every cached asset.
func (db *AssetDB) Purge() error {
	_, err := db.db.Exec("DELETE FROM asset")
	return err
}
