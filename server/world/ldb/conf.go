package ldb

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"
)

// Config holds the settings used to open a DB.
type Config struct {
	// Log is the Logger that errors that occur while reading or writing
	// settings are logged to. If nil, Log is set to slog.Default().
	Log *slog.Logger
	// Compression specifies the compression used by the database. If left as
	// opt.DefaultCompression, opt.FlateCompression is used.
	Compression opt.Compression
	// BlockSize specifies the size of blocks in the database. If 0, 16KiB is
	// used.
	BlockSize int
	// ReadOnly opens the database without allowing writes to it.
	ReadOnly bool
}

// Open creates a new DB reading and writing from/to the directory passed. If
// the directory does not yet exist, it is created.
func (conf Config) Open(dir string) (*DB, error) {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	conf.Log = conf.Log.With("provider", "ldb")
	if conf.Compression == opt.DefaultCompression {
		conf.Compression = opt.FlateCompression
	}
	if conf.BlockSize == 0 {
		conf.BlockSize = 16 * opt.KiB
	}
	if !conf.ReadOnly {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	ldb, err := leveldb.OpenFile(filepath.Join(dir, "db"), &opt.Options{
		Compression: conf.Compression,
		BlockSize:   conf.BlockSize,
		ReadOnly:    conf.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return &DB{conf: conf, dir: dir, ldb: ldb}, nil
}
