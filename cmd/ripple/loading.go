package main

import (
	"os"
	"path/filepath"

	"ripple/internal/sourcedb"
)

// loadFile reads a file from disk, strips a BOM and normalizes CRLF so byte
// offsets stay stable across platforms, then installs name and text in the
// database under id. The core never reads disk itself; this is the only
// place file IO happens.
func loadFile(db *sourcedb.DB, id sourcedb.FileID, path string) error {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text := string(data)
	text, _ = sourcedb.StripBOM(text)
	text, _ = sourcedb.NormalizeCRLF(text)
	db.SetFileName(id, filepath.ToSlash(path))
	db.SetSourceText(id, text)
	return nil
}
