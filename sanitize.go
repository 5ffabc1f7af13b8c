package main

import (
	"path/filepath"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// SanitizeFilename turns an arbitrary client-supplied filename into a safe
// name for the upload directory: path components stripped, non-ASCII
// transliterated, specials collapsed to underscores. The extension is kept,
// including the inner one for archived CSVs (crimes.csv.gz).
func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if isArchiveExt(ext) {
		if inner := strings.ToLower(filepath.Ext(stem)); inner != "" {
			ext = inner + ext
			stem = strings.TrimSuffix(stem, filepath.Ext(stem))
		}
	}

	stem = unidecode.Unidecode(stem)
	stem = strings.ToLower(replaceSpecialSymbols(stem))
	if stem == "" {
		stem = "upload"
	}
	return stem + ext
}

func isArchiveExt(ext string) bool {
	return ext == ".zip" || ext == ".gz" || ext == ".lz4"
}
