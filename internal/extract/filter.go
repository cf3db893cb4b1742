package extract

import (
	"strings"
	"unicode/utf8"
)

// noiseText is the shared denylist of font names and template placeholders
// that leak out of report metafiles alongside the actual data. Matched
// case-insensitively and exactly; both the record decoder and the fallback
// scanner consult the same table so the two paths agree on what counts as
// data. Keys are lowercase.
var noiseText = map[string]bool{
	"arial":           true,
	"times new roman": true,
	"courier new":     true,
	"tahoma":          true,
	"verdana":         true,

	// Thai font families common in legacy report templates.
	"angsana new":   true,
	"angsanaupc":    true,
	"browallia new": true,
	"browalliaupc":  true,
	"cordia new":    true,
	"cordiaupc":     true,
	"dilleniaupc":   true,
	"eucrosiaupc":   true,
	"freesiaupc":    true,
	"irisupc":       true,
	"jasmineupc":    true,
	"kodchiangupc":  true,
	"lilyupc":       true,
	"leelawadee":    true,

	// Generic template words.
	"standard": true,
	"text":     true,
	"page":     true,
	"title":    true,
}

// isNoise reports whether a decoded string should be discarded: exact
// denylist entries and single-character fragments are never report data.
func isNoise(s string) bool {
	trimmed := strings.TrimSpace(s)
	if utf8.RuneCountInString(trimmed) <= 1 {
		return true
	}
	return noiseText[strings.ToLower(trimmed)]
}
