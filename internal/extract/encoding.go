package extract

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// utf16le decodes the raw little-endian code-unit stream found in the wide
// text-output records. No BOM is ever present inside a record payload.
var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// decodeUTF16LE decodes raw as UTF-16LE. Unpaired surrogates become U+FFFD,
// which the noise filter then usually discards.
func decodeUTF16LE(raw []byte) string {
	out, err := utf16le.NewDecoder().Bytes(raw)
	if err != nil {
		return ""
	}
	return string(out)
}

// Legacy single-byte code page: the contiguous high range maps onto the Thai
// Unicode block at a fixed offset, printable ASCII passes through, and every
// other byte contributes nothing (dropped, not substituted). The exact
// drop-don't-substitute behavior is why this is not charmap.Windows874.
const (
	legacyHighFirst = 0xA1
	legacyHighLast  = 0xFB
	legacyBlockBase = 0x0E00
	legacyBlockBias = 0xA0
)

// decodeLegacy decodes raw under the legacy code page.
func decodeLegacy(raw []byte) string {
	var b strings.Builder
	for _, c := range raw {
		switch {
		case c >= legacyHighFirst && c <= legacyHighLast:
			b.WriteRune(rune(legacyBlockBase + int(c) - legacyBlockBias))
		case c >= 0x20 && c <= 0x7E:
			b.WriteByte(c)
		}
	}
	return b.String()
}
