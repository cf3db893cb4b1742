package extract

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"
)

// Fallback scanning constants. A Thai code point in raw UTF-16LE shows up as
// a low byte in the block range followed by the 0x0E high byte; that pair is
// distinctive enough to anchor string recovery in an otherwise opaque buffer.
const (
	thaiHighByte = 0x0E
	thaiLowFirst = 0x01
	thaiLowLast  = 0x5B

	// fallbackRowStep spaces synthetic Y coordinates so discovery order
	// survives the row reconstructor (which splits rows more than 15 apart).
	fallbackRowStep = 20
)

// validScanCode reports whether a 16-bit unit can belong to a recovered
// string: printable ASCII, the Thai block, or tab/CR/LF.
func validScanCode(u uint16) bool {
	if u >= 0x20 && u <= 0x7E {
		return true
	}
	if u >= 0x0E01 && u <= 0x0E5B {
		return true
	}
	return u == '\t' || u == '\r' || u == '\n'
}

// scanFallback recovers text from a buffer with no usable record structure.
// It looks for Thai code units in raw UTF-16LE form, walks backward two bytes
// at a time to the likely string start, then forward to a NUL or invalid
// unit. Recovered strings get synthetic positions (x=0, increasing y) so the
// reconstructor preserves discovery order, and are deduplicated by exact text
// since overlapping windows emit the same string repeatedly.
//
// The backward walk assumes two-byte alignment; unrelated binary data that
// happens to satisfy validScanCode can mislocate a string start. That is
// inherent to scanning without record boundaries and is accepted.
func scanFallback(buf []byte) []Fragment {
	var frags []Fragment
	seen := make(map[string]bool)

	for i := 0; i+1 < len(buf); {
		if buf[i+1] != thaiHighByte || buf[i] < thaiLowFirst || buf[i] > thaiLowLast {
			i++
			continue
		}

		// Backward: extend to the earliest preceding valid unit.
		start := i
		for start >= 2 && validScanCode(binary.LittleEndian.Uint16(buf[start-2:start])) {
			start -= 2
		}

		// Forward: accumulate until NUL or an invalid unit.
		var units []uint16
		j := start
		for j+1 < len(buf) {
			u := binary.LittleEndian.Uint16(buf[j : j+2])
			if u == 0 || !validScanCode(u) {
				break
			}
			units = append(units, u)
			j += 2
		}

		text := strings.TrimSpace(string(utf16.Decode(units)))
		if text != "" && !isNoise(text) && !seen[text] {
			seen[text] = true
			frags = append(frags, Fragment{Text: text, X: 0, Y: len(frags) * fallbackRowStep})
		}

		// Jump past the consumed range (including the terminating unit).
		i = j + 2
	}

	return frags
}
