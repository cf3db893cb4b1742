package extract

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// Metafile record types carrying text, plus the end-of-stream marker.
const (
	recExtTextOutA = 83 // legacy single-byte text output
	recExtTextOutW = 84 // UTF-16LE text output
	recEOF         = 14 // explicit end of the record stream
)

const (
	// markerHeaderOffset is where the 4-byte marker sits inside the
	// metafile header, so the header starts that many bytes earlier.
	markerHeaderOffset = 40

	// recordHeaderSize is the fixed {type u32, size u32} prefix of every record.
	recordHeaderSize = 8

	// textRecordMinSize: text-output records at or below this declared size
	// cannot hold a payload worth decoding.
	textRecordMinSize = 76

	// maxTextChars is a sanity ceiling against corrupt character counts.
	maxTextChars = 1000
)

// metafileMarker is the " EMF" signature found at markerHeaderOffset inside
// every embedded metafile header.
var metafileMarker = []byte{0x20, 0x45, 0x4D, 0x46}

// findMetafile scans buf at or after from for the metafile marker and returns
// the offset of the enclosing header (marker position minus markerHeaderOffset,
// clamped to zero). ok is false when no marker occurs at or after from, or
// when the marker sits so close to from that the enclosing header would start
// before it: the record walker only ever jumps forward, and a header behind
// the search origin would send it back over records it has already consumed.
func findMetafile(buf []byte, from int) (start int, ok bool) {
	if from < 0 || from >= len(buf) {
		return 0, false
	}
	i := bytes.Index(buf[from:], metafileMarker)
	if i < 0 {
		return 0, false
	}
	start = from + i - markerHeaderOffset
	if start < 0 {
		start = 0
	}
	if start < from {
		return 0, false
	}
	return start, true
}

// parseState tracks the record walker. The only genuinely stateful transition
// is jumping from an end-of-stream record into a second concatenated metafile,
// so the walk is modeled explicitly rather than as nested branching.
type parseState int

const (
	stateScanning parseState = iota // before the first metafile is located
	stateWalking                    // cursor at a record boundary
	stateDone                       // terminal
)

type recordParser struct {
	buf   []byte
	pos   int
	state parseState
	frags []Fragment
}

// parseRecords walks the embedded metafile record stream(s) of buf and
// returns every decodable positioned text fragment. A missing signature,
// corrupt header, or truncated tail ends the walk cleanly with whatever was
// accumulated; zero fragments signals the caller to try the fallback scanner.
func parseRecords(buf []byte) []Fragment {
	p := &recordParser{buf: buf}
	for p.state != stateDone {
		switch p.state {
		case stateScanning:
			p.locate()
		case stateWalking:
			p.step()
		}
	}
	return p.frags
}

func (p *recordParser) locate() {
	start, ok := findMetafile(p.buf, 0)
	if !ok {
		p.state = stateDone
		return
	}
	p.pos = start
	p.state = stateWalking
}

// step consumes one record at the cursor. Partial or corrupt headers are
// expected at the tail of real spool files and terminate the walk silently.
func (p *recordParser) step() {
	if p.pos+recordHeaderSize > len(p.buf) {
		p.state = stateDone
		return
	}
	recType := binary.LittleEndian.Uint32(p.buf[p.pos : p.pos+4])
	recSize := binary.LittleEndian.Uint32(p.buf[p.pos+4 : p.pos+8])
	if recSize < recordHeaderSize || int(recSize) > len(p.buf)-p.pos {
		p.state = stateDone
		return
	}

	switch {
	case recType == recExtTextOutW && recSize > textRecordMinSize:
		if f, ok := decodeTextRecord(p.buf, p.pos, int(recSize), true); ok {
			p.frags = append(p.frags, f)
		}
	case recType == recExtTextOutA && recSize > textRecordMinSize:
		if f, ok := decodeTextRecord(p.buf, p.pos, int(recSize), false); ok {
			p.frags = append(p.frags, f)
		}
	case recType == recEOF:
		// Spools may concatenate several metafiles, one per printed page.
		next, ok := findMetafile(p.buf, p.pos+int(recSize))
		if !ok {
			p.state = stateDone
			return
		}
		p.pos = next
		return
	}

	p.pos += int(recSize)
}

// Text payload layout shared by both text-output variants, as byte offsets
// from the record start. All fields little-endian.
const (
	offRefX    = 36 // reference X, i32
	offRefY    = 40 // reference Y, i32
	offNChars  = 44 // character count, u32
	offString  = 48 // string offset relative to record start, u32
	textFields = 52
)

// decodeTextRecord decodes one text-output record into a Fragment. Any
// malformed offset or length yields ok=false and the record is skipped; the
// caller still advances by the declared record size.
func decodeTextRecord(buf []byte, start, size int, wide bool) (Fragment, bool) {
	if start+textFields > len(buf) {
		return Fragment{}, false
	}
	rec := buf[start:]
	x := int(int32(binary.LittleEndian.Uint32(rec[offRefX : offRefX+4])))
	y := int(int32(binary.LittleEndian.Uint32(rec[offRefY : offRefY+4])))
	nChars := int(binary.LittleEndian.Uint32(rec[offNChars : offNChars+4]))
	strOff := int(binary.LittleEndian.Uint32(rec[offString : offString+4]))

	if nChars <= 0 || nChars > maxTextChars {
		return Fragment{}, false
	}
	byteLen := nChars
	if wide {
		byteLen = nChars * 2
	}
	if strOff < 0 || strOff+byteLen > size {
		return Fragment{}, false
	}
	if start+strOff+byteLen > len(buf) {
		return Fragment{}, false
	}

	raw := buf[start+strOff : start+strOff+byteLen]
	var text string
	if wide {
		text = decodeUTF16LE(raw)
	} else {
		text = decodeLegacy(raw)
	}
	text = strings.TrimSpace(text)
	if text == "" || isNoise(text) {
		return Fragment{}, false
	}
	return Fragment{Text: text, X: x, Y: y}, true
}
