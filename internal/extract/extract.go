// Package extract turns raw legacy report bytes into a rectangular grid of
// text cells. Report files embed one or more enhanced metafiles whose
// text-output records carry the printed strings together with their anchor
// coordinates; the engine walks those records, decodes the strings (UTF-16LE
// or the legacy Thai single-byte code page), filters out font-name and
// template noise, and clusters the surviving fragments back into rows and
// columns by pixel position. When no metafile can be located, a heuristic
// byte scanner recovers what text it can without layout information.
//
// The engine is stateless: every Extract call owns its input buffer and its
// output, so concurrent calls need no coordination. The only process-wide
// data are the immutable constant tables (record types, the noise denylist,
// encoding ranges).
package extract

import (
	"bytes"
	"io"
	"log"

	"github.com/richardlehane/mscfb"
)

// Fragment is one decoded piece of text anchored at a 2D device coordinate.
// Coordinates from the record stream are real layout positions; the fallback
// scanner assigns synthetic monotonically increasing Y values instead.
type Fragment struct {
	Text string
	X    int
	Y    int
}

// Grid is the engine's sole output: rows of cells, top-to-bottom and
// left-to-right by reconstructed position.
type Grid [][]string

// compoundMagic identifies an OLE2 compound file. Some report spools arrive
// wrapped in a compound document with one stream per printed page.
var compoundMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Extract converts raw report file bytes into an ordered Grid. It never
// fails: malformed, truncated, or empty input yields an empty Grid.
func Extract(data []byte) Grid {
	if streams, ok := compoundStreams(data); ok {
		grid := Grid{}
		for _, stream := range streams {
			grid = append(grid, extractBuffer(stream)...)
		}
		return grid
	}
	return extractBuffer(data)
}

// extractBuffer runs the full pipeline on one flat buffer: structured record
// parsing first, the heuristic scanner when that produces nothing.
func extractBuffer(buf []byte) Grid {
	frags := parseRecords(buf)
	if len(frags) == 0 {
		frags = scanFallback(buf)
	}
	return buildGrid(frags)
}

// compoundStreams returns the non-empty streams of an OLE2 compound file in
// directory order. ok is false when data is not a compound file or cannot be
// opened, in which case the caller processes the buffer directly.
func compoundStreams(data []byte) (streams [][]byte, ok bool) {
	if !bytes.HasPrefix(data, compoundMagic) {
		return nil, false
	}
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		log.Printf("[Extract] compound file open failed, scanning raw buffer: %v", err)
		return nil, false
	}
	for {
		entry, err := doc.Next()
		if err != nil {
			break
		}
		b, err := io.ReadAll(entry)
		if err != nil || len(b) == 0 {
			continue
		}
		streams = append(streams, b)
	}
	return streams, len(streams) > 0
}
