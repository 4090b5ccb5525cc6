// Package pakdump reads GuitarFreaks & DrumMania V8's pak archive container.
//
// The container is a set of packNNNN.pak payload files indexed by a
// packinfo.bin table. The table stores no filenames, only hashes: each entry
// carries a CRC32 and CRC16 of the original path plus the pack id, byte
// offset, size, and an MD5 of the plaintext payload. Files are located by
// probing candidate paths against the hash pairs, then sliced straight out
// of the pack.
//
// Some payloads are stored encrypted with a per-file cipher keyed by the
// entry hashes; that cipher is not part of this package, so entries whose
// bytes do not match their MD5 are surfaced as ErrStillEncrypted rather
// than emitted corrupt. The music database (mdbe.bin) is not one of them:
// its own cipher lives in the mdb package.
package pakdump

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// Sentinel errors for programmatic error handling.
var (
	// ErrNoPackInfo indicates no packinfo.bin was found under the data root.
	ErrNoPackInfo = errors.New("packinfo.bin not found")

	// ErrBadPackInfo indicates packinfo.bin is malformed.
	ErrBadPackInfo = errors.New("malformed packinfo.bin")

	// ErrUnknownPack indicates an entry references a pack id with no
	// packNNNN.pak file on disk.
	ErrUnknownPack = errors.New("unknown pack id")

	// ErrStillEncrypted indicates an extracted payload failed MD5
	// verification; it is stored with the per-file pack cipher this
	// package does not implement.
	ErrStillEncrypted = errors.New("payload still encrypted")
)

// Entry is one packinfo.bin record: a hashed filename mapped to a byte range
// inside one pack file.
type Entry struct {
	MD5      [16]byte
	CRC32    uint32
	CRC16    uint16
	PackID   uint16
	Offset   uint32
	Filesize uint32

	// Filename is set once a probed candidate path matches the hashes.
	Filename string
}

const (
	packinfoEndOffset   = 0x08
	packinfoTableOffset = 0x10
	packinfoEntrySize   = 0x20
)

// parsePackInfo decodes the packinfo.bin entry table. Entries with a
// duplicate CRC32/CRC16 pair are kept first-wins, as the game does.
func parsePackInfo(path string) (map[uint32]*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < packinfoTableOffset {
		return nil, fmt.Errorf("%w: %d byte file", ErrBadPackInfo, len(data))
	}

	end := int(binary.LittleEndian.Uint32(data[packinfoEndOffset:]))
	if end > len(data) {
		return nil, fmt.Errorf("%w: table end 0x%x past end of file", ErrBadPackInfo, end)
	}

	entries := make(map[uint32]*Entry)
	for off := packinfoTableOffset; off+packinfoEntrySize <= end; off += packinfoEntrySize {
		e := &Entry{}
		copy(e.MD5[:], data[off:off+16])

		rest := data[off+16 : off+packinfoEntrySize]
		e.CRC32 = binary.LittleEndian.Uint32(rest[0:4])
		e.CRC16 = binary.LittleEndian.Uint16(rest[4:6])
		e.PackID = binary.LittleEndian.Uint16(rest[6:8])
		e.Offset = binary.LittleEndian.Uint32(rest[8:12])
		e.Filesize = binary.LittleEndian.Uint32(rest[12:16])

		if prev, ok := entries[e.CRC32]; ok && prev.CRC16 == e.CRC16 {
			continue
		}
		entries[e.CRC32] = e
	}
	return entries, nil
}
