package pakdump

import (
	"hash/crc32"
	"strings"
)

// The filename CRC16 is a reflected CRC16/CCITT with a final complement.
// The filename CRC32 is the standard reflected IEEE polynomial, which
// hash/crc32 provides directly; only the path normalization is custom.

const crc16Poly = 0x8408 // reflected CCITT polynomial

var crc16Table [256]uint16

func init() {
	for i := range crc16Table {
		crc := uint16(i)
		for j := 0; j < 8; j++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ crc16Poly
			} else {
				crc >>= 1
			}
		}
		crc16Table[i] = crc
	}
}

// filenameCRC16 hashes a candidate path with the pack table's CRC16 variant.
func filenameCRC16(path string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(path); i++ {
		crc = (crc >> 8) ^ crc16Table[byte(crc)^path[i]]
	}
	return ^crc
}

// filenameCRC32 hashes a candidate path with the pack table's CRC32 variant.
// Paths are normalized first: a data/ path gains its leading slash, and
// /data/aep paths are compared lowercase.
func filenameCRC32(path string) uint32 {
	return crc32.ChecksumIEEE([]byte(normalizePath(path)))
}

// normalizePath applies the pack table's path canonicalization rules.
func normalizePath(path string) string {
	if strings.HasPrefix(path, "data/") {
		path = "/" + path
	}
	if strings.HasPrefix(path, "/data/aep") {
		path = strings.ToLower(path)
	}
	return path
}
