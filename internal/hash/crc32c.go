package hash

import (
	"hash"

	"github.com/klauspost/crc32"
)

// maskDelta is added to the rotated checksum by Mask.
const maskDelta uint32 = 0xa282ead8

// crc32cTable is pre-computed for CRC32-Castagnoli polynomial.
// Computing this once avoids repeated MakeTable calls.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
// Uses hardware acceleration when available (SSE4.2, ARM CRC).
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// NewCRC32C returns a new CRC32-Castagnoli hash.Hash32.
func NewCRC32C() hash.Hash32 {
	return crc32.New(crc32cTable)
}

// Mask returns the masked representation of crc that is stored on disk.
func Mask(crc uint32) uint32 {
	return ((crc >> 15) | (crc << 17)) + maskDelta
}

// Unmask reverses Mask.
func Unmask(masked uint32) uint32 {
	rot := masked - maskDelta
	return (rot >> 17) | (rot << 15)
}

// MaskedCRC32C returns Mask(CRC32C(data)).
func MaskedCRC32C(data []byte) uint32 {
	return Mask(CRC32C(data))
}
