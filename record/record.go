package record

import (
	"encoding/binary"

	"github.com/hupe1980/tfrec/internal/hash"
)

const (
	// HeaderSize is the size of the length prefix plus its checksum.
	HeaderSize = 8 + 4
	// FooterSize is the size of the payload checksum.
	FooterSize = 4
	// Overhead is the number of framing bytes added to every payload.
	Overhead = HeaderSize + FooterSize
)

// FramedSize returns the on-disk size of a record holding n payload bytes.
func FramedSize(n int) int {
	return Overhead + n
}

// Frame returns the on-disk bytes of a record holding payload.
func Frame(payload []byte) []byte {
	return AppendFrame(make([]byte, 0, FramedSize(len(payload))), payload)
}

// AppendFrame appends the record for payload to dst and returns the extended buffer.
func AppendFrame(dst, payload []byte) []byte {
	start := len(dst)
	dst = binary.LittleEndian.AppendUint64(dst, uint64(len(payload)))
	dst = binary.LittleEndian.AppendUint32(dst, hash.MaskedCRC32C(dst[start:start+8]))
	dst = append(dst, payload...)
	dst = binary.LittleEndian.AppendUint32(dst, hash.MaskedCRC32C(payload))
	return dst
}
