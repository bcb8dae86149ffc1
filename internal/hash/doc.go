// Package hash provides the checksums used by the record framing.
//
// # CRC32-Castagnoli (CRC32C)
//
// Every record carries two CRC32C checksums: one over the 8-byte length
// prefix and one over the payload. CRC32C is used because it is hardware
// accelerated on x86 (SSE4.2) and ARM (CRC extension) and is the standard
// choice for log and record formats (iSCSI, LevelDB, RocksDB).
//
// # Masking
//
// Checksums are never stored raw. [Mask] rotates the value right by 15 bits
// and adds a constant, so a payload that itself contains CRC values does not
// produce framing bytes that look like a valid checksum:
//
//	stored := hash.MaskedCRC32C(payload)
//	ok := hash.Unmask(stored) == hash.CRC32C(payload)
//
// # Usage
//
// For one-shot checksums:
//
//	checksum := hash.CRC32C(data)
//
// For streaming checksums:
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	checksum := h.Sum32()
package hash
