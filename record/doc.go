// Package record frames opaque payloads into checksummed on-disk records.
//
// Each record is laid out little-endian as:
//
//	offset  size  field
//	0       8     length (uint64)
//	8       4     masked CRC32C of the 8 length bytes
//	12      L     payload
//	12+L    4     masked CRC32C of the payload
//
// A stream is a plain concatenation of records with no header or footer.
// [Reader] validates the length checksum before reading the payload, so a
// corrupted length never triggers a read or allocation of a bogus size.
//
// End of stream is reported as io.EOF only when no byte at all remains at a
// record boundary. Any shorter remainder is [ErrTruncatedRecord].
package record
