package record

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedRecord is returned when the stream ends inside a record.
	ErrTruncatedRecord = errors.New("truncated record")

	// ErrChecksumMismatch is matched by every *ChecksumError.
	ErrChecksumMismatch = errors.New("record checksum mismatch")

	// ErrRecordTooLarge is returned when a record's validated length exceeds the configured maximum.
	ErrRecordTooLarge = errors.New("record too large")
)

// Region identifies which checksum of a record failed.
type Region uint8

const (
	// RegionLength is the checksum over the length prefix.
	RegionLength Region = iota
	// RegionPayload is the checksum over the payload.
	RegionPayload
)

func (r Region) String() string {
	switch r {
	case RegionLength:
		return "length"
	case RegionPayload:
		return "payload"
	default:
		return "unknown"
	}
}

// ChecksumError reports a checksum mismatch in one region of a record.
type ChecksumError struct {
	Region Region
	// Offset is the stream offset of the record start.
	Offset int64
	Stored uint32
	Actual uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%s checksum mismatch in record at offset %d: stored %#08x, computed %#08x",
		e.Region, e.Offset, e.Stored, e.Actual)
}

// Is makes errors.Is(err, ErrChecksumMismatch) succeed.
func (e *ChecksumError) Is(target error) bool {
	return target == ErrChecksumMismatch
}
