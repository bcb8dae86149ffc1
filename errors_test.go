package tfrec

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/tfrec/compress"
	"github.com/hupe1980/tfrec/record"
)

func TestIsCorruption(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"eof", io.EOF, false},
		{"truncated", fmt.Errorf("%w: cut", ErrTruncatedRecord), true},
		{"checksum", &record.ChecksumError{Region: record.RegionPayload}, true},
		{"too large", ErrRecordTooLarge, true},
		{"stream", &compress.StreamError{Type: compress.Gzip, Err: io.ErrUnexpectedEOF}, true},
		{"malformed", ErrMalformedFeatureSet, true},
		{"io", &IOError{Op: "read", Err: errors.New("reset")}, false},
		{"unpack", &UnpackError{Err: errors.New("x")}, false},
		{"closed", ErrReaderClosed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCorruption(tt.err))
		})
	}
}

func TestTranslateReadError(t *testing.T) {
	assert.NoError(t, translateReadError(nil))
	assert.Equal(t, io.EOF, translateReadError(io.EOF))

	trunc := fmt.Errorf("%w: cut", ErrTruncatedRecord)
	assert.Equal(t, trunc, translateReadError(trunc))

	boom := errors.New("boom")
	err := translateReadError(boom)
	var ioErr *IOError
	assert.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "read", ioErr.Op)
	assert.ErrorIs(t, err, boom)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "tfrec: write: disk full", (&IOError{Op: "write", Err: errors.New("disk full")}).Error())
	assert.Equal(t, "tfrec: pack: bad", (&PackError{Err: errors.New("bad")}).Error())
	assert.Equal(t, "tfrec: unpack record 3: bad", (&UnpackError{Record: 3, Err: errors.New("bad")}).Error())
}
