package record

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func FuzzReader(f *testing.F) {
	f.Add(stream([]byte("seed")))
	f.Add(stream(nil, []byte{1, 2, 3}))
	f.Add([]byte{1, 2, 3})

	f.Fuzz(func(t *testing.T, data []byte) {
		r := NewReader(bytes.NewReader(data), WithMaxRecordSize(1<<20))
		for {
			_, err := r.Next()
			if err == nil {
				continue
			}
			if err != io.EOF &&
				!errors.Is(err, ErrTruncatedRecord) &&
				!errors.Is(err, ErrChecksumMismatch) &&
				!errors.Is(err, ErrRecordTooLarge) {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Offset() > int64(len(data)) {
				t.Fatalf("offset %d past input of %d bytes", r.Offset(), len(data))
			}
			return
		}
	})
}

func FuzzFrameRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("payload"))

	f.Fuzz(func(t *testing.T, payload []byte) {
		got, err := NewReader(bytes.NewReader(Frame(payload))).Next()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("got %x, want %x", got, payload)
		}
	})
}
