package compress

import (
	"fmt"
	"strings"
)

// Type identifies a stream compression envelope.
type Type uint8

const (
	// None writes records without an envelope.
	None Type = iota
	// Zlib wraps the stream in RFC 1950 framing.
	Zlib
	// Gzip wraps the stream in RFC 1952 framing.
	Gzip
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Zlib:
		return "zlib"
	case Gzip:
		return "gzip"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Valid reports whether t is a supported type.
func (t Type) Valid() bool {
	return t <= Gzip
}

// ParseType parses a compression name. The empty string means none.
// Matching is case-insensitive.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None, nil
	case "zlib":
		return Zlib, nil
	case "gzip":
		return Gzip, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnsupportedCompression, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
