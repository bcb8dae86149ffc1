package feature

import (
	"bytes"
	"math"
	"slices"
)

// Kind identifies which list a Feature holds. The numeric values are the
// tag bytes written on the wire.
type Kind uint8

const (
	// KindInt64 is a list of 64-bit signed integers.
	KindInt64 Kind = 0
	// KindFloat is a list of 32-bit IEEE-754 floats.
	KindFloat Kind = 1
	// KindBytes is a list of opaque byte strings.
	KindBytes Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindInt64:
		return "int64"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k <= KindBytes
}

// Feature is a tagged union holding exactly one of an int64 list, a float
// list or a bytes list. The list may be empty, the kind is always set.
//
// The zero value is an empty int64 list.
type Feature struct {
	kind   Kind
	ints   []int64
	floats []float32
	bytes  [][]byte
}

// Int64List returns a Feature holding the given integers.
func Int64List(values ...int64) Feature {
	return Feature{kind: KindInt64, ints: values}
}

// FloatList returns a Feature holding the given floats.
func FloatList(values ...float32) Feature {
	return Feature{kind: KindFloat, floats: values}
}

// BytesList returns a Feature holding the given byte strings.
func BytesList(values ...[]byte) Feature {
	return Feature{kind: KindBytes, bytes: values}
}

// StringList is a convenience wrapper around BytesList.
func StringList(values ...string) Feature {
	b := make([][]byte, len(values))
	for i, v := range values {
		b[i] = []byte(v)
	}
	return BytesList(b...)
}

// Kind returns the kind of list held by f.
func (f Feature) Kind() Kind {
	return f.kind
}

// Len returns the number of elements in the list.
func (f Feature) Len() int {
	switch f.kind {
	case KindInt64:
		return len(f.ints)
	case KindFloat:
		return len(f.floats)
	case KindBytes:
		return len(f.bytes)
	default:
		return 0
	}
}

// Int64s returns the integer list. ok is false if f holds another kind.
func (f Feature) Int64s() (values []int64, ok bool) {
	return f.ints, f.kind == KindInt64
}

// Floats returns the float list. ok is false if f holds another kind.
func (f Feature) Floats() (values []float32, ok bool) {
	return f.floats, f.kind == KindFloat
}

// Bytes returns the bytes list. ok is false if f holds another kind.
func (f Feature) Bytes() (values [][]byte, ok bool) {
	return f.bytes, f.kind == KindBytes
}

// Equal reports whether f and other have the same kind and elements.
// Floats are compared bit for bit, so NaN payloads and signed zeros count.
func (f Feature) Equal(other Feature) bool {
	if f.kind != other.kind {
		return false
	}

	switch f.kind {
	case KindInt64:
		return slices.Equal(f.ints, other.ints)
	case KindFloat:
		return slices.EqualFunc(f.floats, other.floats, func(a, b float32) bool {
			return math.Float32bits(a) == math.Float32bits(b)
		})
	case KindBytes:
		return slices.EqualFunc(f.bytes, other.bytes, bytes.Equal)
	default:
		return false
	}
}
