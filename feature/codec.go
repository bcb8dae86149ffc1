package feature

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

const (
	kindSize  = 1
	countSize = 4
	int64Size = 8
	floatSize = 4
)

// EncodedSize returns the number of bytes EncodeFeature produces for f.
func EncodedSize(f Feature) int {
	n := kindSize + countSize
	switch f.kind {
	case KindInt64:
		n += len(f.ints) * int64Size
	case KindFloat:
		n += len(f.floats) * floatSize
	case KindBytes:
		for _, b := range f.bytes {
			n += countSize + len(b)
		}
	}
	return n
}

// EncodeFeature encodes a single feature.
func EncodeFeature(f Feature) ([]byte, error) {
	return AppendFeature(make([]byte, 0, EncodedSize(f)), f)
}

// AppendFeature appends the encoding of f to dst and returns the extended buffer.
//
// Format: [kind:1][count:4][elements...], all little-endian.
func AppendFeature(dst []byte, f Feature) ([]byte, error) {
	if !f.kind.Valid() {
		return dst, malformedFeature("unknown kind %d", f.kind)
	}
	if uint64(f.Len()) > math.MaxUint32 {
		return dst, malformedFeature("%d elements exceed the 32-bit count", f.Len())
	}

	dst = append(dst, byte(f.kind))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(f.Len())) //nolint:gosec // checked above

	switch f.kind {
	case KindInt64:
		for _, v := range f.ints {
			dst = binary.LittleEndian.AppendUint64(dst, uint64(v)) //nolint:gosec // two's complement on purpose
		}
	case KindFloat:
		for _, v := range f.floats {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
		}
	case KindBytes:
		for _, b := range f.bytes {
			if uint64(len(b)) > math.MaxUint32 {
				return dst, malformedFeature("byte string of %d bytes exceeds the 32-bit length", len(b))
			}
			dst = binary.LittleEndian.AppendUint32(dst, uint32(len(b))) //nolint:gosec // checked above
			dst = append(dst, b...)
		}
	}

	return dst, nil
}

// DecodeFeature decodes a feature that occupies the whole of buf.
//
// Byte strings of a decoded bytes list alias buf.
func DecodeFeature(buf []byte) (Feature, error) {
	f, n, err := decodeFeature(buf)
	if err != nil {
		return Feature{}, err
	}
	if n != len(buf) {
		return Feature{}, malformedFeature("%d trailing bytes", len(buf)-n)
	}
	return f, nil
}

// DecodeFeatureKind is DecodeFeature that also requires the decoded kind to be kind.
func DecodeFeatureKind(buf []byte, kind Kind) (Feature, error) {
	f, err := DecodeFeature(buf)
	if err != nil {
		return Feature{}, err
	}
	if f.kind != kind {
		return Feature{}, malformedFeature("got kind %s, want %s", f.kind, kind)
	}
	return f, nil
}

// decodeFeature decodes one feature from the front of buf and returns the
// number of bytes consumed.
func decodeFeature(buf []byte) (Feature, int, error) {
	if len(buf) < kindSize+countSize {
		return Feature{}, 0, malformedFeature("header needs %d bytes, have %d", kindSize+countSize, len(buf))
	}

	kind := Kind(buf[0])
	count := uint64(binary.LittleEndian.Uint32(buf[kindSize:]))
	off := kindSize + countSize
	rest := uint64(len(buf) - off)

	switch kind {
	case KindInt64:
		if count*int64Size > rest {
			return Feature{}, 0, malformedFeature("%d int64 values run past the buffer", count)
		}
		var ints []int64
		if count > 0 {
			ints = make([]int64, count)
			for i := range ints {
				ints[i] = int64(binary.LittleEndian.Uint64(buf[off:])) //nolint:gosec // two's complement on purpose
				off += int64Size
			}
		}
		return Feature{kind: KindInt64, ints: ints}, off, nil

	case KindFloat:
		if count*floatSize > rest {
			return Feature{}, 0, malformedFeature("%d float values run past the buffer", count)
		}
		var floats []float32
		if count > 0 {
			floats = make([]float32, count)
			for i := range floats {
				floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
				off += floatSize
			}
		}
		return Feature{kind: KindFloat, floats: floats}, off, nil

	case KindBytes:
		// Every entry needs at least its length prefix.
		if count*countSize > rest {
			return Feature{}, 0, malformedFeature("%d byte strings run past the buffer", count)
		}
		var list [][]byte
		if count > 0 {
			list = make([][]byte, count)
			for i := range list {
				if len(buf)-off < countSize {
					return Feature{}, 0, malformedFeature("byte string %d: length runs past the buffer", i)
				}
				n := uint64(binary.LittleEndian.Uint32(buf[off:]))
				off += countSize
				if n > uint64(len(buf)-off) {
					return Feature{}, 0, malformedFeature("byte string %d: %d bytes run past the buffer", i, n)
				}
				end := off + int(n) //nolint:gosec // bounded by len(buf)
				list[i] = buf[off:end:end]
				off = end
			}
		}
		return Feature{kind: KindBytes, bytes: list}, off, nil

	default:
		return Feature{}, 0, malformedFeature("unknown kind tag %d", buf[0])
	}
}

// EncodedSetSize returns the number of bytes Encode produces for s.
func EncodedSetSize(s *Set) int {
	n := countSize
	for name, f := range s.All() {
		n += countSize + len(name) + EncodedSize(f)
	}
	return n
}

// Encode encodes s into a payload.
func Encode(s *Set) ([]byte, error) {
	return Append(make([]byte, 0, EncodedSetSize(s)), s)
}

// Append appends the encoding of s to dst and returns the extended buffer.
//
// Format: [fields:4] then per field [nameLen:4][name][feature].
// Fields are written in the set's iteration order.
func Append(dst []byte, s *Set) ([]byte, error) {
	if uint64(s.Len()) > math.MaxUint32 {
		return dst, malformedSet("%d fields exceed the 32-bit count", s.Len())
	}

	dst = binary.LittleEndian.AppendUint32(dst, uint32(s.Len())) //nolint:gosec // checked above

	for name, f := range s.All() {
		if !utf8.ValidString(name) {
			return dst, malformedSet("field name %q is not valid UTF-8", name)
		}
		if uint64(len(name)) > math.MaxUint32 {
			return dst, malformedSet("field name of %d bytes exceeds the 32-bit length", len(name))
		}
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(name))) //nolint:gosec // checked above
		dst = append(dst, name...)

		var err error
		if dst, err = AppendFeature(dst, f); err != nil {
			return dst, fmt.Errorf("%w: field %q: %w", ErrMalformedFeatureSet, name, err)
		}
	}

	return dst, nil
}

// Decode decodes a payload produced by Encode. The field order of the
// returned set matches the encoding order.
//
// Byte strings of decoded bytes lists alias buf.
func Decode(buf []byte) (*Set, error) {
	if len(buf) < countSize {
		return nil, malformedSet("field count needs %d bytes, have %d", countSize, len(buf))
	}

	count := uint64(binary.LittleEndian.Uint32(buf))
	off := countSize

	// Each field needs at least a name length and a feature header.
	if count*(countSize+kindSize+countSize) > uint64(len(buf)-off) {
		return nil, malformedSet("%d fields run past the buffer", count)
	}

	s := NewSet(int(count)) //nolint:gosec // bounded by len(buf)

	for i := uint64(0); i < count; i++ {
		if len(buf)-off < countSize {
			return nil, malformedSet("field %d: name length runs past the buffer", i)
		}
		n := uint64(binary.LittleEndian.Uint32(buf[off:]))
		off += countSize
		if n > uint64(len(buf)-off) {
			return nil, malformedSet("field %d: name of %d bytes runs past the buffer", i, n)
		}
		end := off + int(n) //nolint:gosec // bounded by len(buf)
		name := string(buf[off:end])
		off = end

		if !utf8.ValidString(name) {
			return nil, malformedSet("field %d: name is not valid UTF-8", i)
		}

		f, used, err := decodeFeature(buf[off:])
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrMalformedFeatureSet, name, err)
		}
		off += used

		if !s.add(name, f) {
			return nil, malformedSet("duplicate field %q", name)
		}
	}

	if off != len(buf) {
		return nil, malformedSet("%d trailing bytes", len(buf)-off)
	}

	return s, nil
}
