// Package feature implements the typed key-value payload stored in every record.
//
// A [Feature] is one of three list kinds: int64, float32 or byte strings.
// A [Set] is an ordered mapping from field name to Feature and represents
// one sample. The package encodes both into a compact, self-describing
// little-endian layout:
//
//	Feature: [kind:1][count:4][elements...]
//	  int64:  count * 8 bytes (two's complement)
//	  float:  count * 4 bytes (IEEE-754 binary32)
//	  bytes:  count * ([len:4][raw bytes])
//
//	Set:     [fields:4] fields * ([nameLen:4][name:UTF-8][Feature])
//
// Decoding is strict: unknown kind tags, counts or lengths that run past the
// buffer, trailing bytes and duplicate field names are all rejected.
//
// # Usage
//
//	var s feature.Set
//	s.Set("label", feature.Int64List(1))
//	s.Set("pixels", feature.FloatList(0.1, 0.2, 0.3))
//	s.Set("id", feature.BytesList([]byte("img-42")))
//
//	payload, err := feature.Encode(&s)
//	...
//	decoded, err := feature.Decode(payload)
//	label, err := decoded.Int64s("label")
package feature
