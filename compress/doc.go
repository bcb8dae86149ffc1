// Package compress provides the stream envelopes a record stream can be
// wrapped in: none, zlib and gzip.
//
// The set of types is closed. [ParseType] and [CreateCodec] reject anything
// else with [ErrUnsupportedCompression], so a bad configuration fails when a
// writer or reader is built and never in the middle of a stream.
//
// zlib and gzip are backed by github.com/klauspost/compress, which is wire
// compatible with the standard library packages.
//
// Streaming decompressors created by [Codec.NewReader] are lazy: nothing is
// read from the source until the first Read, and a source holding zero bytes
// is an empty stream rather than a malformed one. Any failure reported by the
// decompressor itself is wrapped in a [*StreamError].
package compress
