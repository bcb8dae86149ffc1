// Package tfrec reads and writes TFRecord-style files: sequences of
// structured samples stored as checksummed records in a flat byte stream.
//
// # Quick Start
//
// A sample type is bridged to the on-disk feature sets by a pack function
// and an unpack function:
//
//	type Example struct {
//	    Label int64
//	    Image []byte
//	}
//
//	pack := func(e Example) (*feature.Set, error) {
//	    s := feature.NewSet(2)
//	    s.Set("label", feature.Int64List(e.Label))
//	    s.Set("image", feature.BytesList(e.Image))
//	    return s, nil
//	}
//
//	w, _ := tfrec.Create("train.tfrecord.gz", pack, tfrec.WithCompression(compress.Gzip))
//	defer w.Close()
//	_ = w.WriteSample(Example{Label: 3, Image: png})
//
//	r, _ := tfrec.Open("train.tfrecord.gz", unpack, tfrec.WithCompression(compress.Gzip))
//	defer r.Close()
//	for e, err := range r.All() {
//	    ...
//	}
//
// # Layers
//
//   - package feature encodes typed value lists and ordered feature sets
//   - package record frames payloads with masked CRC32C checksums
//   - package compress wraps the stream in zlib or gzip
//   - this package ties them into Writer and Reader
//
// # Errors
//
// Every failure is typed and matchable with errors.Is: corruption surfaces
// as ErrTruncatedRecord, ErrChecksumMismatch, ErrCompressionStream or
// ErrMalformedFeatureSet; sink and source failures as ErrIO; caller
// conversion failures as ErrPack and ErrUnpack. A reader never skips a bad
// record, and the first error ends the stream.
//
// # Storage
//
// Writers accept any io.Writer and readers any io.Reader. Create and Open
// work on local files, and CreateBlob and OpenBlob on a blobstore.Store such
// as S3 or MinIO.
package tfrec
