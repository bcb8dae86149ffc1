// Package s3 stores record files in Amazon S3.
//
// Reads stream a single GetObject body. Writes stream through the AWS SDK v2
// upload manager, which switches to a multipart upload once the data
// exceeds one part, and ask S3 to verify each part with CRC32C.
//
//	store, err := s3.New(ctx, "my-bucket", s3.WithPrefix("datasets/"))
//	w, err := tfrec.CreateBlob(ctx, store, "train.tfrecord", pack)
package s3
