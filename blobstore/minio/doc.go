// Package minio stores record files on MinIO or any S3-compatible server
// through the MinIO Go client.
//
//	store, err := minio.New("localhost:9000", "datasets", minio.WithCredentials(key, secret))
//	r, err := tfrec.OpenBlob(ctx, store, "train.tfrecord", unpack)
//
// Uploads stream with an unknown size, so the client buffers one part at a
// time and uses a multipart upload for large files.
package minio
