// Package blobstore provides named byte streams for record files kept in
// object storage or a local directory.
//
// A [Store] hands out sequential readers ([Blob]) and writers
// ([WritableBlob]). Writers commit on Close and discard on Abort, so an
// interrupted write never leaves a partial object visible under its name.
//
// # Built-in Implementations
//
//   - [LocalStore]: a directory on the local filesystem, reads are memory mapped
//   - [MemoryStore]: process memory, for tests
//   - s3.Store: Amazon S3 through the AWS SDK v2 upload manager
//   - minio.Store: MinIO and other S3-compatible servers
//
// Implementations are safe for concurrent use. Individual blobs are not.
package blobstore
