package s3

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/tfrec/blobstore"
)

// UploadConfig configures the upload manager.
type UploadConfig struct {
	// PartSize is the multipart part size. Default: 8 MiB.
	PartSize int64
	// Concurrency is the number of parts uploaded in parallel. Default: 5.
	Concurrency int
	// EnableChecksum asks S3 to verify parts with CRC32C. Default: true.
	EnableChecksum bool
}

// DefaultUploadConfig returns the upload settings used by New and NewStore.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:       8 * 1024 * 1024,
		Concurrency:    5,
		EnableChecksum: true,
	}
}

func newUploader(client Client, cfg UploadConfig) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		if cfg.PartSize > 0 {
			u.PartSize = cfg.PartSize
		}
		if cfg.Concurrency > 0 {
			u.Concurrency = cfg.Concurrency
		}
		// Failed multipart uploads are aborted.
		u.LeavePartsOnError = false
	})
}

// startUpload streams the blob body into the upload manager. A failed body
// makes the manager abort a multipart upload or skip the PutObject.
func startUpload(ctx context.Context, uploader *manager.Uploader, bucket, key string, checksum bool) blobstore.WritableBlob {
	return blobstore.PipeUpload(ctx, func(ctx context.Context, body io.Reader) error {
		input := &s3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
			Body:   body,
		}
		if checksum {
			input.ChecksumAlgorithm = types.ChecksumAlgorithmCrc32c
		}

		_, err := uploader.Upload(ctx, input)
		return err
	})
}
