package minio

import (
	"context"
	"errors"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/tfrec/blobstore"
)

// Store implements blobstore.Store on a MinIO bucket.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

var _ blobstore.Store = (*Store)(nil)

// Options configures New.
type Options struct {
	AccessKey string
	SecretKey string
	Secure    bool
	Region    string
	Prefix    string
}

// Option configures New.
type Option func(*Options)

// WithCredentials sets static V4 credentials.
func WithCredentials(accessKey, secretKey string) Option {
	return func(o *Options) {
		o.AccessKey = accessKey
		o.SecretKey = secretKey
	}
}

// WithSecure enables HTTPS.
func WithSecure(secure bool) Option {
	return func(o *Options) { o.Secure = secure }
}

// WithRegion sets the bucket region.
func WithRegion(region string) Option {
	return func(o *Options) { o.Region = region }
}

// WithPrefix prepends prefix to every object key.
func WithPrefix(prefix string) Option {
	return func(o *Options) { o.Prefix = prefix }
}

// New connects to endpoint and returns a Store for bucket.
func New(endpoint, bucket string, optFns ...Option) (*Store, error) {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.Secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}

	return NewStore(client, bucket, opts.Prefix), nil
}

// NewStore creates a Store using client. rootPrefix is prepended to every key.
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens a blob for streaming reads.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, mapError(err)
	}

	// GetObject is lazy; Stat performs the request and surfaces missing keys.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, mapError(err)
	}

	return &blob{Object: obj, size: info.Size}, nil
}

// Create starts a streaming upload.
func (s *Store) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	key := s.key(name)
	return blobstore.PipeUpload(ctx, func(ctx context.Context, body io.Reader) error {
		_, err := s.client.PutObject(ctx, s.bucket, key, body, -1, minio.PutObjectOptions{
			ContentType: "application/octet-stream",
		})
		return err
	}), nil
}

// Delete removes a blob.
func (s *Store) Delete(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.key(name), minio.RemoveObjectOptions{})
	if err != nil && !errors.Is(mapError(err), blobstore.ErrNotFound) {
		return err
	}
	return nil
}

// List returns the sorted names below the store prefix that start with prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := s.key(prefix)
	if strings.HasSuffix(prefix, "/") {
		fullPrefix += "/"
	}

	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    fullPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		name := strings.TrimPrefix(obj.Key, s.prefix)
		name = strings.TrimPrefix(name, "/")
		if name != "" {
			names = append(names, name)
		}
	}

	slices.Sort(names)
	return names, nil
}

func mapError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return blobstore.ErrNotFound
	default:
		return err
	}
}

type blob struct {
	*minio.Object
	size int64
}

func (b *blob) Size() int64 { return b.size }
