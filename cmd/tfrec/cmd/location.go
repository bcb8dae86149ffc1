package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/tfrec/blobstore"
	miniostore "github.com/hupe1980/tfrec/blobstore/minio"
	s3store "github.com/hupe1980/tfrec/blobstore/s3"
)

const (
	schemeLocal = "file"
	schemeS3    = "s3"
	schemeMinio = "minio"
)

// location names one stream: a blob key inside a store.
type location struct {
	raw      string
	scheme   string
	endpoint string
	bucket   string
	// dir is the directory of a local path.
	dir string
	key string
}

// parseLocation splits raw into its parts without touching any store.
func parseLocation(raw string) (*location, error) {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		if raw == "" {
			return nil, errors.New("empty location")
		}
		return &location{
			raw:    raw,
			scheme: schemeLocal,
			dir:    filepath.Dir(raw),
			key:    filepath.Base(raw),
		}, nil
	}

	loc := &location{raw: raw, scheme: strings.ToLower(scheme)}

	switch loc.scheme {
	case schemeS3:
		bucket, key, _ := strings.Cut(rest, "/")
		loc.bucket, loc.key = bucket, key
	case schemeMinio:
		parts := strings.SplitN(rest, "/", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("location %q: want minio://endpoint/bucket/key", raw)
		}
		loc.endpoint, loc.bucket, loc.key = parts[0], parts[1], parts[2]
		if loc.endpoint == "" {
			return nil, fmt.Errorf("location %q: missing endpoint", raw)
		}
	case schemeLocal:
		loc.dir, loc.key = filepath.Dir(rest), filepath.Base(rest)
		return loc, nil
	default:
		return nil, fmt.Errorf("location %q: unsupported scheme %q", raw, scheme)
	}

	if loc.bucket == "" {
		return nil, fmt.Errorf("location %q: missing bucket", raw)
	}
	if loc.key == "" || strings.HasSuffix(loc.key, "/") {
		return nil, fmt.Errorf("location %q: missing object key", raw)
	}
	return loc, nil
}

// store connects to the store holding loc.
func (loc *location) store(ctx context.Context) (blobstore.Store, error) {
	switch loc.scheme {
	case schemeS3:
		return s3store.New(ctx, loc.bucket)
	case schemeMinio:
		return miniostore.New(loc.endpoint, loc.bucket,
			miniostore.WithCredentials(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY")),
			miniostore.WithSecure(os.Getenv("MINIO_SECURE") == "true"),
		)
	default:
		return blobstore.NewLocalStore(loc.dir), nil
	}
}

func (loc *location) String() string {
	return loc.raw
}
