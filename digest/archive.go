package digest

import (
	"context"
	"strings"

	"intelhub/common"
	"intelhub/types"
)

// Archiver mirrors rendered digest documents to S3. It is optional; a nil
// Archiver means archiving is disabled.
type Archiver struct {
	s3     *common.S3
	bucket string
	prefix string
}

// NewArchiver returns nil when no bucket is configured, which callers treat
// as "skip archiving".
func NewArchiver(ctx context.Context, bucket, region, prefix string, usePathStyle bool) (*Archiver, error) {
	if bucket == "" {
		return nil, nil
	}

	s3c, err := common.NewS3(ctx, common.S3Config{
		Region:       region,
		UsePathStyle: usePathStyle,
	})
	if err != nil {
		return nil, err
	}

	if prefix != "" {
		prefix = strings.Trim(prefix, "/") + "/"
	}
	return &Archiver{s3: s3c, bucket: bucket, prefix: prefix}, nil
}

// Archive writes the digest HTML under digests/<docID>.html.
func (a *Archiver) Archive(ctx context.Context, d types.Digest) error {
	key := a.prefix + "digests/" + d.ID + ".html"
	return a.s3.Put(ctx, a.bucket, key, strings.NewReader(d.HTML), "text/html; charset=utf-8")
}
