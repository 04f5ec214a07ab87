package options

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/Triaksa-Space/cookie-notice/pkg/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the part of the S3 client a Backup needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Backup copies the stored settings record to an S3 bucket.
type Backup struct {
	client ObjectPutter
	bucket string
	prefix string
	now    func() time.Time
}

func NewBackup(client ObjectPutter, bucket, prefix string) *Backup {
	return &Backup{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// Run uploads the raw record under a timestamped key and returns that key.
// ErrNotFound is returned when nothing has been saved yet.
func (b *Backup) Run(ctx context.Context, repo *Repository) (string, error) {
	rec, err := repo.Raw(ctx)
	if err != nil {
		return "", err
	}

	key := path.Join(b.prefix, fmt.Sprintf("%s-v%d-%s.json",
		rec.Name, rec.Version, b.now().UTC().Format("20060102T150405Z")))

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(rec.Value),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload backup to s3://%s/%s: %w", b.bucket, key, err)
	}

	logger.FromContext(ctx).Info("Notice settings backed up",
		logger.OptionName(rec.Name), logger.ObjectKey(key), logger.Int("version", rec.Version))
	return key, nil
}
