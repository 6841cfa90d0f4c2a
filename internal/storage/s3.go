package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API is the subset of *s3.Client the store uses.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Store struct {
	client  s3API
	bucket  string
	baseURL string
}

// NewS3Client builds an S3 client from the default AWS credential chain
// (environment, shared config, instance role).
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewS3Client: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// NewS3Store stores logos in bucket. baseURL is the public prefix the objects
// are served from (bucket website or CDN); when empty the virtual-hosted
// bucket URL is used.
func NewS3Store(client s3API, bucket, baseURL string) LogoStore {
	if baseURL == "" {
		baseURL = "https://" + bucket + ".s3.amazonaws.com"
	}
	return &s3Store{client: client, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *s3Store) Put(ctx context.Context, logo Upload) (string, error) {
	contentType, ext, err := sniff(logo)
	if err != nil {
		return "", fmt.Errorf("storage.s3Store.Put: %w", err)
	}

	key := objectName(ext)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(logo.Data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("storage.s3Store.Put: %w", err)
	}
	return s.baseURL + "/" + key, nil
}
