// Package storage locates and opens CSV sources for the import command.
// A location is either a filesystem path or an s3://bucket/key URL; a
// directory or key prefix expands to every .csv object beneath it.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3://"

// S3API is the subset of the S3 client used here.
type S3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Sources resolves and opens CSV locations. The S3 client is only needed for
// s3:// locations.
type Sources struct {
	s3 S3API
}

// NewSources returns a resolver; s3Client may be nil when only local paths
// are used.
func NewSources(s3Client S3API) *Sources {
	return &Sources{s3: s3Client}
}

// NewS3Client loads the default AWS credential chain, optionally pinned to a
// shared-config profile.
func NewS3Client(ctx context.Context, region, profile string) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// IsS3 reports whether location is an s3:// URL.
func IsS3(location string) bool {
	return strings.HasPrefix(location, s3Scheme)
}

// ParseS3 splits s3://bucket/key into bucket and key.
func ParseS3(location string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(location, s3Scheme)
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("invalid S3 location %q", location)
	}
	return bucket, key, nil
}

// List expands location to the CSV files it names, sorted. A single file or
// object is returned as is.
func (s *Sources) List(ctx context.Context, location string) ([]string, error) {
	if IsS3(location) {
		return s.listS3(ctx, location)
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", location, err)
	}
	if !info.IsDir() {
		return []string{location}, nil
	}
	entries, err := os.ReadDir(location)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", location, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			out = append(out, filepath.Join(location, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *Sources) listS3(ctx context.Context, location string) ([]string, error) {
	bucket, key, err := ParseS3(location)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(strings.ToLower(key), ".csv") {
		return []string{location}, nil
	}
	if s.s3 == nil {
		return nil, fmt.Errorf("no S3 client configured for %s", location)
	}

	var out []string
	paginator := s3.NewListObjectsV2Paginator(s.s3, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(key),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing S3 objects: %w", err)
		}
		for _, obj := range page.Contents {
			k := aws.ToString(obj.Key)
			if strings.HasSuffix(strings.ToLower(k), ".csv") {
				out = append(out, s3Scheme+bucket+"/"+k)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// Open returns a reader over one file or object. The caller closes it.
func (s *Sources) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !IsS3(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", location, err)
		}
		return f, nil
	}

	bucket, key, err := ParseS3(location)
	if err != nil {
		return nil, err
	}
	if s.s3 == nil {
		return nil, fmt.Errorf("no S3 client configured for %s", location)
	}
	out, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("getting object from S3: %w", err)
	}
	return out.Body, nil
}
