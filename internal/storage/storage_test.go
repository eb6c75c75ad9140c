package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves objects from a map and pages listings two keys at a time.
type fakeS3 struct {
	objects map[string]string // "bucket/key" -> body
	keys    []string          // listing order for the one bucket under test
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	start := 0
	if in.ContinuationToken != nil {
		for i, k := range f.keys {
			if k == *in.ContinuationToken {
				start = i
			}
		}
	}
	end := start + 2
	if end > len(f.keys) {
		end = len(f.keys)
	}
	out := &s3.ListObjectsV2Output{}
	for _, k := range f.keys[start:end] {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
		}
	}
	if end < len(f.keys) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(f.keys[end])
	}
	return out, nil
}

func TestParseS3(t *testing.T) {
	bucket, key, err := ParseS3("s3://imports/2024/volunteers.csv")
	require.NoError(t, err)
	assert.Equal(t, "imports", bucket)
	assert.Equal(t, "2024/volunteers.csv", key)

	_, _, err = ParseS3("s3:///nobucket")
	assert.Error(t, err)
}

func TestSources_LocalDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"shifts.csv", "volunteers.CSV", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("id\n1\n"), 0o644))
	}
	src := NewSources(nil)

	files, err := src.List(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "shifts.csv"), filepath.Join(dir, "volunteers.CSV")}, files)

	rc, err := src.Open(context.Background(), files[0])
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n", string(b))
}

func TestSources_LocalFileMissing(t *testing.T) {
	_, err := NewSources(nil).List(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestSources_S3(t *testing.T) {
	fake := &fakeS3{
		objects: map[string]string{"bucket/in/donations.csv": "id,amount\nd1,5\n"},
		keys:    []string{"in/a.csv", "in/b.json", "in/c.csv", "in/donations.csv", "in/e.csv"},
	}
	src := NewSources(fake)
	ctx := context.Background()

	files, err := src.List(ctx, "s3://bucket/in/")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"s3://bucket/in/a.csv",
		"s3://bucket/in/c.csv",
		"s3://bucket/in/donations.csv",
		"s3://bucket/in/e.csv",
	}, files)

	single, err := src.List(ctx, "s3://bucket/in/donations.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"s3://bucket/in/donations.csv"}, single)

	rc, err := src.Open(ctx, "s3://bucket/in/donations.csv")
	require.NoError(t, err)
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "id,amount\nd1,5\n", string(b))

	_, err = src.Open(ctx, "s3://bucket/in/missing.csv")
	assert.Error(t, err)
}

func TestSources_S3WithoutClient(t *testing.T) {
	_, err := NewSources(nil).Open(context.Background(), "s3://bucket/x.csv")
	assert.Error(t, err)
}
