package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-booking/internal/config"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		b, _ := io.ReadAll(in.Body)
		f.body = string(b)
	}
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Uploader_Upload(t *testing.T) {
	fake := &fakePutter{}
	u := NewS3UploaderWithClient(fake, config.S3Config{Bucket: "salons", Region: "eu-west-3"})

	url, err := u.Upload(context.Background(), "salons/1/abc.webp", "image/webp", strings.NewReader("data"))
	require.NoError(t, err)

	assert.Equal(t, "https://salons.s3.eu-west-3.amazonaws.com/salons/1/abc.webp", url)
	assert.Equal(t, "salons", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "image/webp", aws.ToString(fake.input.ContentType))
	assert.Equal(t, "data", fake.body)
}

func TestS3Uploader_PublicURL(t *testing.T) {
	u := NewS3UploaderWithClient(&fakePutter{}, config.S3Config{
		Bucket: "b", Region: "r", Endpoint: "http://localhost:9000/",
	})
	url, err := u.Upload(context.Background(), "k.webp", "image/webp", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/b/k.webp", url)

	u = NewS3UploaderWithClient(&fakePutter{}, config.S3Config{Bucket: "b", PublicURL: "https://cdn.example/"})
	url, err = u.Upload(context.Background(), "k.webp", "image/webp", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/k.webp", url)
}

func TestS3Uploader_Errors(t *testing.T) {
	u := NewS3UploaderWithClient(&fakePutter{err: errors.New("access denied")}, config.S3Config{Bucket: "b", Region: "r"})

	_, err := u.Upload(context.Background(), "k", "image/webp", strings.NewReader(""))
	assert.ErrorContains(t, err, "access denied")

	_, err = u.Upload(context.Background(), "", "image/webp", strings.NewReader(""))
	assert.Error(t, err)
}

func TestNewS3Uploader_BuildsClient(t *testing.T) {
	u := NewS3Uploader(config.S3Config{
		Bucket: "b", Region: "us-east-1", AccessKey: "AK", SecretKey: "SK", Endpoint: "http://minio:9000",
	})
	require.NotNil(t, u.client)
	assert.Equal(t, "http://minio:9000/b", u.publicURL)
}
