package service

import (
	"context"
	"encoding/base64"
	"io"
	"regexp"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petmily/petmily-v2/backend/config"
	"github.com/petmily/petmily-v2/backend/internal/types"
)

type fakeS3 struct {
	lastKey         string
	lastContentType string
	lastBody        []byte
	err             error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastKey = *params.Key
	f.lastContentType = *params.ContentType
	f.lastBody, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestDecodeImage(t *testing.T) {
	raw := []byte{0xff, 0xd8, 0xff, 0xe0}
	encoded := base64.StdEncoding.EncodeToString(raw)

	t.Run("plain base64", func(t *testing.T) {
		data, mime, err := DecodeImage(encoded, "image/png")
		require.NoError(t, err)
		assert.Equal(t, raw, data)
		assert.Equal(t, "image/png", mime)
	})

	t.Run("data URL prefix", func(t *testing.T) {
		data, mime, err := DecodeImage("data:image/webp;base64,"+encoded, "")
		require.NoError(t, err)
		assert.Equal(t, raw, data)
		assert.Equal(t, "image/webp", mime)
	})

	t.Run("defaults to jpeg", func(t *testing.T) {
		_, mime, err := DecodeImage(encoded, "")
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", mime)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, _, err := DecodeImage("", "image/jpeg")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, _, err := DecodeImage("not-base64!!", "image/jpeg")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unsupported mime type", func(t *testing.T) {
		_, _, err := DecodeImage(encoded, "application/pdf")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestStoreUploadsWithGeneratedKey(t *testing.T) {
	fake := &fakeS3{}
	svc := newStorageServiceWithClient(fake, &config.S3Config{BucketName: "test-bucket"})

	img, err := svc.Store(context.Background(), types.KindStool, []byte("image-bytes"), "image/jpeg")
	require.NoError(t, err)

	keyPattern := regexp.MustCompile(`^stool-images/\d{13}-[0-9a-f]{8}\.jpg$`)
	assert.Regexp(t, keyPattern, img.Path)
	assert.Equal(t, img.Path, fake.lastKey)
	assert.Equal(t, "image/jpeg", fake.lastContentType)
	assert.Equal(t, []byte("image-bytes"), fake.lastBody)
	assert.Equal(t, "https://test-bucket.s3.amazonaws.com/"+img.Path, img.PublicURL)
}

func TestStoreKeyFolderPerKind(t *testing.T) {
	fake := &fakeS3{}
	svc := newStorageServiceWithClient(fake, &config.S3Config{BucketName: "test-bucket"})

	cases := map[types.AnalysisKind]string{
		types.KindFood:        "food-images/",
		types.KindStool:       "stool-images/",
		types.KindFoodPackage: "package-images/",
	}
	for kind, prefix := range cases {
		img, err := svc.Store(context.Background(), kind, []byte("x"), "image/png")
		require.NoError(t, err)
		assert.Contains(t, img.Path, prefix)
	}
}

func TestStoreUnknownKind(t *testing.T) {
	svc := newStorageServiceWithClient(&fakeS3{}, &config.S3Config{BucketName: "b"})
	_, err := svc.Store(context.Background(), types.AnalysisKind("video"), []byte("x"), "image/png")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStoreUploadFailure(t *testing.T) {
	svc := newStorageServiceWithClient(&fakeS3{err: assert.AnError}, &config.S3Config{BucketName: "b"})
	_, err := svc.Store(context.Background(), types.KindFood, []byte("x"), "image/png")
	assert.ErrorIs(t, err, ErrStorage)
}
