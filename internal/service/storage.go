package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/petmily/petmily-v2/backend/config"
	"github.com/petmily/petmily-v2/backend/internal/types"
)

// objectPutter is the slice of the S3 client the storage service needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// StorageService uploads analysis images to S3 and hands back the stored
// locator plus a public URL.
type StorageService struct {
	client objectPutter
	cfg    *config.S3Config
}

func NewStorageService(cfg *config.S3Config) *StorageService {
	return &StorageService{client: cfg.Client, cfg: cfg}
}

// newStorageServiceWithClient lets tests inject a fake S3 client.
func newStorageServiceWithClient(client objectPutter, cfg *config.S3Config) *StorageService {
	return &StorageService{client: client, cfg: cfg}
}

var extByMime = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/heic": "heic",
	"image/heif": "heif",
}

var folderByKind = map[types.AnalysisKind]string{
	types.KindFood:        "food-images",
	types.KindStool:       "stool-images",
	types.KindFoodPackage: "package-images",
}

// DecodeImage strips an optional data-URL prefix, validates the base64
// payload, and returns the raw bytes together with the effective mime type.
func DecodeImage(imageBase64, mimeType string) ([]byte, string, error) {
	if imageBase64 == "" {
		return nil, "", fmt.Errorf("%w: image data is empty", ErrInvalidInput)
	}

	if strings.HasPrefix(imageBase64, "data:") {
		semi := strings.Index(imageBase64, ";base64,")
		if semi < 0 {
			return nil, "", fmt.Errorf("%w: malformed data URL", ErrInvalidInput)
		}
		if mimeType == "" {
			mimeType = imageBase64[len("data:"):semi]
		}
		imageBase64 = imageBase64[semi+len(";base64,"):]
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	if _, ok := extByMime[mimeType]; !ok {
		return nil, "", fmt.Errorf("%w: unsupported image type %q", ErrInvalidInput, mimeType)
	}

	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid base64 image data: %v", ErrInvalidInput, err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: image data is empty", ErrInvalidInput)
	}
	return data, mimeType, nil
}

// Store uploads the image under a timestamped key in the folder for the
// analysis kind. Keys look like "stool-images/1724980000123-3f9a1c2b.jpg";
// the timestamp plus the random suffix makes collisions practically
// impossible, so no existence check is done.
func (s *StorageService) Store(ctx context.Context, kind types.AnalysisKind, data []byte, mimeType string) (*types.StoredImage, error) {
	folder, ok := folderByKind[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown analysis kind %q", ErrInvalidInput, kind)
	}
	ext := extByMime[mimeType]
	key := fmt.Sprintf("%s/%d-%s.%s", folder, time.Now().UnixMilli(), uuid.New().String()[:8], ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: uploading %s: %v", ErrStorage, key, err)
	}

	return &types.StoredImage{
		Path:      key,
		PublicURL: s.cfg.PublicURL(key),
	}, nil
}
