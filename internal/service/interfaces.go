package service

import (
	"context"
	"encoding/json"

	"github.com/petmily/petmily-v2/backend/internal/types"
)

// VisionClient invokes the generative model with one image and a response
// schema and returns the raw JSON document it produced.
type VisionClient interface {
	AnalyzeImage(ctx context.Context, imageBase64, mimeType, instructions string, schema map[string]interface{}) (json.RawMessage, error)
}

// ImageStore archives one uploaded photo and returns its locator.
type ImageStore interface {
	Store(ctx context.Context, kind types.AnalysisKind, data []byte, mimeType string) (*types.StoredImage, error)
}

// RecordStore persists one completed analysis as a permanent row.
type RecordStore interface {
	Save(ctx context.Context, result *types.AnalysisResult) error
}

// DraftStore holds completed analyses awaiting caller confirmation.
type DraftStore interface {
	Save(ctx context.Context, result *types.AnalysisResult) error
	Get(ctx context.Context, id string) (*types.AnalysisResult, error)
	Delete(ctx context.Context, id string) error
}

var (
	_ VisionClient = (*GeminiService)(nil)
	_ ImageStore   = (*StorageService)(nil)
	_ RecordStore  = (*RecordService)(nil)
	_ DraftStore   = (*DraftService)(nil)
)
