package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/petmily/petmily-v2/backend/internal/types"
)

// AnalyzeRequest is one pipeline invocation: the photo, optional caller
// hints, and whether the result should be inserted immediately instead of
// parked as a confirmable draft.
type AnalyzeRequest struct {
	ImageBase64 string
	MimeType    string
	Hints       types.AnalysisHints
	Persist     bool
}

// AnalysisService runs the full pipeline for one photo: archive the image,
// compile the prompt, invoke the model, apply the rule engine, normalize,
// then persist or draft. Each run is stateless and independent.
type AnalysisService struct {
	vision  VisionClient
	images  ImageStore
	records RecordStore
	drafts  DraftStore
}

func NewAnalysisService(vision VisionClient, images ImageStore, records RecordStore, drafts DraftStore) *AnalysisService {
	return &AnalysisService{vision: vision, images: images, records: records, drafts: drafts}
}

// AnalyzeFood runs the food photo pipeline.
func (s *AnalysisService) AnalyzeFood(ctx context.Context, req AnalyzeRequest) (*types.AnalysisResult, error) {
	return s.run(ctx, types.KindFood, req)
}

// AnalyzeStool runs the stool photo pipeline.
func (s *AnalysisService) AnalyzeStool(ctx context.Context, req AnalyzeRequest) (*types.AnalysisResult, error) {
	return s.run(ctx, types.KindStool, req)
}

// AnalyzeFoodPackage runs the package photo pipeline.
func (s *AnalysisService) AnalyzeFoodPackage(ctx context.Context, req AnalyzeRequest) (*types.AnalysisResult, error) {
	return s.run(ctx, types.KindFoodPackage, req)
}

func (s *AnalysisService) run(ctx context.Context, kind types.AnalysisKind, req AnalyzeRequest) (*types.AnalysisResult, error) {
	data, mimeType, err := DecodeImage(req.ImageBase64, req.MimeType)
	if err != nil {
		return nil, err
	}

	prompt, err := CompilePrompt(kind, req.Hints)
	if err != nil {
		return nil, err
	}

	// The photo is archived before the model call. A later failure leaves
	// the blob orphaned; nothing compensates for it.
	image, err := s.images.Store(ctx, kind, data, mimeType)
	if err != nil {
		return nil, err
	}

	raw, err := s.vision.AnalyzeImage(ctx, base64.StdEncoding.EncodeToString(data), mimeType, prompt.Instructions, prompt.Schema)
	if err != nil {
		return nil, err
	}

	result := &types.AnalysisResult{
		ID:          uuid.New().String(),
		Kind:        kind,
		Image:       image,
		RawResponse: raw,
	}

	switch kind {
	case types.KindFood:
		result.Food, err = NormalizeFood(raw, req.Hints)
	case types.KindStool:
		result.Stool, err = NormalizeStool(raw)
		if err == nil && req.Hints.AnimalType != "" {
			result.Stool.AnimalType = req.Hints.AnimalType
		}
	case types.KindFoodPackage:
		result.Package, err = NormalizePackage(raw)
	}
	if err != nil {
		return nil, err
	}

	if req.Persist {
		if err := s.records.Save(ctx, result); err != nil {
			return nil, err
		}
		result.Persisted = true
		return result, nil
	}

	if err := s.drafts.Save(ctx, result); err != nil {
		return nil, fmt.Errorf("%w: drafting analysis %s: %v", ErrDatabase, result.ID, err)
	}
	return result, nil
}

// Confirm promotes a drafted analysis to a permanent row and removes the
// draft. The promoted row keeps the draft's id.
func (s *AnalysisService) Confirm(ctx context.Context, id string) (*types.AnalysisResult, error) {
	result, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.records.Save(ctx, result); err != nil {
		return nil, err
	}
	if err := s.drafts.Delete(ctx, id); err != nil {
		// the row is in; a lingering draft just expires on its own
		log.Printf("[analysis] draft %s cleanup after confirm: %v", id, err)
	}
	result.Persisted = true
	return result, nil
}

// Discard drops a drafted analysis without persisting it.
func (s *AnalysisService) Discard(ctx context.Context, id string) error {
	return s.drafts.Delete(ctx, id)
}
