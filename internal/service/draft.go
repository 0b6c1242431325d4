package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petmily/petmily-v2/backend/internal/types"
)

const draftTTL = 24 * time.Hour

// DraftService keeps completed analyses in redis until the caller confirms
// or discards them. Unconfirmed drafts expire on their own.
type DraftService struct {
	client *redis.Client
}

func NewDraftService(client *redis.Client) *DraftService {
	return &DraftService{client: client}
}

func draftKey(id string) string {
	return fmt.Sprintf("analysis:draft:%s", id)
}

// Save stores the full analysis result under its id with a 24h TTL.
func (s *DraftService) Save(ctx context.Context, result *types.AnalysisResult) error {
	payload, err := json.Marshal(draftEnvelope{Result: result, Raw: result.RawResponse})
	if err != nil {
		return fmt.Errorf("marshaling draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(result.ID), payload, draftTTL).Err(); err != nil {
		return fmt.Errorf("saving draft %s: %w", result.ID, err)
	}
	return nil
}

// Get retrieves a draft by id. A missing or expired draft is ErrDraftNotFound.
func (s *DraftService) Get(ctx context.Context, id string) (*types.AnalysisResult, error) {
	payload, err := s.client.Get(ctx, draftKey(id)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading draft %s: %w", id, err)
	}

	var env draftEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decoding draft %s: %w", id, err)
	}
	env.Result.RawResponse = env.Raw
	return env.Result, nil
}

// Delete removes a draft. Deleting an absent draft is ErrDraftNotFound.
func (s *DraftService) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, draftKey(id)).Result()
	if err != nil {
		return fmt.Errorf("deleting draft %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrDraftNotFound, id)
	}
	return nil
}

// draftEnvelope carries the raw model response alongside the result, since
// AnalysisResult hides it from its own JSON form.
type draftEnvelope struct {
	Result *types.AnalysisResult `json:"result"`
	Raw    json.RawMessage       `json:"raw,omitempty"`
}
