package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultGeminiBase = "https://generativelanguage.googleapis.com/v1beta"

// GeminiService calls the Gemini generateContent REST endpoint with an
// inline image and a response schema, so the model is constrained to emit
// JSON matching the requested shape.
type GeminiService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiService creates a client for the given API key and model name.
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiBase,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (s *GeminiService) WithBaseURL(base string) *GeminiService {
	s.baseURL = base
	return s
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature      float64                `json:"temperature"`
	ResponseMimeType string                 `json:"response_mime_type"`
	ResponseSchema   map[string]interface{} `json:"response_schema,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// AnalyzeImage sends one image plus instructions to the model and returns
// the raw JSON document the model produced. The image data must already be
// base64 encoded without a data-URL prefix.
func (s *GeminiService) AnalyzeImage(ctx context.Context, imageBase64, mimeType, instructions string, schema map[string]interface{}) (json.RawMessage, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &inlineData{MimeType: mimeType, Data: imageBase64}},
				{Text: instructions},
			},
		}},
		GenerationConfig: generationConfig{
			Temperature:      0.2,
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", ErrUpstream, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling model: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: model returned status %d: %s", ErrUpstream, resp.StatusCode, truncate(string(body), 300))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding model envelope: %v", ErrParse, err)
	}

	if parsed.Error != nil {
		return nil, fmt.Errorf("%w: %s (code %d)", ErrUpstream, parsed.Error.Message, parsed.Error.Code)
	}
	if parsed.PromptFeedback != nil && parsed.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: prompt blocked: %s", ErrModelRefusal, parsed.PromptFeedback.BlockReason)
	}
	if len(parsed.Candidates) == 0 {
		return nil, fmt.Errorf("%w: model returned no candidates", ErrModelRefusal)
	}
	cand := parsed.Candidates[0]
	if len(cand.Content.Parts) == 0 || cand.Content.Parts[0].Text == "" {
		if cand.FinishReason != "" && cand.FinishReason != "STOP" {
			return nil, fmt.Errorf("%w: generation stopped: %s", ErrModelRefusal, cand.FinishReason)
		}
		return nil, fmt.Errorf("%w: model returned empty content", ErrModelRefusal)
	}

	text := cand.Content.Parts[0].Text
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("%w: model output is not valid JSON", ErrParse)
	}
	return json.RawMessage(text), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
