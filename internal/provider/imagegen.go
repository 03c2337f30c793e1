package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"quickthumb/internal/errors"
)

// ImageGenerator produces one image from a composed prompt plus optional
// base64-encoded reference images (subject and style references). The
// provider is treated as opaque: a response without image data is a
// generation failure regardless of what else it contains.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string, refImages []string) ([]byte, error)
}

type imageGenClient struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewImageGenClient returns an HTTP-backed client for a Gemini-style
// generateContent endpoint.
func NewImageGenClient(baseURL, apiKey, model string) ImageGenerator {
	return &imageGenClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		// Image generation is slow; the timeout is the only enforced bound.
		http: &http.Client{Timeout: 120 * time.Second},
	}
}

type generatePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *generateInline `json:"inlineData,omitempty"`
}

type generateInline struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig struct {
		ResponseModalities []string `json:"responseModalities"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

func (c *imageGenClient) Generate(ctx context.Context, prompt string, refImages []string) ([]byte, error) {
	parts := []generatePart{{Text: prompt}}
	for _, img := range refImages {
		if img == "" {
			continue
		}
		parts = append(parts, generatePart{
			InlineData: &generateInline{MimeType: "image/png", Data: img},
		})
	}

	var reqBody generateRequest
	reqBody.Contents = []generateContent{{Parts: parts}}
	reqBody.GenerationConfig.ResponseModalities = []string{"IMAGE", "TEXT"}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call image provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("image provider status %d: %s", resp.StatusCode, body)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode generate response: %w", err)
	}

	for _, candidate := range result.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			image, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("decode image data: %w", err)
			}
			return image, nil
		}
	}
	return nil, errors.ErrGenerationFailed
}
