package dashscope

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"helpdesk-rag-be/pkg/embedding"
)

const (
	defaultBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	defaultModel   = "text-embedding-v3"
)

// Provider calls the DashScope OpenAI-compatible embeddings endpoint.
type Provider struct {
	baseURL    string
	apiKey     string
	model      string
	dimensions int
	client     *http.Client
}

var _ embedding.EmbeddingProvider = &Provider{}

func NewProvider(baseURL, apiKey, model string, dimensions int) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Provider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		dimensions: dimensions,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type embeddingRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody := embeddingRequest{
		Model:      p.model,
		Input:      []string{text},
		Dimensions: p.dimensions,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/embeddings", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", embedding.ErrEmbeddingUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", embedding.ErrEmbeddingUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", embedding.ErrEmbeddingUnavailable, resp.StatusCode, string(bodyBytes))
	}

	var apiResp embeddingResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", embedding.ErrEmbeddingUnavailable, err)
	}
	if apiResp.Error != nil {
		return nil, fmt.Errorf("%w: %s", embedding.ErrEmbeddingUnavailable, apiResp.Error.Message)
	}
	if len(apiResp.Data) == 0 {
		return nil, fmt.Errorf("%w: empty embedding response", embedding.ErrEmbeddingUnavailable)
	}

	vec := apiResp.Data[0].Embedding
	if p.dimensions > 0 && len(vec) != p.dimensions {
		return nil, fmt.Errorf("%w: expected %d dimensions, got %d", embedding.ErrEmbeddingUnavailable, p.dimensions, len(vec))
	}
	return vec, nil
}

func (p *Provider) Dimensions() int {
	return p.dimensions
}
