package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// RemoteEmbedder calls an external sentence-embedding service over HTTP. The
// model itself is an opaque collaborator; this client only moves vectors.
type RemoteEmbedder struct {
	client *resty.Client
}

type embedRequest struct {
	Texts []string `json:"texts"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// NewRemoteEmbedder creates a client for the embedding service at baseURL.
func NewRemoteEmbedder(baseURL string, timeout time.Duration) *RemoteEmbedder {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)
	return &RemoteEmbedder{client: client}
}

// Embed returns the embedding vector for one text.
func (e *RemoteEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds several texts in one round trip, used at corpus load time.
func (e *RemoteEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var result embedResponse
	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(embedRequest{Texts: texts}).
		SetResult(&result).
		Post("/embed")
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("embedding service returned status %d", resp.StatusCode())
	}
	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding service returned %d vectors for %d texts", len(result.Embeddings), len(texts))
	}
	return result.Embeddings, nil
}
