package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPClassifier calls an external moderation API over HTTP.
type HTTPClassifier struct {
	Endpoint string
	Client   *http.Client
}

// Make sure we conform to the interface
var _ Classifier = (*HTTPClassifier)(nil)

// NewHTTPClassifier creates a classifier bound to the given endpoint.
func NewHTTPClassifier(endpoint string) *HTTPClassifier {
	return &HTTPClassifier{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Classify posts the content to the moderation API and decodes its verdict.
func (c *HTTPClassifier) Classify(ctx context.Context, content string) (*Verdict, error) {
	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal moderation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build moderation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moderation API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("moderation API error: %d", resp.StatusCode)
	}

	var verdict Verdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, fmt.Errorf("failed to decode moderation verdict: %w", err)
	}

	if verdict.Category == "" {
		verdict.Category = DefaultCategory
	}

	return &verdict, nil
}
