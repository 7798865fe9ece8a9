package describe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
)

// Generator produces a short marketing description for a product name. The
// feature is best effort; callers fall back to an empty description on error.
type Generator interface {
	Describe(ctx context.Context, productName string) (string, error)
}

// HTTPGenerator calls an external completion endpoint.
type HTTPGenerator struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewHTTPGenerator(endpoint, apiKey string, timeout time.Duration) *HTTPGenerator {
	return &HTTPGenerator{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func (g *HTTPGenerator) Describe(ctx context.Context, productName string) (string, error) {
	name := strings.TrimSpace(productName)
	if name == "" {
		return "", apperr.InvalidErr("Product name is required.", nil)
	}

	body, err := json.Marshal(generateRequest{
		Prompt: fmt.Sprintf("Write a short, appealing e-commerce description for a product named %q.", name),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", apperr.UnavailableErr("Description service is unreachable.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", apperr.UnavailableErr("Description service is unavailable.", fmt.Errorf("status %d", resp.StatusCode))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperr.ParseErr("Description service returned a malformed response.", err)
	}
	return strings.TrimSpace(out.Text), nil
}

// Noop is used when no endpoint is configured.
type Noop struct{}

func (Noop) Describe(_ context.Context, _ string) (string, error) {
	return "", apperr.UnavailableErr("Description generation is not configured.", nil)
}
