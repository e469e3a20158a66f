package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Unsplash looks up stock photos through the Unsplash search API.
type Unsplash struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewUnsplash creates an Unsplash image provider. Without an API key the
// provider reports "no result" for every query.
func NewUnsplash(apiKey, baseURL string) *Unsplash {
	return &Unsplash{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Name implements ImageProvider
func (u *Unsplash) Name() string { return "unsplash" }

type unsplashSearchResponse struct {
	Results []unsplashPhoto `json:"results"`
}

type unsplashPhoto struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
}

// Lookup searches for "<dish> food photo" and returns the regular-size URL
// of the first result.
func (u *Unsplash) Lookup(ctx context.Context, dish string) (string, error) {
	if u.apiKey == "" {
		return "", nil
	}

	params := url.Values{}
	params.Set("query", dish+" food photo")
	params.Set("per_page", "1")
	params.Set("client_id", u.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search API error (status %d): %s", resp.StatusCode, string(body))
	}

	var searchResp unsplashSearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(searchResp.Results) == 0 {
		return "", nil
	}
	return searchResp.Results[0].URLs.Regular, nil
}
