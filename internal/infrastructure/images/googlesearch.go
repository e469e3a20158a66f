package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Hosts whose image links are known to break when hotlinked.
var deniedHosts = []string{"fbsbx.com", "googleusercontent.com"}

// GoogleSearch looks up images through the Google Custom Search API.
type GoogleSearch struct {
	apiKey  string
	cx      string
	baseURL string
	client  *http.Client
}

// NewGoogleSearch creates a Google Custom Search image provider. If the key
// or engine id is missing the provider reports "no result" for every query.
func NewGoogleSearch(apiKey, cx, baseURL string) *GoogleSearch {
	return &GoogleSearch{
		apiKey:  apiKey,
		cx:      cx,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Name implements ImageProvider
func (g *GoogleSearch) Name() string { return "google-custom-search" }

type googleSearchResponse struct {
	Items []googleSearchItem `json:"items"`
}

type googleSearchItem struct {
	Link string `json:"link"`
	Mime string `json:"mime"`
}

// Lookup searches for "<dish> food photo" and returns the first result that
// is an image and is not hosted on a denied host. Links are rewritten to
// https.
func (g *GoogleSearch) Lookup(ctx context.Context, dish string) (string, error) {
	if g.apiKey == "" || g.cx == "" {
		return "", nil
	}

	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("cx", g.cx)
	params.Set("q", dish+" food photo")
	params.Set("searchType", "image")
	params.Set("num", "5")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.client.Do(req)
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

	var searchResp googleSearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	for _, item := range searchResp.Items {
		if !strings.HasPrefix(item.Mime, "image/") {
			continue
		}
		if hostDenied(item.Link) {
			continue
		}
		return strings.Replace(item.Link, "http:", "https:", 1), nil
	}

	return "", nil
}

func hostDenied(link string) bool {
	for _, host := range deniedHosts {
		if strings.Contains(link, host) {
			return true
		}
	}
	return false
}
