// Package gemini provides Google Gemini integration for recipe generation.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mealforge/mealforge/internal/infrastructure/config"
	"github.com/mealforge/mealforge/internal/ports/outbound"
)

// Client implements the RecipeGenerator interface using the Gemini API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a new Gemini client. The HTTP client carries no timeout:
// the model call is bounded only by the request context.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		apiKey:  cfg.AI.GeminiKey,
		model:   cfg.AI.GeminiModel,
		baseURL: cfg.AI.BaseURL,
		client:  &http.Client{},
		logger:  logger.Named("gemini"),
	}
}

// Gemini API structures

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

// Generate builds the chef prompt, calls the model, and parses the strict
// JSON object out of its reply.
func (c *Client) Generate(ctx context.Context, ingredients []string) (*outbound.GeneratedRecipe, error) {
	prompt := buildPrompt(ingredients)

	raw, err := c.generateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("gemini call failed: %w", err)
	}

	parsed, err := parseRecipeResponse(raw)
	if err != nil {
		c.logger.Error("Failed to parse model response",
			zap.Error(err),
			zap.String("response", raw),
		)
		return nil, err
	}

	return parsed, nil
}

// buildPrompt creates the generation prompt demanding a strict JSON reply
func buildPrompt(ingredients []string) string {
	return fmt.Sprintf(`You are a creative chef. Based on the following ingredients, create a simple and delicious recipe.
Ingredients: %s

Please respond with ONLY a valid JSON object, without any surrounding text or markdown formatting.
The JSON object must have the following structure:
{
  "name": "A creative name for the dish",
  "description": "A short, enticing description of the dish.",
  "ingredientsUsed": ["an", "array", "of", "the", "ingredients", "you", "actually", "used"],
  "steps": ["An array", "of strings", "where each string", "is a single step"]
}`, strings.Join(ingredients, ", "))
}

// generateContent makes the actual API call to Gemini
func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	reqBody := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var genResp generateContentResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response candidates returned")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// parseRecipeResponse strips markdown code fences from the raw model text
// and parses the remaining JSON. Parsing failure is fatal for the request;
// there is no retry and no schema repair.
func parseRecipeResponse(raw string) (*outbound.GeneratedRecipe, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	// Models sometimes wrap the object in stray prose; keep the outermost braces.
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no valid JSON found in model response")
	}

	var parsed outbound.GeneratedRecipe
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	if parsed.Name == "" {
		return nil, fmt.Errorf("model response missing recipe name")
	}

	return &parsed, nil
}
