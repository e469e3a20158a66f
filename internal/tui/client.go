// Package tui implements the terminal client: a Model-View-Update state
// store over the MealForge REST API.
package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mealforge/mealforge/internal/domain/history"
	"github.com/mealforge/mealforge/internal/domain/recipe"
)

// Client is a typed REST client for the MealForge API. Token is empty
// for guest sessions.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		// Generation waits on the model upstream, so the client gives
		// requests generous room.
		http: &http.Client{Timeout: 5 * time.Minute},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Authenticated reports whether the client carries a token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error.Message != "" {
		return fmt.Errorf("%s (%d)", body.Error.Message, resp.StatusCode)
	}
	return fmt.Errorf("request failed with status %d", resp.StatusCode)
}

type tokenPayload struct {
	Token string `json:"token"`
}

func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var out tokenPayload
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	return out.Token, err
}

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out tokenPayload
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	return out.Token, err
}

func (c *Client) GenerateRecipe(ctx context.Context, ingredients []string) (*recipe.Recipe, error) {
	var out recipe.Recipe
	err := c.do(ctx, http.MethodPost, "/api/recipes/generate", map[string][]string{
		"ingredients": ingredients,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetRecipe(ctx context.Context, id string) (*recipe.Recipe, error) {
	var out recipe.Recipe
	if err := c.do(ctx, http.MethodGet, "/api/recipes/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RateRecipe(ctx context.Context, id string, rating int) (*recipe.Recipe, error) {
	var out recipe.Recipe
	err := c.do(ctx, http.MethodPut, "/api/recipes/"+id, map[string]int{"rating": rating}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListHistory(ctx context.Context) ([]history.Item, error) {
	var out []history.Item
	if err := c.do(ctx, http.MethodGet, "/api/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetHistoryItem(ctx context.Context, id string) (*history.Item, error) {
	var out history.Item
	if err := c.do(ctx, http.MethodGet, "/api/history/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveHistoryItem(ctx context.Context, id string, upd history.Update) (*history.Item, error) {
	var out history.Item
	if err := c.do(ctx, http.MethodPut, "/api/history/"+id, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteHistoryItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/history/"+id, nil, nil)
}
