// Package client talks to the category endpoints of a running bookmark API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"bookmark/internal/models"
)

const categoriesPath = "/api/categories"

// CategoryClient fetches and creates categories and keeps the last fetched
// list of names. It does not retry.
type CategoryClient struct {
	baseURL    string
	httpClient *http.Client

	mu         sync.Mutex
	categories []string
}

func NewCategoryClient(baseURL string, httpClient *http.Client) *CategoryClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &CategoryClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		categories: []string{},
	}
}

// Categories returns a copy of the cached names.
func (c *CategoryClient) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.categories)
}

// FetchCategories replaces the cached names with the server's list. On
// failure the cache is left as it was.
func (c *CategoryClient) FetchCategories(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+categoriesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	var body models.CategoriesResponse
	if err := c.do(req, &body); err != nil {
		log.Error().Err(err).Str("url", req.URL.String()).Msg("Error fetching categories")
		return nil, err
	}
	if body.Categories == nil {
		body.Categories = []string{}
	}

	c.mu.Lock()
	c.categories = slices.Clone(body.Categories)
	c.mu.Unlock()

	log.Debug().Int("count", len(body.Categories)).Msg("Fetched categories")
	return body.Categories, nil
}

// CreateCategory asks the server to create a category, optionally in the
// context of another one. The new name is merged into the cached list.
func (c *CategoryClient) CreateCategory(ctx context.Context, name, contextSlug string) (*models.Category, error) {
	payload, err := json.Marshal(models.CreateCategoryRequest{Name: name, ContextSlug: contextSlug})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+categoriesPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var created models.Category
	if err := c.do(req, &created); err != nil {
		log.Error().Err(err).Str("name", name).Msg("Error creating category")
		return nil, err
	}

	c.mu.Lock()
	if !slices.Contains(c.categories, created.Name) {
		c.categories = append(c.categories, created.Name)
		slices.Sort(c.categories)
	}
	c.mu.Unlock()

	log.Info().Str("name", created.Name).Str("slug", created.Slug).Msg("Category created")
	return &created, nil
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

func (c *CategoryClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(data, &apiErr)
		return &StatusError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
