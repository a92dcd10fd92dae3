package wikipedia

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"radiohost/core"

	"github.com/bytedance/sonic"
)

// Config holds configuration for the Wikipedia client
type Config struct {
	BaseURL   string `json:"base_url"`
	Language  string `json:"language"`
	UserAgent string `json:"user_agent"`

	// TimeoutMs is the request timeout in milliseconds, so settings.json
	// carries a plain integer.
	TimeoutMs int `json:"timeout_ms"`
}

// Client fetches plain-text article extracts through the MediaWiki API.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *core.Logger
}

// LookupResult is the outcome of a single title lookup.
type LookupResult struct {
	Exists bool
	Text   string
}

// NewClient creates a new Wikipedia client with the provided config
func NewClient(config Config, logger *core.Logger) *Client {
	if config.Language == "" {
		config.Language = "en"
	}
	if config.BaseURL == "" {
		config.BaseURL = fmt.Sprintf("https://%s.wikipedia.org/w/api.php", config.Language)
	}
	if config.UserAgent == "" {
		config.UserAgent = "SyntheticRadioHost/1.0"
	}
	if config.TimeoutMs == 0 {
		config.TimeoutMs = 15_000
	}
	if logger == nil {
		logger = core.GetLogger()
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: time.Duration(config.TimeoutMs) * time.Millisecond},
		logger:     logger,
	}
}

// apiResponse mirrors the MediaWiki query/extracts payload (formatversion=2)
type apiResponse struct {
	Query struct {
		Pages []struct {
			Title   string `json:"title"`
			Missing bool   `json:"missing"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Lookup requests the plain-text extract for a title. The API follows
// redirects, which also covers case-normalized titles. A missing page is
// not an error; callers check Exists.
func (c *Client) Lookup(ctx context.Context, title string) (LookupResult, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("prop", "extracts")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("titles", title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return LookupResult{}, fmt.Errorf("wikipedia: create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return LookupResult{}, fmt.Errorf("wikipedia: %w: %v", core.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return LookupResult{}, fmt.Errorf("wikipedia: %w: status %d: %s", core.ErrCollaboratorUnavailable, resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return LookupResult{}, fmt.Errorf("wikipedia: read response: %w", err)
	}

	var parsed apiResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		return LookupResult{}, fmt.Errorf("wikipedia: parse response: %w", err)
	}

	if len(parsed.Query.Pages) == 0 {
		return LookupResult{}, nil
	}

	page := parsed.Query.Pages[0]
	if page.Missing {
		c.logger.Infof("Wikipedia: no page for title %q", title)
		return LookupResult{}, nil
	}

	c.logger.Info("Wikipedia lookup complete", "title", page.Title, "chars", len(page.Extract))
	return LookupResult{Exists: true, Text: page.Extract}, nil
}
