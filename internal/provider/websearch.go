package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/akovalev/claimsift/internal/model"
)

// WebSearchProvider queries a SerpAPI-style JSON search endpoint.
// Contract: GET <endpoint>?q=<query>&api_key=<key> returning
// {"results": [{"url": ..., "title": ..., "snippet": ..., "published_at": ...}]}
type WebSearchProvider struct {
	name       string
	endpoint   string
	apiKey     string
	httpClient *http.Client
	maxResults int
}

type searchResponse struct {
	Results []struct {
		URL         string `json:"url"`
		Title       string `json:"title"`
		Snippet     string `json:"snippet"`
		PublishedAt string `json:"published_at"`
	} `json:"results"`
}

// NewWebSearchProvider creates a search provider against the given endpoint
func NewWebSearchProvider(name, endpoint, apiKey string, httpCfg model.HTTPConfig, maxResults int) *WebSearchProvider {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &WebSearchProvider{
		name:     name,
		endpoint: strings.TrimSuffix(endpoint, "/"),
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			Transport: &http.Transport{
				Proxy: newProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy),
			},
		},
		maxResults: maxResults,
	}
}

// Name returns the provider name
func (p *WebSearchProvider) Name() string { return p.name }

// Search executes one query against the endpoint
func (p *WebSearchProvider) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	u := fmt.Sprintf("%s?q=%s&api_key=%s", p.endpoint, url.QueryEscape(query), url.QueryEscape(p.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &RecoverableError{Provider: p.name, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RecoverableError{Provider: p.name, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", p.name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2_000_000))
	if err != nil {
		return nil, &RecoverableError{Provider: p.name, Err: err}
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &MalformedResponseError{Provider: p.name, Payload: string(body), Err: err}
	}

	var results []model.SearchResult
	for _, r := range parsed.Results {
		if len(results) >= p.maxResults {
			break
		}
		sr := model.SearchResult{
			URL:      r.URL,
			Title:    r.Title,
			Snippet:  r.Snippet,
			Provider: p.name,
		}
		if r.PublishedAt != "" {
			if t, err := time.Parse(time.RFC3339, r.PublishedAt); err == nil {
				sr.PublishedAt = &t
			}
		}
		results = append(results, sr)
	}
	return results, nil
}
