package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/net/html"

	"github.com/akovalev/claimsift/internal/model"
)

// PageFetcher retrieves page text for review sources, respecting robots.txt.
// It is the transcript fallback when a source has no native transcript API.
type PageFetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64

	robotsMu    sync.RWMutex
	robotsCache map[string]*robotstxt.RobotsData
}

// NewPageFetcher creates a fetcher with the given HTTP configuration
func NewPageFetcher(cfg model.HTTPConfig) *PageFetcher {
	return &PageFetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: newProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:   cfg.UserAgent,
		maxBytes:    cfg.MaxBodyBytes,
		robotsCache: make(map[string]*robotstxt.RobotsData),
	}
}

// FetchTranscript fetches the review source page and extracts its visible
// text. Disallowed or inaccessible pages return ErrTranscriptUnavailable.
func (f *PageFetcher) FetchTranscript(ctx context.Context, src ReviewSource) (string, error) {
	if src.URL == "" {
		return "", ErrTranscriptUnavailable
	}

	allowed, err := f.robotsAllowed(ctx, src.URL)
	if err == nil && !allowed {
		return "", ErrTranscriptUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", &RecoverableError{Provider: "fetcher", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", &RecoverableError{Provider: "fetcher", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", ErrTranscriptUnavailable
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text := ExtractVisibleText(string(body))
	if strings.TrimSpace(text) == "" {
		return "", ErrTranscriptUnavailable
	}
	return text, nil
}

// robotsAllowed checks and caches robots.txt for the URL's host
func (f *PageFetcher) robotsAllowed(ctx context.Context, rawURL string) (bool, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("parse URL: %w", err)
	}

	f.robotsMu.RLock()
	data, ok := f.robotsCache[parsed.Host]
	f.robotsMu.RUnlock()

	if !ok {
		robotsURL := fmt.Sprintf("%s://%s/robots.txt", parsed.Scheme, parsed.Host)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
		if err != nil {
			return true, nil
		}
		req.Header.Set("User-Agent", f.userAgent)

		resp, err := f.httpClient.Do(req)
		if err != nil {
			// Unknown robots policy: allow, the fetch itself still times out
			return true, nil
		}
		defer func() { _ = resp.Body.Close() }()

		data, err = robotstxt.FromResponse(resp)
		if err != nil {
			return true, nil
		}

		f.robotsMu.Lock()
		f.robotsCache[parsed.Host] = data
		f.robotsMu.Unlock()
	}

	return data.TestAgent(parsed.Path, f.userAgent), nil
}

// ExtractVisibleText pulls text nodes from HTML, skipping scripts and styles
func ExtractVisibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(buf.String())
}

// newProxyFunc builds a proxy function from explicit settings, falling back
// to the environment
func newProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}
	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

// ReviewSearchAdapter turns a generic SearchProvider into a ReviewSearcher
// by querying for third-party review/debunk coverage of the subject
type ReviewSearchAdapter struct {
	search SearchProvider
	limit  int
}

// NewReviewSearchAdapter wraps a search provider for adversarial queries
func NewReviewSearchAdapter(search SearchProvider, limit int) *ReviewSearchAdapter {
	if limit <= 0 {
		limit = 5
	}
	return &ReviewSearchAdapter{search: search, limit: limit}
}

// SearchReviews finds content about the subject's credibility
func (r *ReviewSearchAdapter) SearchReviews(ctx context.Context, subject string) ([]ReviewSource, error) {
	results, err := r.search.Search(ctx, fmt.Sprintf("%q review OR debunked OR exposed", subject))
	if err != nil {
		return nil, err
	}

	var sources []ReviewSource
	for i, res := range results {
		if len(sources) >= r.limit {
			break
		}
		sources = append(sources, ReviewSource{
			ID:    fmt.Sprintf("%s-%d-%d", r.search.Name(), time.Now().Unix(), i),
			Title: res.Title,
			URL:   res.URL,
		})
	}
	return sources, nil
}
