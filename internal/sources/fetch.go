package sources

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driven"
	"github.com/meridian-labs/pricewatch-cli/internal/logger"
)

// RequestTimeout bounds one search request end to end.
const RequestTimeout = 15 * time.Second

// maxBodyBytes caps how much of a response body is read. Search result
// pages carry the price well within the first megabytes.
const maxBodyBytes = 4 << 20

// browserHeaders reduce trivial bot-blocking on retail sites.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Accept-Encoding":           "gzip, deflate",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// Client issues search-page requests with a browser-like header set and
// transparent gzip/deflate decompression.
type Client struct {
	http *http.Client
}

// NewClient creates a fetch client with the default timeout.
func NewClient() *Client {
	return &Client{
		http: &http.Client{
			Timeout: RequestTimeout,
			// Manual Accept-Encoding disables the transport's
			// automatic gzip handling, so decompression is ours.
			Transport: &http.Transport{DisableCompression: true},
		},
	}
}

// NewClientWithHTTP creates a fetch client around an existing HTTP
// client. Used by tests with httptest servers.
func NewClientWithHTTP(h *http.Client) *Client {
	return &Client{http: h}
}

// GetPage fetches one URL and returns the parsed page.
// A non-200 status is a miss (nil page, nil error), not a failure.
func (c *Client) GetPage(ctx context.Context, rawURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("fetch %s returned status %d", rawURL, resp.StatusCode)
		return nil, nil
	}

	body, err := decodeBody(resp)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rawURL, err)
	}

	page := &Page{Raw: string(body)}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Raw)); err == nil {
		page.Doc = doc
	} else {
		// Regex rules still get a shot at the raw text.
		logger.Debug("parsing %s failed: %v", rawURL, err)
	}
	return page, nil
}

// decodeBody reads the response body, honouring Content-Encoding.
func decodeBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = io.LimitReader(resp.Body, maxBodyBytes)

	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fl := flate.NewReader(reader)
		defer fl.Close()
		reader = fl
	}

	return io.ReadAll(reader)
}

// Ensure Site implements the interface.
var _ driven.PriceSource = (*Site)(nil)

// Site is one retail site: a search URL builder plus an ordered list of
// extraction rules.
type Site struct {
	source    domain.Source
	searchURL func(query string) string
	rules     []Rule
	client    *Client
}

// Source identifies the retail site this source queries.
func (s *Site) Source() domain.Source {
	return s.source
}

// SearchURL returns the canonical search URL for a query.
func (s *Site) SearchURL(query string) string {
	return s.searchURL(query)
}

// Fetch issues one search request and applies the extraction rules in
// order. A nil quote with nil error is an extraction miss.
func (s *Site) Fetch(ctx context.Context, query string) (*domain.Quote, error) {
	searchURL := s.searchURL(query)

	page, err := s.client.GetPage(ctx, searchURL)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}

	quote := ExtractQuote(page, s.source, query, s.rules)
	if quote == nil {
		logger.Debug("%s: no rule validated for query %q", s.source, query)
		return nil, nil
	}

	logger.Debug("%s: extracted %q at %.2f", s.source, quote.Title, quote.Price)
	return quote, nil
}
