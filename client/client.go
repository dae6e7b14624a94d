// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package client implements fetching and parsing jisho.org search results.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/k3a/html2text"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-jisho"
)

// MaxBodySize is the maximum size of a search results page.
const MaxBodySize = 10 * 1024 * 1024

// maxErrorBody is the maximum length of the error page summary in an
// HTTPError.
const maxErrorBody = 200

var (
	// ErrClient is a parent error for all client errors.
	ErrClient = errors.New("jisho client")

	// ErrEmptyTerm indicates that the search term is empty.
	ErrEmptyTerm = fmt.Errorf("%w: empty search term", ErrClient)

	// ErrHTTP indicates that the server returned an unsuccessful response.
	ErrHTTP = fmt.Errorf("%w: http", ErrClient)

	// ErrBodyTooLarge indicates that the response exceeded MaxBodySize.
	ErrBodyTooLarge = fmt.Errorf("%w: response body too large", ErrClient)
)

// HTTPError is returned when the server responds with a non-2xx status.
type HTTPError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Status is the HTTP status line, e.g. "404 Not Found".
	Status string

	// Body is a short plain text summary of the error page.
	Body string
}

// Error implements [error.Error].
func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v: %s", ErrHTTP, e.Status)
	}
	return fmt.Sprintf("%v: %s: %s", ErrHTTP, e.Status, e.Body)
}

// Unwrap returns ErrHTTP.
func (e *HTTPError) Unwrap() error {
	return ErrHTTP
}

// Cache caches search result pages by normalized search term.
type Cache interface {
	Get(ctx context.Context, term string) (string, bool, error)
	Put(ctx context.Context, term, page string) error
}

// Options are options for a Client.
type Options struct {
	// BaseURL is the site URL. Defaults to jisho.DefaultBaseURL.
	BaseURL string

	// HTTPClient is the client used for requests. Defaults to a client with a
	// 30 second timeout.
	HTTPClient *http.Client

	// UserAgent is the User-Agent header. Defaults to DefaultUserAgent().
	UserAgent string

	// Logger is used for debug and warning messages. Defaults to discarding
	// all logs.
	Logger *slog.Logger

	// Cache is an optional page cache.
	Cache Cache
}

// Client looks up terms on jisho.org.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	log        *slog.Logger
	cache      Cache
}

// DefaultUserAgent returns the default User-Agent header value.
func DefaultUserAgent() string {
	return fmt.Sprintf("go-jisho/%s (+https://github.com/ianlewis/go-jisho)", version.GetVersionInfo().GitVersion)
}

// New returns a new Client.
func New(opts *Options) (*Client, error) {
	if opts == nil {
		opts = &Options{}
	}

	rawURL := opts.BaseURL
	if rawURL == "" {
		rawURL = jisho.DefaultBaseURL
	}
	baseURL, err := url.Parse(strings.TrimSuffix(rawURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base url: %w", ErrClient, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("%w: invalid base url: %q", ErrClient, rawURL)
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: opts.HTTPClient,
		userAgent:  opts.UserAgent,
		log:        opts.Logger,
		cache:      opts.Cache,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent()
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	c.log = c.log.With("component", "client")

	return c, nil
}

// BaseURL returns the site URL used by the client.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// NormalizeTerm trims the term, folds full-width and half-width characters
// to their canonical width and returns the NFC normalized result.
func NormalizeTerm(term string) string {
	return norm.NFC.String(width.Fold.String(strings.TrimSpace(term)))
}

// Lookup fetches the search results page for the term and parses it.
func (c *Client) Lookup(ctx context.Context, term string) ([]jisho.Entry, error) {
	page, err := c.Fetch(ctx, term)
	if err != nil {
		return nil, err
	}

	entries, err := jisho.Parse(page, &jisho.ParseOptions{
		BaseURL: c.baseURL,
		OnUnknownTag: func(class string) {
			c.log.DebugContext(ctx, "dropped unknown annotation", slog.String("class", class))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("parsing results for %q: %w", term, err)
	}

	c.log.DebugContext(ctx, "parsed results", slog.String("term", term), slog.Int("entries", len(entries)))
	return entries, nil
}

// Fetch returns the raw search results page for the term. Pages are read
// from and stored in the cache if one is configured.
func (c *Client) Fetch(ctx context.Context, term string) (string, error) {
	term = NormalizeTerm(term)
	if term == "" {
		return "", ErrEmptyTerm
	}

	if c.cache != nil {
		page, ok, err := c.cache.Get(ctx, term)
		switch {
		case err != nil:
			c.log.WarnContext(ctx, "cache read failed", slog.String("term", term), slog.String("error", err.Error()))
		case ok:
			c.log.DebugContext(ctx, "cache hit", slog.String("term", term))
			return page, nil
		}
	}

	page, err := c.get(ctx, term)
	if err != nil {
		return "", err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, term, page); err != nil {
			c.log.WarnContext(ctx, "cache write failed", slog.String("term", term), slog.String("error", err.Error()))
		}
	}

	return page, nil
}

func (c *Client) get(ctx context.Context, term string) (string, error) {
	reqURL := c.searchURL(term)

	c.log.DebugContext(ctx, "request", slog.String("url", reqURL.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %w", ErrClient, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request failed: %w", ErrClient, err)
	}
	defer resp.Body.Close()

	if resp.ContentLength > MaxBodySize {
		return "", fmt.Errorf("%w: %d bytes", ErrBodyTooLarge, resp.ContentLength)
	}

	// Read one extra byte to detect bodies over the limit.
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %w", ErrClient, err)
	}
	if len(body) > MaxBodySize {
		return "", fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, MaxBodySize)
	}

	c.log.DebugContext(ctx, "response",
		slog.String("term", term),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       summarize(string(body)),
		}
	}

	return string(body), nil
}

// searchURL returns the search page URL for term. The term is always a
// single path segment.
func (c *Client) searchURL(term string) *url.URL {
	segment := url.PathEscape(term)
	if term == "." || term == ".." {
		// Dot segments would otherwise be removed by the server.
		segment = strings.ReplaceAll(term, ".", "%2E")
	}

	u := *c.baseURL
	u.Path = strings.TrimSuffix(c.baseURL.Path, "/") + "/search/" + term
	u.RawPath = strings.TrimSuffix(c.baseURL.EscapedPath(), "/") + "/search/" + segment
	return &u
}

// summarize converts an HTML error page to a short single line of text.
func summarize(page string) string {
	s := strings.Join(strings.Fields(html2text.HTML2Text(page)), " ")
	if r := []rune(s); len(r) > maxErrorBody {
		s = string(r[:maxErrorBody]) + "…"
	}
	return s
}
