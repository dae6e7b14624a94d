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

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-jisho"
	"github.com/ianlewis/go-jisho/internal/testutil"
)

type memCache struct {
	mu    sync.Mutex
	pages map[string]string
	err   error
}

func (m *memCache) Get(_ context.Context, term string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", false, m.err
	}
	p, ok := m.pages[term]
	return p, ok, nil
}

func (m *memCache) Put(_ context.Context, term, page string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.pages == nil {
		m.pages = map[string]string{}
	}
	m.pages[term] = page
	return nil
}

func taberuPage(t *testing.T) string {
	t.Helper()
	return testutil.MakePage(t, testutil.Entry{
		Text:     "食" + testutil.Kana("べ") + testutil.Kana("る"),
		Furigana: testutil.Slots("た", "", ""),
		Meanings: testutil.MeaningLine(testutil.Meaning{
			Number: "1.",
			Text:   "to eat",
			Info:   testutil.SeeAlso("喰う", "/search/kuu"),
		}),
	})
}

func TestClient_Lookup(t *testing.T) {
	t.Parallel()

	page := taberuPage(t)

	var (
		mu             sync.Mutex
		gotPath, gotUA string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		mu.Unlock()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	c, err := New(&Options{
		BaseURL:   srv.URL,
		UserAgent: "jisho-test",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	entries, err := c.Lookup(context.Background(), "  食べる ")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if want, got := "/search/食べる", gotPath; want != got {
		t.Errorf("path: want: %q, got: %q", want, got)
	}
	if want, got := "jisho-test", gotUA; want != got {
		t.Errorf("User-Agent: want: %q, got: %q", want, got)
	}

	num := "1."
	expected := []jisho.Entry{
		{
			Text:    "食べる",
			Reading: "たべる",
			Items: []jisho.ResultItem{
				&jisho.Meaning{
					Number: &num,
					Text:   "to eat",
					SupplementalInfo: []jisho.SupplementalInfo{
						&jisho.SeeAlso{Text: "喰う", Href: srv.URL + "/search/kuu"},
					},
				},
			},
		},
	}
	if diff := cmp.Diff(expected, entries); diff != "" {
		t.Fatalf("Lookup (-want, +got):\n%s", diff)
	}
}

func TestClient_Fetch_path(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		base     string
		term     string
		expected string
	}{
		"kanji": {
			term:     "食べる",
			expected: "/search/%E9%A3%9F%E3%81%B9%E3%82%8B",
		},
		"slash": {
			term:     "1/2",
			expected: "/search/1%2F2",
		},
		"dot dot": {
			term:     "..",
			expected: "/search/%2E%2E",
		},
		"dot": {
			term:     ".",
			expected: "/search/%2E",
		},
		"space": {
			term:     "a b",
			expected: "/search/a%20b",
		},
		"hash and query": {
			term:     "#jlpt-n5?",
			expected: "/search/%23jlpt-n5%3F",
		},
		"base path": {
			base:     "/jisho/",
			term:     "1/2",
			expected: "/jisho/search/1%2F2",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var (
				mu  sync.Mutex
				got string
			)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				mu.Lock()
				got = r.URL.EscapedPath()
				mu.Unlock()
				_, _ = w.Write([]byte("<html>page</html>"))
			}))
			defer srv.Close()

			c, err := New(&Options{BaseURL: srv.URL + tc.base})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if _, err := c.Fetch(context.Background(), tc.term); err != nil {
				t.Fatalf("Fetch: %v", err)
			}

			mu.Lock()
			defer mu.Unlock()
			if want := tc.expected; want != got {
				t.Errorf("path: want: %q, got: %q", want, got)
			}
		})
	}
}

func TestClient_Fetch_httpError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("<html><body><h1>Down for maintenance</h1>\n<p>Back soon.</p></body></html>"))
	}))
	defer srv.Close()

	c, err := New(&Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.Fetch(context.Background(), "犬")
	if !errors.Is(err, ErrHTTP) {
		t.Fatalf("Fetch: want: %v, got: %v", ErrHTTP, err)
	}

	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("Fetch: want *HTTPError, got: %T", err)
	}
	if want, got := http.StatusServiceUnavailable, herr.StatusCode; want != got {
		t.Errorf("StatusCode: want: %d, got: %d", want, got)
	}
	if !strings.Contains(herr.Body, "Down for maintenance") {
		t.Errorf("Body: want summary of error page, got: %q", herr.Body)
	}
	if strings.Contains(herr.Body, "<h1>") {
		t.Errorf("Body: want plain text, got: %q", herr.Body)
	}
}

func TestClient_Fetch_emptyTerm(t *testing.T) {
	t.Parallel()

	c, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Fetch(context.Background(), " \t "); !errors.Is(err, ErrEmptyTerm) {
		t.Fatalf("Fetch: want: %v, got: %v", ErrEmptyTerm, err)
	}
}

func TestClient_Fetch_bodyTooLarge(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Chunked response without a Content-Length.
		chunk := []byte(strings.Repeat("a", 1024*1024))
		for range MaxBodySize/len(chunk) + 1 {
			if _, err := w.Write(chunk); err != nil {
				return
			}
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}
	}))
	defer srv.Close()

	c, err := New(&Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Fetch(context.Background(), "犬"); !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("Fetch: want: %v, got: %v", ErrBodyTooLarge, err)
	}
}

func TestClient_Fetch_cache(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte("<html>page</html>"))
	}))
	defer srv.Close()

	cache := &memCache{}
	c, err := New(&Options{BaseURL: srv.URL, Cache: cache})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for range 3 {
		page, err := c.Fetch(context.Background(), "ｉｎｕ")
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if want, got := "<html>page</html>", page; want != got {
			t.Fatalf("Fetch: want: %q, got: %q", want, got)
		}
	}

	if want, got := int32(1), requests.Load(); want != got {
		t.Errorf("requests: want: %d, got: %d", want, got)
	}
	// Full width characters are folded before caching.
	if _, ok := cache.pages["inu"]; !ok {
		t.Errorf("cache: want key %q, got: %v", "inu", cache.pages)
	}
}

func TestClient_Fetch_cacheError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>page</html>"))
	}))
	defer srv.Close()

	c, err := New(&Options{
		BaseURL: srv.URL,
		Cache:   &memCache{err: errors.New("broken")},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Fetch(context.Background(), "犬"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
}

func TestClient_Fetch_canceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>page</html>"))
	}))
	defer srv.Close()

	c, err := New(&Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Fetch(ctx, "犬"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Fetch: want: %v, got: %v", context.Canceled, err)
	}
}

func TestClient_Lookup_structureError(t *testing.T) {
	t.Parallel()

	page := testutil.MakePage(t, testutil.Entry{OmitRepresentation: true})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	c, err := New(&Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Lookup(context.Background(), "犬"); !errors.Is(err, jisho.ErrStructure) {
		t.Fatalf("Lookup: want: %v, got: %v", jisho.ErrStructure, err)
	}
}

func TestNew_invalidBaseURL(t *testing.T) {
	t.Parallel()

	for _, u := range []string{"://bad", "jisho.org", "/search"} {
		if _, err := New(&Options{BaseURL: u}); !errors.Is(err, ErrClient) {
			t.Errorf("New(%q): want: %v, got: %v", u, ErrClient, err)
		}
	}
}

func TestNormalizeTerm(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		" 食べる ": "食べる",
		"ｔａｂｅｒｕ": "taberu",
		"ﾀﾍﾞﾙ":    "タベル",
		"dog":     "dog",
	}
	for input, want := range tests {
		if got := NormalizeTerm(input); got != want {
			t.Errorf("NormalizeTerm(%q): want: %q, got: %q", input, want, got)
		}
	}
}
