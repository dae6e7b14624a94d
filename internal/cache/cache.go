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

// Package cache implements an sqlite backed cache of search results pages.
package cache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrCache indicates an error reading or writing the cache database.
var ErrCache = errors.New("cache")

//go:embed schema.sql
var schemaSQL string

// Cache is a page cache stored in an sqlite database. It is safe for
// concurrent use.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens the cache database at path, creating it and its parent
// directory if needed. Pages older than ttl are treated as missing. A ttl of
// zero or less means pages never expire.
func Open(path string, ttl time.Duration) (*Cache, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCache, err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", ErrCache, path, err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := initDB(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: initializing %q: %w", ErrCache, path, err)
	}

	return &Cache{
		db:  db,
		ttl: ttl,
		now: time.Now,
	}, nil
}

// initDB runs the embedded schema statements.
func initDB(db *sql.DB) error {
	for _, s := range strings.Split(schemaSQL, ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the cached page for term. The boolean result is false if the
// term is not cached or the page has expired.
func (c *Cache) Get(ctx context.Context, term string) (string, bool, error) {
	var (
		page      string
		fetchedAt int64
	)
	err := c.db.QueryRowContext(ctx,
		"SELECT html, fetched_at FROM pages WHERE term = ?", term,
	).Scan(&page, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: reading %q: %w", ErrCache, term, err)
	}

	if c.expired(fetchedAt) {
		return "", false, nil
	}
	return page, true, nil
}

// Put stores the page for term, replacing any existing page.
func (c *Cache) Put(ctx context.Context, term, page string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO pages (term, html, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(term) DO UPDATE SET html = excluded.html, fetched_at = excluded.fetched_at`,
		term, page, c.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("%w: writing %q: %w", ErrCache, term, err)
	}
	return nil
}

// Purge deletes expired pages and returns the number of pages deleted.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	res, err := c.db.ExecContext(ctx,
		"DELETE FROM pages WHERE fetched_at <= ?", c.now().Add(-c.ttl).Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: purging: %w", ErrCache, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: purging: %w", ErrCache, err)
	}
	return n, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrCache, err)
	}
	return nil
}

func (c *Cache) expired(fetchedAt int64) bool {
	if c.ttl <= 0 {
		return false
	}
	return !c.now().Before(time.Unix(fetchedAt, 0).Add(c.ttl))
}
