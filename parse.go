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

package jisho

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// ParseOptions are options for parsing a search results page.
type ParseOptions struct {
	// BaseURL is used to resolve relative "see also" links. Links are left
	// as-is if BaseURL is nil.
	BaseURL *url.URL

	// OnUnknownTag is called with the class attribute of each supplemental
	// annotation that is not recognized. Unrecognized annotations are
	// otherwise dropped.
	OnUnknownTag func(class string)
}

// DefaultBaseURL is the jisho.org site URL.
const DefaultBaseURL = "https://jisho.org"

// DefaultParseOptions is the default options for Parse.
var DefaultParseOptions = &ParseOptions{
	BaseURL: &url.URL{
		Scheme: "https",
		Host:   "jisho.org",
	},
}

// block is a located dictionary entry block.
type block struct {
	text     *html.Node
	furigana *html.Node
	meanings *html.Node
}

// Parse parses the HTML of a jisho.org search results page and returns its
// dictionary entries in document order. Parsing is all or nothing. If any
// entry is missing a required element then an error wrapping ErrStructure is
// returned and no entries are returned.
func Parse(s string, opts *ParseOptions) ([]Entry, error) {
	return ParseReader(strings.NewReader(s), opts)
}

// ParseReader is like Parse but reads the page from r.
func ParseReader(r io.Reader, opts *ParseOptions) ([]Entry, error) {
	if opts == nil {
		opts = DefaultParseOptions
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	blocks, err := extractBlocks(doc)
	if err != nil {
		return nil, err
	}

	p := &parser{opts: opts}
	var entries []Entry
	for _, b := range blocks {
		entries = append(entries, p.entry(b))
	}
	return entries, nil
}

// extractBlocks locates every entry block in the document along with its
// required sub-elements.
func extractBlocks(doc *html.Node) ([]block, error) {
	var blocks []block
	for i, n := range cascadia.QueryAll(doc, entrySel) {
		rep := cascadia.Query(n, representationSel)
		if rep == nil {
			return nil, &StructureError{Anchor: MissingRepresentation, Entry: i}
		}

		b := block{
			text:     cascadia.Query(rep, textSel),
			furigana: cascadia.Query(rep, furiganaSel),
			meanings: cascadia.Query(n, meaningsSel),
		}
		switch {
		case b.text == nil:
			return nil, &StructureError{Anchor: MissingText, Entry: i}
		case b.furigana == nil:
			return nil, &StructureError{Anchor: MissingFurigana, Entry: i}
		case b.meanings == nil:
			return nil, &StructureError{Anchor: MissingMeanings, Entry: i}
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

type parser struct {
	opts *ParseOptions
}

func (p *parser) entry(b block) Entry {
	return Entry{
		Text:    text(b.text),
		Reading: reading(textUnits(b.text), furiganaSlots(b.furigana)),
		Items:   p.items(b.meanings),
	}
}

// resolve resolves href against the base URL.
func (p *parser) resolve(href string) string {
	if href == "" || p.opts.BaseURL == nil {
		return href
	}
	u, err := p.opts.BaseURL.Parse(href)
	if err != nil {
		return href
	}
	return u.String()
}
