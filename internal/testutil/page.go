// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package testutil builds jisho.org search result pages for tests.
package testutil

import (
	"html"
	"strings"
	"testing"
)

// Entry describes a dictionary entry block on a test search results page.
// Text, Furigana and Meanings are raw inner HTML.
type Entry struct {
	// Text is the inner HTML of the headword's .text element.
	Text string

	// Furigana is the inner HTML of the .furigana element.
	Furigana string

	// Meanings is the inner HTML of the .meanings-wrapper element.
	Meanings string

	// OmitRepresentation omits the whole headword block.
	OmitRepresentation bool

	// OmitText omits the headword's .text element.
	OmitText bool

	// OmitFurigana omits the .furigana element.
	OmitFurigana bool

	// OmitMeanings omits the .meanings-wrapper element.
	OmitMeanings bool
}

// MakePage creates a test search results page containing the given entries.
func MakePage(t *testing.T, entries ...Entry) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><title>Jisho.org</title></head><body>\n")
	b.WriteString(`<div id="page_container"><div class="row">` + "\n")
	b.WriteString(`<div id="primary" class="large-8 columns">` + "\n")
	b.WriteString(`<div class="concepts">` + "\n")
	for _, e := range entries {
		b.WriteString(makeEntry(e))
	}
	b.WriteString("</div>\n</div>\n")
	// Secondary results look like entries but are outside of #primary.
	b.WriteString(`<div id="secondary" class="large-4 columns"><div class="concept_light">ignored</div></div>` + "\n")
	b.WriteString("</div></div>\n</body></html>\n")
	return b.String()
}

func makeEntry(e Entry) string {
	var b strings.Builder
	b.WriteString(`<div class="concept_light clearfix">` + "\n")
	b.WriteString(`  <div class="concept_light-wrapper columns zero-padding">` + "\n")
	if !e.OmitRepresentation {
		b.WriteString(`    <div class="concept_light-readings japanese japanese_gothic" lang="ja">` + "\n")
		b.WriteString(`      <div class="concept_light-representation">` + "\n")
		if !e.OmitFurigana {
			b.WriteString(`        <span class="furigana">` + e.Furigana + "</span>\n")
		}
		if !e.OmitText {
			b.WriteString(`        <span class="text">` + "\n          " + e.Text + "\n        </span>\n")
		}
		b.WriteString("      </div>\n    </div>\n")
	}
	b.WriteString(`    <div class="concept_light-status"><span class="concept_light-tag concept_light-common success label">Common word</span></div>` + "\n")
	b.WriteString("  </div>\n")
	b.WriteString(`  <div class="concept_light-meanings medium-9 columns">` + "\n")
	if !e.OmitMeanings {
		b.WriteString(`    <div class="meanings-wrapper">` + e.Meanings + "</div>\n")
	}
	b.WriteString("  </div>\n</div>\n")
	return b.String()
}

// Kana returns a kana element as rendered inside a headword.
func Kana(s string) string {
	return "<span>" + html.EscapeString(s) + "</span>"
}

// Slots returns furigana rendered as one element per slot.
func Slots(slots ...string) string {
	var b strings.Builder
	for _, s := range slots {
		if s == "" {
			b.WriteString("<span></span>")
			continue
		}
		b.WriteString(`<span class="kanji-1-up kanji">` + html.EscapeString(s) + "</span>")
	}
	return b.String()
}

// Ruby returns furigana rendered as a single <ruby> element.
func Ruby(base, rt string) string {
	return `<ruby class="furigana-justify"><rb>` + html.EscapeString(base) + "</rb><rt>" + html.EscapeString(rt) + "</rt></ruby>"
}

// TagLine returns a tag line of a meanings container.
func TagLine(s string) string {
	return `<div class="meaning-tags">` + html.EscapeString(s) + "</div>\n"
}

// Meaning describes a meaning line of a meanings container.
type Meaning struct {
	// Number is the ordinal marker. It is omitted if empty.
	Number string

	// Text is the meaning text.
	Text string

	// Info is the raw inner HTML of the supplemental info element. It is
	// omitted if empty.
	Info string
}

// MeaningLine returns a meaning line of a meanings container.
func MeaningLine(m Meaning) string {
	var b strings.Builder
	b.WriteString(`<div class="meaning-wrapper"><div class="meaning-definition zero-padding">`)
	if m.Number != "" {
		b.WriteString(`<span class="meaning-definition-section_divider">` + html.EscapeString(m.Number) + " </span>")
	}
	b.WriteString(`<span class="meaning-meaning">` + html.EscapeString(m.Text) + "</span>")
	if m.Info != "" {
		b.WriteString(`<span class="supplemental_info">` + m.Info + "</span>")
	}
	b.WriteString("</div></div>\n")
	return b.String()
}

// InfoTag returns a usage tag annotation.
func InfoTag(s string) string {
	return `<span class="sense-tag tag-tag">` + html.EscapeString(s) + "</span>"
}

// SeeAlso returns a "see also" annotation linking to href.
func SeeAlso(s, href string) string {
	return `<span class="sense-tag tag-see_also">See also <a href="` + html.EscapeString(href) + `">` + html.EscapeString(s) + "</a></span>"
}

// SenseTag returns an annotation with the given extra class.
func SenseTag(class, s string) string {
	return `<span class="sense-tag ` + class + `">` + html.EscapeString(s) + "</span>"
}
