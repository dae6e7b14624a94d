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
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

type unitKind int

const (
	kanjiUnit unitKind = iota
	kanaUnit
)

// textUnit is a single visual slot of a headword.
type textUnit struct {
	text string
	kind unitKind
}

// textUnits splits a headword into units. Kanji are rendered as text nodes
// where each character is its own unit. Kana are rendered as elements and the
// whole element is a single unit.
func textUnits(n *html.Node) []textUnit {
	var units []textUnit
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			for _, r := range strings.TrimSpace(c.Data) {
				units = append(units, textUnit{
					text: string(r),
					kind: kanjiUnit,
				})
			}
		case html.ElementNode:
			t := strings.TrimSpace(textContent(c))
			if t == "" {
				continue
			}
			units = append(units, textUnit{
				text: t,
				kind: kanaUnit,
			})
		}
	}
	return units
}

// furiganaSlots returns the furigana annotations for each visual slot of the
// headword. Slots may be empty.
func furiganaSlots(n *html.Node) []string {
	var slots []string

	// Some entries use a single <ruby> element with one character per slot in
	// the <rt>.
	if cascadia.Query(n, rubySel) != nil {
		rt := cascadia.Query(n, rtSel)
		if rt == nil {
			return nil
		}
		for _, r := range strings.TrimSpace(textContent(rt)) {
			slots = append(slots, string(r))
		}
		return slots
	}

	for _, c := range children(n) {
		slots = append(slots, strings.TrimSpace(textContent(c)))
	}
	return slots
}

// reading aligns the furigana slots with the headword units. An empty slot
// over a kanji means the reading was already given by an earlier slot that
// covers the whole kanji run.
func reading(units []textUnit, slots []string) string {
	var b strings.Builder
	for i, f := range slots {
		switch {
		case f != "":
			b.WriteString(f)
		case i < len(units) && units[i].kind == kanaUnit:
			b.WriteString(units[i].text)
		}
	}
	return b.String()
}
