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
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// items parses each line of the meanings container.
func (p *parser) items(n *html.Node) []ResultItem {
	items := []ResultItem{}
	for _, c := range children(n) {
		items = append(items, p.item(c))
	}
	return items
}

func (p *parser) item(n *html.Node) ResultItem {
	if hasClass(n, "meaning-tags") {
		return &Tag{Text: text(n)}
	}

	m := &Meaning{
		SupplementalInfo: p.supplementalInfo(n),
	}
	if t := cascadia.Query(n, meaningSel); t != nil {
		m.Text = text(t)
	} else {
		m.Text = text(n)
	}
	if d := cascadia.Query(n, dividerSel); d != nil {
		if num := text(d); num != "" {
			m.Number = &num
		}
	}
	return m
}

// supplementalInfo parses the annotations of a meaning line. Annotations that
// are not recognized are dropped.
func (p *parser) supplementalInfo(n *html.Node) []SupplementalInfo {
	info := []SupplementalInfo{}

	c := cascadia.Query(n, supplementalSel)
	if c == nil {
		return info
	}

	for _, st := range cascadia.QueryAll(c, senseTagSel) {
		if i := p.senseTag(st); i != nil {
			info = append(info, i)
		}
	}
	return info
}

func (p *parser) senseTag(n *html.Node) SupplementalInfo {
	switch {
	case hasClass(n, "tag-tag"):
		return &InfoTag{Text: text(n)}
	case hasClass(n, "tag-see_also"):
		a := cascadia.Query(n, anchorSel)
		if a == nil {
			return &SeeAlso{Text: text(n)}
		}
		return &SeeAlso{
			Text: text(a),
			Href: p.resolve(attr(a, "href")),
		}
	}

	if p.opts.OnUnknownTag != nil {
		p.opts.OnUnknownTag(attr(n, "class"))
	}
	return nil
}
