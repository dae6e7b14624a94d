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

	"github.com/ianlewis/go-jisho/internal/folding"
)

var (
	entrySel          = cascadia.MustCompile("#primary .concept_light")
	representationSel = cascadia.MustCompile(".concept_light-representation")
	textSel           = cascadia.MustCompile(".text")
	furiganaSel       = cascadia.MustCompile(".furigana")
	meaningsSel       = cascadia.MustCompile(".meanings-wrapper")
	meaningSel        = cascadia.MustCompile(".meaning-meaning")
	dividerSel        = cascadia.MustCompile(".meaning-definition-section_divider")
	supplementalSel   = cascadia.MustCompile(".supplemental_info")
	senseTagSel       = cascadia.MustCompile(".sense-tag")
	rubySel           = cascadia.MustCompile("ruby")
	rtSel             = cascadia.MustCompile("rt")
	anchorSel         = cascadia.MustCompile("a")
)

// textContent returns the concatenated text of n and all of its descendants.
// Comments are not included.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			b.WriteString(textContent(c))
		}
	}
	return b.String()
}

// text returns the whitespace folded text content of n.
func text(n *html.Node) string {
	return folding.String(textContent(n))
}

// attr returns the value of the named attribute or the empty string.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasClass returns true if n's class attribute contains class.
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// children returns the element children of n in document order.
func children(n *html.Node) []*html.Node {
	var nodes []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			nodes = append(nodes, c)
		}
	}
	return nodes
}
