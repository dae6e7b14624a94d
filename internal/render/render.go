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

// Package render writes dictionary entries to a terminal.
package render

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"

	"github.com/ianlewis/go-jisho"
)

// ErrFormat indicates an unknown output format.
var ErrFormat = errors.New("unknown format")

// Format is an output format.
type Format int

const (
	// TextFormat prints each entry followed by its items, one per line.
	TextFormat Format = iota

	// TableFormat prints one table row per meaning.
	TableFormat
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case TextFormat:
		return "text"
	case TableFormat:
		return "table"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat returns the Format with the given name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return TextFormat, nil
	case "table":
		return TableFormat, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrFormat, s)
	}
}

// Options are options for a Renderer.
type Options struct {
	// Color enables ANSI colors and terminal hyperlinks.
	Color bool

	// Reverse prints entries in document order. By default entries are
	// printed best match last so that it is nearest the prompt.
	Reverse bool

	// Format is the output format.
	Format Format
}

// Renderer writes entries to an io.Writer.
type Renderer struct {
	w    io.Writer
	opts Options

	headword *color.Color
	reading  *color.Color
	tag      *color.Color
	faint    *color.Color
	header   *color.Color
}

// New returns a new Renderer writing to w. A nil opts uses the zero Options.
func New(w io.Writer, opts *Options) *Renderer {
	r := &Renderer{w: w}
	if opts != nil {
		r.opts = *opts
	}

	r.headword = r.color(color.Bold, color.FgHiGreen)
	r.reading = r.color(color.FgHiMagenta)
	r.tag = r.color(color.FgCyan)
	r.faint = r.color(color.Faint)
	r.header = r.color(color.Bold, color.Underline)

	return r
}

func (r *Renderer) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.opts.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Render writes the entries in the configured format.
func (r *Renderer) Render(entries []jisho.Entry) error {
	entries = slices.Clone(entries)
	if !r.opts.Reverse {
		slices.Reverse(entries)
	}

	switch r.opts.Format {
	case TextFormat:
		return r.text(entries)
	case TableFormat:
		r.table(entries)
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrFormat, r.opts.Format)
	}
}

func (r *Renderer) text(entries []jisho.Entry) error {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s [%s]:\n", r.headword.Sprint(e.Text), r.reading.Sprint(e.Reading))
		for _, item := range e.Items {
			switch it := item.(type) {
			case *jisho.Tag:
				fmt.Fprintf(&b, "\t%s\n", r.tag.Sprint(it.Text))
			case *jisho.Meaning:
				b.WriteString("\t")
				if it.Number != nil {
					b.WriteString(r.faint.Sprint(*it.Number) + " ")
				}
				b.WriteString(it.Text)
				if len(it.SupplementalInfo) > 0 {
					b.WriteString(r.faint.Sprint(" - " + r.info(it.SupplementalInfo, r.opts.Color)))
				}
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) table(entries []jisho.Entry) {
	tbl := table.New("Word", "Reading", "#", "Meaning", "Info").
		WithWriter(r.w).
		WithWidthFunc(runewidth.StringWidth).
		WithHeaderFormatter(func(format string, vals ...interface{}) string {
			return r.header.Sprintf(format, vals...)
		})

	for _, e := range entries {
		first := true
		for _, item := range e.Items {
			m, ok := item.(*jisho.Meaning)
			if !ok {
				continue
			}

			word, reading := "", ""
			if first {
				word, reading = e.Text, e.Reading
				first = false
			}
			var num string
			if m.Number != nil {
				num = *m.Number
			}
			tbl.AddRow(word, reading, num, m.Text, r.info(m.SupplementalInfo, false))
		}
		if first {
			// Entries without meanings still get a row.
			tbl.AddRow(e.Text, e.Reading, "", "", "")
		}
	}

	tbl.Print()
}

// info joins supplemental info for display. See-also references are
// written as terminal hyperlinks if links is true.
func (r *Renderer) info(infos []jisho.SupplementalInfo, links bool) string {
	parts := make([]string, 0, len(infos))
	for _, info := range infos {
		switch in := info.(type) {
		case *jisho.InfoTag:
			parts = append(parts, in.Text)
		case *jisho.SeeAlso:
			text := in.Text
			if links && in.Href != "" {
				text = Hyperlink(in.Text, in.Href)
			}
			parts = append(parts, "see also "+text)
		}
	}
	return strings.Join(parts, ", ")
}

// Hyperlink returns text wrapped in an OSC 8 terminal hyperlink to href.
func Hyperlink(text, href string) string {
	return "\x1b]8;;" + href + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}
