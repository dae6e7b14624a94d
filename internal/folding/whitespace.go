// Copyright 2025 Ian Lewis
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

// Package folding implements text folding for text extracted from HTML.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// WhitespaceFolder folds whitespace in text content extracted from HTML. It
// drops leading and trailing whitespace and replaces every internal run of
// whitespace, including newlines and ideographic spaces, with a single ASCII
// space. Zero width spaces are removed.
type WhitespaceFolder struct {
	// seen is true once a non-whitespace rune has been emitted.
	seen bool

	// pending is true if a whitespace run was read after the last emitted
	// rune.
	pending bool
}

// Transform implements [transform.Transformer.Transform].
func (w *WhitespaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])

		switch {
		case r == '\u200b':
			nSrc += size
			continue
		case unicode.IsSpace(r):
			// Whitespace is only written once a following rune is seen so
			// trailing whitespace is never emitted.
			w.pending = w.seen
			nSrc += size
			continue
		}

		// NOTE: r may be utf8.RuneError with a size of 1 so the encoded length
		// must be used rather than size.
		need := utf8.RuneLen(r)
		if w.pending {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if w.pending {
			dst[nDst] = ' '
			nDst++
			w.pending = false
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += size
		w.seen = true
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *WhitespaceFolder) Reset() {
	*w = WhitespaceFolder{}
}

// String returns s with whitespace folded.
func String(s string) string {
	// WhitespaceFolder never returns an error other than the short buffer
	// errors handled by transform.String.
	folded, _, err := transform.String(&WhitespaceFolder{}, s)
	if err != nil {
		return s
	}
	return folded
}
