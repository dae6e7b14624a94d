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
	"errors"
	"fmt"
)

// ErrStructure indicates that a required element is missing from the page.
var ErrStructure = errors.New("unexpected page structure")

// Anchor is a required element of a search results page.
type Anchor int

const (
	// MissingRepresentation is the headword block of an entry.
	MissingRepresentation Anchor = iota

	// MissingText is the headword text inside the headword block.
	MissingText

	// MissingFurigana is the furigana container inside the headword block.
	MissingFurigana

	// MissingMeanings is the meanings container of an entry.
	MissingMeanings
)

// String implements [fmt.Stringer.String].
func (a Anchor) String() string {
	switch a {
	case MissingRepresentation:
		return "headword block"
	case MissingText:
		return "headword text"
	case MissingFurigana:
		return "furigana"
	case MissingMeanings:
		return "meanings"
	default:
		return "unknown"
	}
}

// StructureError is returned when an entry is missing a required element.
type StructureError struct {
	// Anchor is the missing element.
	Anchor Anchor

	// Entry is the zero based index of the entry block in the document.
	Entry int
}

// Error implements [error.Error].
func (e *StructureError) Error() string {
	return fmt.Sprintf("%v: entry %d: missing %v", ErrStructure, e.Entry, e.Anchor)
}

// Unwrap returns ErrStructure.
func (e *StructureError) Unwrap() error {
	return ErrStructure
}
