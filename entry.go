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

// Entry is a dictionary entry on a search results page.
type Entry struct {
	// Text is the entry's headword.
	Text string

	// Reading is the headword's full phonetic reading.
	Reading string

	// Items are the entry's meanings and tag lines in document order.
	Items []ResultItem
}

// ItemKind identifies the type of a ResultItem.
type ItemKind int

const (
	// MeaningItem is a (possibly numbered) meaning line.
	MeaningItem ItemKind = iota

	// TagItem is a bare category label such as a part of speech header.
	TagItem
)

// String implements [fmt.Stringer.String].
func (k ItemKind) String() string {
	switch k {
	case MeaningItem:
		return "meaning"
	case TagItem:
		return "tag"
	default:
		return "unknown"
	}
}

// ResultItem is an item in an entry. A ResultItem is either a *Meaning or a
// *Tag.
type ResultItem interface {
	// Kind returns the kind of the item.
	Kind() ItemKind

	resultItem()
}

// Meaning is a single sense of an entry.
type Meaning struct {
	// Number is the meaning's ordinal marker, e.g. "1.". Number is nil if the
	// meaning has no ordinal.
	Number *string

	// Text is the meaning's text.
	Text string

	// SupplementalInfo holds the meaning's usage tags and cross references.
	SupplementalInfo []SupplementalInfo
}

// Kind implements [ResultItem.Kind].
func (*Meaning) Kind() ItemKind { return MeaningItem }

func (*Meaning) resultItem() {}

// Tag is a bare category label.
type Tag struct {
	Text string
}

// Kind implements [ResultItem.Kind].
func (*Tag) Kind() ItemKind { return TagItem }

func (*Tag) resultItem() {}

// InfoKind identifies the type of a SupplementalInfo.
type InfoKind int

const (
	// TagInfo is a plain usage label.
	TagInfo InfoKind = iota

	// SeeAlsoInfo is a cross reference to another term.
	SeeAlsoInfo
)

// String implements [fmt.Stringer.String].
func (k InfoKind) String() string {
	switch k {
	case TagInfo:
		return "tag"
	case SeeAlsoInfo:
		return "see-also"
	default:
		return "unknown"
	}
}

// SupplementalInfo is an annotation on a Meaning. A SupplementalInfo is either
// an *InfoTag or a *SeeAlso.
type SupplementalInfo interface {
	// InfoKind returns the kind of the annotation.
	InfoKind() InfoKind

	supplementalInfo()
}

// InfoTag is a plain usage label, e.g. "Usually written using kana alone".
type InfoTag struct {
	Text string
}

// InfoKind implements [SupplementalInfo.InfoKind].
func (*InfoTag) InfoKind() InfoKind { return TagInfo }

func (*InfoTag) supplementalInfo() {}

// SeeAlso is a cross reference to another term.
type SeeAlso struct {
	// Text is the referenced term.
	Text string

	// Href is the resolved link to the referenced term. Href is empty if the
	// reference had no link.
	Href string
}

// InfoKind implements [SupplementalInfo.InfoKind].
func (*SeeAlso) InfoKind() InfoKind { return SeeAlsoInfo }

func (*SeeAlso) supplementalInfo() {}
