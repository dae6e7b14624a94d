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

// Package jisho implements a parser for jisho.org search result pages in pure
// Go.
//
// A search results page contains a list of dictionary entries. Each entry is
// made of several parts:
//  1. A headword, written with a mix of kanji and kana. Kanji runs are plain
//     text nodes and each kana character is wrapped in its own element.
//  2. Furigana annotations for the headword. Annotations are either one
//     element per visual slot, or a single <ruby> element whose <rt> carries
//     one character per slot. Slots over kana are usually empty.
//  3. A list of meanings and tag lines. Tag lines are category labels such as
//     the part of speech. Meanings may be numbered and may carry supplemental
//     info such as usage tags and "see also" references.
//
// Parse reconstructs the full reading of each headword by aligning the
// furigana slots with the headword's kanji and kana units.
package jisho
