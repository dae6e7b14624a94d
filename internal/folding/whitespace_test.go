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

package folding

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/transform"
)

func TestWhitespaceFolder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    " \n\t ",
			expected: "",
		},
		{
			name:     "leading and trailing",
			input:    "\n    to eat\n  ",
			expected: "to eat",
		},
		{
			name:     "internal runs",
			input:    "Ichidan   verb,\n\t\ttransitive verb",
			expected: "Ichidan verb, transitive verb",
		},
		{
			name:     "ideographic space",
			input:    "食べる\u3000たべる",
			expected: "食べる たべる",
		},
		{
			name:     "zero width space",
			input:    "食\u200bべる",
			expected: "食べる",
		},
		{
			name:     "japanese",
			input:    "\n食べる\n",
			expected: "食べる",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, String(test.input)); diff != "" {
				t.Fatalf("String (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestWhitespaceFolder_shortBuffers(t *testing.T) {
	t.Parallel()

	// Feed the input through a reader so the transformer sees split runes
	// and a small destination buffer.
	input := strings.Repeat("  食べる \n ", 500)
	expected := strings.TrimSpace(strings.Repeat("食べる ", 500))

	r := transform.NewReader(strings.NewReader(input), &WhitespaceFolder{})
	var b strings.Builder
	buf := make([]byte, 7)
	for {
		n, err := r.Read(buf)
		b.Write(buf[:n])
		if err != nil {
			break
		}
	}

	if diff := cmp.Diff(expected, b.String()); diff != "" {
		t.Fatalf("Read (-want, +got):\n%s", diff)
	}
}
