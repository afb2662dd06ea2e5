// Copyright 2026 The diffkit Authors
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

package diffkit

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/diffkit/diffkit/internal/config"
)

func TestWordTokenize(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{
			name:  "plain-words",
			value: "the quick fox",
			want:  []string{"the", " ", "quick", " ", "fox"},
		},
		{
			name:  "punctuation-singletons",
			value: `say "hi" (now)`,
			want:  []string{"say", " ", `"`, "hi", `"`, " ", "(", "now", ")"},
		},
		{
			name:  "accented-word-stays-whole",
			value: "crème brûlée",
			want:  []string{"crème", " ", "brûlée"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := removeEmpty(wordTokenize(tt.value, config.Default))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("wordTokenize(%q) tokens are different [-want,+got]:\n%s", tt.value, diff)
			}
		})
	}
}

func TestLineTokenize(t *testing.T) {
	tests := []struct {
		name  string
		value string
		cfg   config.Config
		want  []string
	}{
		{
			name:  "delimiters-fold-into-lines",
			value: "a\nb\r\nc",
			want:  []string{"a\n", "b\r\n", "c"},
		},
		{
			name:  "trailing-newline",
			value: "a\nb\n",
			want:  []string{"a\n", "b\n"},
		},
		{
			name:  "newline-is-token",
			value: "a\nb\n",
			cfg:   config.Config{NewlineIsToken: true},
			want:  []string{"a", "\n", "b", "\n"},
		},
		{
			name:  "strip-trailing-cr",
			value: "a\r\nb\r\n",
			cfg:   config.Config{StripTrailingCr: true},
			want:  []string{"a\n", "b\n"},
		},
		{
			name:  "empty-lines-kept",
			value: "a\n\nb\n",
			want:  []string{"a\n", "\n", "b\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lineTokenize(tt.value, tt.cfg)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("lineTokenize(%q) tokens are different [-want,+got]:\n%s", tt.value, diff)
			}
		})
	}
}

func TestSentenceTokenize(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{
			name:  "two-sentences",
			value: "One sentence. Another one!",
			want:  []string{"One sentence.", " ", "Another one!"},
		},
		{
			name:  "no-terminator",
			value: "just a fragment",
			want:  []string{"just a fragment"},
		},
		{
			name:  "terminator-needs-following-space",
			value: "pkg.Name is one token. Done.",
			want:  []string{"pkg.Name is one token.", " ", "Done."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := removeEmpty(sentenceTokenize(tt.value, config.Default))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("sentenceTokenize(%q) tokens are different [-want,+got]:\n%s", tt.value, diff)
			}
		})
	}
}

// Tokenizers must lose no input: joining the tokens reproduces the original text.
func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"one two  three\nfour",
		"line one\r\nline two\r\n",
		"Sentences. More! And? Yes.",
		"a { b: c; }\n.d { e: f }",
		"tabs\tand (brackets) [ok] {fine}",
	}
	tokenizers := map[string]func(string, config.Config) []string{
		"words":     wordTokenize,
		"lines":     lineTokenize,
		"sentences": sentenceTokenize,
		"css":       cssStrategy.tokenize,
	}
	for name, tokenize := range tokenizers {
		for _, input := range inputs {
			if got := strings.Join(tokenize(input, config.Default), ""); got != input {
				t.Errorf("%s tokens do not reconstruct input: got %q, want %q", name, got, input)
			}
		}
	}
}
