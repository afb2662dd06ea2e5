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
	"regexp"
	"strings"

	"github.com/diffkit/diffkit/internal/config"
)

// strategy bundles the mode-specific pieces of a diff: how input is cut into tokens, how two
// tokens compare, and how token runs are joined back into change values.
type strategy struct {
	tokenize        func(value string, cfg config.Config) []string
	equals          func(a, b string, cfg config.Config) bool
	join            func(tokens []string) string
	useLongestToken bool
}

func joinTokens(tokens []string) string { return strings.Join(tokens, "") }

// baseEquals is the default token comparison: exact equality, optionally case-insensitive, with
// a user-supplied override taking precedence.
func baseEquals(a, b string, cfg config.Config) bool {
	if cfg.Equals != nil {
		return cfg.Equals(a, b)
	}
	if cfg.IgnoreCase {
		return strings.ToLower(a) == strings.ToLower(b)
	}
	return a == b
}

// removeEmpty drops zero-length tokens left behind by splitting; the edit-graph search must
// never see them or it reports spurious zero-width changes.
func removeEmpty(tokens []string) []string {
	out := tokens[:0]
	for _, t := range tokens {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// splitWithDelims splits value on re the way ECMAScript String.split does with a capturing
// separator: the output alternates segments and the separators that terminated them, and a
// zero-width separator match immediately after the previous split position is skipped.
func splitWithDelims(re *regexp.Regexp, value string) []string {
	var out []string
	p := 0
	for _, loc := range re.FindAllStringIndex(value, -1) {
		ms, me := loc[0], loc[1]
		// A zero-width separator at the previous split position splits nothing.
		if ms == me && me == p {
			continue
		}
		out = append(out, value[p:ms], value[ms:me])
		p = me
	}
	return append(out, value[p:])
}

// Characters

var charsStrategy = strategy{
	tokenize: func(value string, _ config.Config) []string {
		// Splitting on the empty separator yields one token per rune.
		return strings.Split(value, "")
	},
	equals: baseEquals,
	join:   joinTokens,
}

// Words

// wordBoundaryRE cuts at runs of non-newline whitespace, at bracket/quote/newline singletons,
// and at ASCII word boundaries.
var wordBoundaryRE = regexp.MustCompile(`[^\S\r\n]+|[()\[\]{}'"\r\n]|\b`)

// extendedWordRE matches runs of basic Latin letters plus the Latin-1/Latin-Extended letter
// ranges, used to re-join boundary splits inside accented or hyphen-adjacent words.
var extendedWordRE = regexp.MustCompile(`^[a-zA-Z\x{C0}-\x{FF}\x{D8}-\x{F6}\x{F8}-\x{2C6}\x{2C8}-\x{2D7}\x{2DE}-\x{2FF}\x{1E00}-\x{1EFF}]+$`)

func wordTokenize(value string, _ config.Config) []string {
	tokens := splitWithDelims(wordBoundaryRE, value)
	// Join boundary splits that we do not consider word boundaries: an empty separator between
	// two letter runs means the split came from \b firing inside what reads as one word.
	for i := 0; i < len(tokens)-2; i++ {
		if tokens[i+1] == "" && tokens[i+2] != "" &&
			extendedWordRE.MatchString(tokens[i]) && extendedWordRE.MatchString(tokens[i+2]) {
			tokens[i] += tokens[i+2]
			tokens = append(tokens[:i+1], tokens[i+3:]...)
			i--
		}
	}
	return tokens
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func wordEquals(a, b string, cfg config.Config) bool {
	if cfg.Equals != nil {
		return cfg.Equals(a, b)
	}
	if cfg.IgnoreCase {
		a = strings.ToLower(a)
		b = strings.ToLower(b)
	}
	return a == b || (cfg.IgnoreWhitespace && isBlank(a) && isBlank(b))
}

var wordsStrategy = strategy{
	tokenize: wordTokenize,
	equals:   wordEquals,
	join:     joinTokens,
}

// Lines

var lineDelimRE = regexp.MustCompile(`\r\n|\n`)

func lineTokenize(value string, cfg config.Config) []string {
	if cfg.StripTrailingCr {
		value = strings.ReplaceAll(value, "\r\n", "\n")
	}
	parts := splitWithDelims(lineDelimRE, value)
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	var lines []string
	for i, p := range parts {
		if i%2 == 1 && !cfg.NewlineIsToken {
			lines[len(lines)-1] += p
		} else {
			lines = append(lines, p)
		}
	}
	return lines
}

func lineEquals(a, b string, cfg config.Config) bool {
	if cfg.Equals != nil {
		return cfg.Equals(a, b)
	}
	if cfg.IgnoreWhitespace {
		// Delimiter tokens produced in newline-is-token mode must keep their exact value.
		if !cfg.NewlineIsToken || !strings.Contains(a, "\n") {
			a = strings.TrimSpace(a)
		}
		if !cfg.NewlineIsToken || !strings.Contains(b, "\n") {
			b = strings.TrimSpace(b)
		}
	}
	if cfg.IgnoreCase {
		a = strings.ToLower(a)
		b = strings.ToLower(b)
	}
	return a == b
}

var linesStrategy = strategy{
	tokenize:        lineTokenize,
	equals:          lineEquals,
	join:            joinTokens,
	useLongestToken: true,
}

// Sentences

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// sentenceTokenize splits after '.', '!' or '?' when followed by whitespace or end of input. A
// sentence never spans a line break, and the text between sentences (leading whitespace,
// fragments without a terminator) is emitted as separate tokens so that joining reconstructs the
// input exactly.
func sentenceTokenize(value string, _ config.Config) []string {
	var tokens []string
	p, pos := 0, 0
	for {
		// A sentence starts at the first non-space character; it needs at least two characters,
		// the last of which is a terminator followed by whitespace or end of input.
		start := pos
		for start < len(value) && isASCIISpace(value[start]) {
			start++
		}
		if start >= len(value) {
			break
		}
		end := -1
		j := start + 1
		for ; j < len(value) && value[j] != '\n'; j++ {
			switch value[j] {
			case '.', '!', '?':
				if j+1 >= len(value) || isASCIISpace(value[j+1]) {
					end = j
				}
			}
			if end >= 0 {
				break
			}
		}
		if end >= 0 {
			tokens = append(tokens, value[p:start], value[start:end+1])
			p, pos = end+1, end+1
			continue
		}
		if j >= len(value) {
			break
		}
		// No terminator on this line; resume the search after the line break.
		pos = j + 1
	}
	return append(tokens, value[p:])
}

var sentencesStrategy = strategy{
	tokenize: sentenceTokenize,
	equals:   baseEquals,
	join:     joinTokens,
}

// CSS

var cssDelimRE = regexp.MustCompile(`[{}:;,]|\s+`)

var cssStrategy = strategy{
	tokenize: func(value string, _ config.Config) []string {
		return splitWithDelims(cssDelimRE, value)
	},
	equals: baseEquals,
	join:   joinTokens,
}
